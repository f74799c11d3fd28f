package soundtrack

import (
	"github.com/automoto/doomerang-soundtrack/assets"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Track is a playback handle. *audio.Player satisfies it.
type Track interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(volume float64)
	Volume() float64
	Rewind() error
	Close() error
}

// Mixer creates looping tracks from decoded buffers.
type Mixer interface {
	NewTrack(buf *assets.Buffer) (Track, error)
}

// EbitenMixer plays buffers through an ebiten audio context.
type EbitenMixer struct {
	context *audio.Context
}

// NewEbitenMixer wraps ctx. The context sample rate must match the decoder's.
func NewEbitenMixer(ctx *audio.Context) *EbitenMixer {
	return &EbitenMixer{context: ctx}
}

// NewTrack returns a player that loops buf forever.
func (m *EbitenMixer) NewTrack(buf *assets.Buffer) (Track, error) {
	loop := audio.NewInfiniteLoop(buf.Reader(), buf.Len())
	player, err := m.context.NewPlayer(loop)
	if err != nil {
		return nil, err
	}
	return player, nil
}
