package assets

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// bytesPerFrame is one stereo frame of 16-bit little-endian PCM.
const bytesPerFrame = 4

// Buffer is decoded, playable audio. It is immutable once created and may be
// shared by any number of players.
type Buffer struct {
	Key        string
	Filename   string
	SampleRate int
	pcm        []byte
}

// NewBuffer wraps decoded 16-bit stereo PCM. The slice must not be modified afterwards.
func NewBuffer(key, filename string, sampleRate int, pcm []byte) *Buffer {
	return &Buffer{Key: key, Filename: filename, SampleRate: sampleRate, pcm: pcm}
}

// Reader returns a fresh reader positioned at the start of the PCM data.
func (b *Buffer) Reader() *bytes.Reader {
	return bytes.NewReader(b.pcm)
}

// Len returns the PCM length in bytes.
func (b *Buffer) Len() int64 {
	return int64(len(b.pcm))
}

// Duration returns the playback length.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	frames := int64(len(b.pcm)) / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(b.SampleRate)
}

// Decoder turns a fetched payload into a Buffer.
type Decoder interface {
	Decode(key, filename string, payload []byte) (*Buffer, error)
}

// EbitenDecoder decodes ogg, wav and mp3 payloads with ebiten's decoders,
// resampling to SampleRate.
type EbitenDecoder struct {
	SampleRate int
}

func NewEbitenDecoder(sampleRate int) *EbitenDecoder {
	return &EbitenDecoder{SampleRate: sampleRate}
}

func (d *EbitenDecoder) Decode(key, filename string, payload []byte) (*Buffer, error) {
	var (
		stream io.Reader
		err    error
	)
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(d.SampleRate, bytes.NewReader(payload))
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(d.SampleRate, bytes.NewReader(payload))
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(d.SampleRate, bytes.NewReader(payload))
	default:
		err = fmt.Errorf("unsupported audio format: %q", ext)
	}
	if err != nil {
		return nil, &DecodeError{Key: key, Filename: filename, Err: err}
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, &DecodeError{Key: key, Filename: filename, Err: fmt.Errorf("failed to read decoded audio: %w", err)}
	}
	if len(pcm) == 0 {
		return nil, &DecodeError{Key: key, Filename: filename, Err: fmt.Errorf("no audio data")}
	}
	return NewBuffer(key, filename, d.SampleRate, pcm), nil
}
