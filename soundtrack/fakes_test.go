package soundtrack

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/automoto/doomerang-soundtrack/assets"
	"github.com/automoto/doomerang-soundtrack/diag"
)

type fakeTrack struct {
	name string

	mu      sync.Mutex
	playing bool
	closed  bool
	volume  float64
	history []float64
	rewinds int
}

func newFakeTrack(name string, volume float64) *fakeTrack {
	return &fakeTrack{name: name, volume: volume}
}

func (t *fakeTrack) Play() {
	t.mu.Lock()
	t.playing = true
	t.mu.Unlock()
}

func (t *fakeTrack) Pause() {
	t.mu.Lock()
	t.playing = false
	t.mu.Unlock()
}

func (t *fakeTrack) IsPlaying() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing
}

func (t *fakeTrack) SetVolume(v float64) {
	t.mu.Lock()
	t.volume = v
	t.history = append(t.history, v)
	t.mu.Unlock()
}

func (t *fakeTrack) Volume() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.volume
}

func (t *fakeTrack) Rewind() error {
	t.mu.Lock()
	t.rewinds++
	t.mu.Unlock()
	return nil
}

func (t *fakeTrack) Close() error {
	t.mu.Lock()
	t.closed = true
	t.playing = false
	t.mu.Unlock()
	return nil
}

func (t *fakeTrack) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func (t *fakeTrack) volumeHistory() []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]float64, len(t.history))
	copy(out, t.history)
	return out
}

type fakeMixer struct {
	mu     sync.Mutex
	tracks []*fakeTrack
	fail   error
}

func (m *fakeMixer) NewTrack(buf *assets.Buffer) (Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	t := newFakeTrack(buf.Key, 1)
	m.tracks = append(m.tracks, t)
	return t, nil
}

func (m *fakeMixer) all() []*fakeTrack {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*fakeTrack, len(m.tracks))
	copy(out, m.tracks)
	return out
}

func (m *fakeMixer) open() []*fakeTrack {
	var out []*fakeTrack
	for _, t := range m.all() {
		if !t.isClosed() {
			out = append(out, t)
		}
	}
	return out
}

func (m *fakeMixer) last() *fakeTrack {
	all := m.all()
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

var errNoSuchAsset = errors.New("no such asset")

// fakeBuffers serves a buffer for any key not listed in missing.
type fakeBuffers struct {
	mu      sync.Mutex
	missing map[string]bool
	calls   map[string]int
}

func (b *fakeBuffers) Get(_ context.Context, key string) (*assets.Buffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.calls == nil {
		b.calls = map[string]int{}
	}
	b.calls[key]++
	if b.missing[key] {
		return nil, &assets.AssetUnavailableError{Key: key, Cause: errNoSuchAsset}
	}
	return assets.NewBuffer(key, key+".ogg", 44100, []byte{0, 0, 0, 0}), nil
}

func (b *fakeBuffers) total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		n += c
	}
	return n
}

// rawDecoder wraps payloads without decoding.
type rawDecoder struct{}

func (rawDecoder) Decode(key, filename string, payload []byte) (*assets.Buffer, error) {
	return assets.NewBuffer(key, filename, 44100, payload), nil
}

const (
	testFade = 100 * time.Millisecond
	testStep = 10 * time.Millisecond
)

type harness struct {
	c       *Controller
	mixer   *fakeMixer
	buffers *fakeBuffers
	rec     *diag.Recorder
}

func newHarness(missing ...string) *harness {
	h := &harness{
		mixer:   &fakeMixer{},
		buffers: &fakeBuffers{missing: map[string]bool{}},
		rec:     &diag.Recorder{},
	}
	for _, k := range missing {
		h.buffers.missing[k] = true
	}
	h.c = NewController(ControllerOptions{
		Buffers:  h.buffers,
		Mixer:    h.mixer,
		Reporter: h.rec,
		Keys: map[Segment]string{
			SegmentAmbient:     "ambient",
			SegmentExploration: "exploration",
			SegmentBossBattle:  "bossBattle",
		},
		Levels: map[Segment]float64{
			SegmentAmbient:     0.5,
			SegmentExploration: 0.7,
			SegmentBossBattle:  1.0,
		},
		Default: SegmentAmbient,
		Fade:    FadeOptions{Duration: testFade, Steps: 10, Easing: "linear"},
		Spawn:   func(fn func()) { fn() },
	})
	return h
}

// startedHarness returns a harness already playing the ambient segment.
func startedHarness(missing ...string) *harness {
	h := newHarness(missing...)
	h.c.Start()
	h.c.Update(0)
	return h
}

// settle ticks until no transition is in flight or the budget runs out.
func (h *harness) settle(maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		h.c.Update(testStep)
		if !h.c.State().TransitionInProgress {
			return i + 1
		}
	}
	return maxTicks
}
