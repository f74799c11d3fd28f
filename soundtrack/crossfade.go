package soundtrack

import (
	"strings"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FadeOptions shapes a crossfade ramp.
type FadeOptions struct {
	Duration time.Duration
	Steps    int    // discrete volume steps per ramp
	Easing   string // see Easing
}

// Only curves that never overshoot or turn back are offered, so each side of
// the ramp stays monotonic.
var easings = map[string]ease.TweenFunc{
	"linear": ease.Linear,
	"quad":   ease.InOutQuad,
	"cubic":  ease.InOutCubic,
	"sine":   ease.InOutSine,
}

// Easing returns the named curve, falling back to linear.
func Easing(name string) ease.TweenFunc {
	if fn, ok := easings[strings.ToLower(name)]; ok {
		return fn
	}
	return ease.Linear
}

type fadeState int

const (
	fadeIdle fadeState = iota
	fadeRunning
	fadeDone
	fadeCancelled
)

// Crossfade ramps an outgoing track down and an incoming track up in lockstep.
// Both sides are driven by one eased progress value, so they finish on the
// same step. It is advanced by the owner's tick and is not safe for
// concurrent use on its own.
type Crossfade struct {
	outgoing Track // may be nil
	incoming Track

	outStart float64
	inTarget float64

	steps    int
	interval time.Duration
	elapsed  time.Duration
	step     int
	curve    *gween.Tween

	state fadeState
}

// NewCrossfade prepares a ramp from outgoing (at its current volume) to
// incoming at target. Nothing plays until Start.
func NewCrossfade(outgoing, incoming Track, target float64, opts FadeOptions) *Crossfade {
	steps := opts.Steps
	if steps <= 0 {
		steps = 1
	}
	f := &Crossfade{
		outgoing: outgoing,
		incoming: incoming,
		inTarget: clamp01(target),
		steps:    steps,
		interval: opts.Duration / time.Duration(steps),
		curve:    gween.New(0, 1, float32(steps), Easing(opts.Easing)),
	}
	if outgoing != nil {
		f.outStart = clamp01(outgoing.Volume())
	}
	return f
}

// Start silences and plays the incoming track. A zero-length ramp completes
// immediately.
func (f *Crossfade) Start() {
	if f.state != fadeIdle {
		return
	}
	f.state = fadeRunning
	f.apply(0)
	f.incoming.Play()
	if f.interval <= 0 {
		f.Finish()
	}
}

// Advance moves the ramp forward by dt and reports whether it has completed.
// A cancelled ramp never completes and never touches volumes again.
func (f *Crossfade) Advance(dt time.Duration) bool {
	switch f.state {
	case fadeDone:
		return true
	case fadeRunning:
	default:
		return false
	}

	f.elapsed += dt
	step := int(f.elapsed / f.interval)
	if step >= f.steps {
		f.Finish()
		return true
	}
	if step > f.step {
		f.step = step
		f.apply(step)
	}
	return false
}

// Finish jumps to the end of the ramp: incoming at target, outgoing stopped
// and released.
func (f *Crossfade) Finish() {
	if f.state != fadeRunning {
		return
	}
	f.step = f.steps
	f.apply(f.steps)
	if f.outgoing != nil {
		f.outgoing.Pause()
		_ = f.outgoing.Close()
	}
	f.state = fadeDone
}

// Cancel stops the ramp where it is. The caller decides what to do with the
// tracks.
func (f *Crossfade) Cancel() {
	if f.state == fadeRunning || f.state == fadeIdle {
		f.state = fadeCancelled
	}
}

// Done reports whether the ramp reached its end.
func (f *Crossfade) Done() bool { return f.state == fadeDone }

// Progress returns the eased progress in [0,1].
func (f *Crossfade) Progress() float64 {
	v, _ := f.curve.Set(float32(f.step))
	return clamp01(float64(v))
}

// Volumes returns the volumes last applied to the outgoing and incoming tracks.
func (f *Crossfade) Volumes() (out, in float64) {
	p := f.Progress()
	return clamp01(f.outStart * (1 - p)), clamp01(f.inTarget * p)
}

// Incoming returns the track being faded in.
func (f *Crossfade) Incoming() Track { return f.incoming }

// Outgoing returns the track being faded out, if any.
func (f *Crossfade) Outgoing() Track { return f.outgoing }

func (f *Crossfade) apply(step int) {
	f.step = step
	out, in := f.Volumes()
	if f.outgoing != nil {
		f.outgoing.SetVolume(out)
	}
	f.incoming.SetVolume(in)
}
