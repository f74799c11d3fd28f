package soundtrack

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/automoto/doomerang-soundtrack/assets"
	"github.com/automoto/doomerang-soundtrack/diag"
)

// BufferSource hands out decoded buffers by asset key. *assets.BufferCache
// implements it.
type BufferSource interface {
	Get(ctx context.Context, key string) (*assets.Buffer, error)
}

// PlaybackState is a snapshot of the controller's state.
type PlaybackState struct {
	Segment              Segment
	Track                Track
	Volume               float64
	TransitionInProgress bool

	Target Segment // segment being transitioned to, SegmentNone when idle
	Queued Segment // latest request waiting on the transition, SegmentNone when none
	Paused bool    // paused or stopped
}

// ControllerOptions wires a Controller.
type ControllerOptions struct {
	Buffers     BufferSource
	Mixer       Mixer
	Reporter    diag.Reporter
	Keys        map[Segment]string  // segment -> asset key
	Levels      map[Segment]float64 // loudness used by TransitionTo
	Default     Segment             // segment for Start and Skip
	Fade        FadeOptions
	LoadTimeout time.Duration // zero means unbounded

	// Spawn runs buffer loads. Defaults to a new goroutine per load.
	Spawn func(func())
}

type request struct {
	segment Segment
	level   float64
	restart bool // cut straight to the new track and resume playback
}

type loadResult struct {
	gen uint64
	req request
	key string
	buf *assets.Buffer
	err error
}

// Controller owns the single current track and every transition between
// tracks. All state changes happen under its lock; buffer loads run outside
// it and are applied on the next Update.
//
// A transition requested while another is in flight is remembered, latest
// wins, and started once the in-flight one completes or is abandoned.
type Controller struct {
	buffers     BufferSource
	mixer       Mixer
	reporter    diag.Reporter
	keys        map[Segment]string
	levels      map[Segment]float64
	def         Segment
	fade        FadeOptions
	loadTimeout time.Duration
	spawn       func(func())

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	state   PlaybackState
	level   float64 // current track's unscaled level
	master  float64
	paused  bool
	stopped bool
	closed  bool

	target request // in-flight transition
	queued *request
	job    *Crossfade
	loaded *loadResult
	gen    uint64 // bumped whenever in-flight loads must be discarded
}

// NewController creates an idle controller with no track.
func NewController(opts ControllerOptions) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		buffers:     opts.Buffers,
		mixer:       opts.Mixer,
		reporter:    diag.OrDefault(opts.Reporter),
		keys:        make(map[Segment]string, len(opts.Keys)),
		levels:      make(map[Segment]float64, len(opts.Levels)),
		def:         opts.Default,
		fade:        opts.Fade,
		loadTimeout: opts.LoadTimeout,
		spawn:       opts.Spawn,
		ctx:         ctx,
		cancel:      cancel,
		master:      1,
	}
	if c.def == SegmentNone {
		c.def = SegmentAmbient
	}
	if c.spawn == nil {
		c.spawn = func(fn func()) { go fn() }
	}
	for s, k := range opts.Keys {
		c.keys[s] = k
	}
	for s, l := range opts.Levels {
		c.levels[s] = clamp01(l)
	}
	return c
}

// Start begins playback of the default segment.
func (c *Controller) Start() {
	c.TransitionTo(c.def)
}

// TransitionTo moves to seg at its configured level.
func (c *Controller) TransitionTo(seg Segment) {
	c.TransitionToLevel(seg, c.levelFor(seg))
}

// TransitionToLevel moves to seg with the incoming track at level (scaled by
// the master volume). Requesting the current segment while idle does nothing.
func (c *Controller) TransitionToLevel(seg Segment, level float64) {
	if seg == SegmentNone {
		return
	}
	c.mu.Lock()
	launch := c.request(request{segment: seg, level: clamp01(level)})
	c.mu.Unlock()
	c.run(launch)
}

// Update is the controller's tick: it advances a running crossfade and applies
// finished loads.
func (c *Controller) Update(dt time.Duration) {
	var launch func()

	c.mu.Lock()
	if c.job != nil && c.job.Advance(dt) {
		launch = c.complete()
	}
	if res := c.loaded; res != nil {
		c.loaded = nil
		if l := c.applyLoad(res); l != nil {
			launch = l
		}
	}
	c.mu.Unlock()

	c.run(launch)
}

// Play resumes the current track. No-op unless paused or stopped.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused || c.closed {
		return
	}
	c.paused = false
	c.stopped = false
	if t := c.state.Track; t != nil && !t.IsPlaying() {
		t.Play()
	}
}

// Pause pauses the current track. A running crossfade is first completed so
// the paused track is the newest one.
func (c *Controller) Pause() {
	var launch func()

	c.mu.Lock()
	if c.paused || c.closed {
		c.mu.Unlock()
		return
	}
	if c.job != nil {
		c.job.Finish()
		launch = c.complete()
	}
	if t := c.state.Track; t != nil && t.IsPlaying() {
		t.Pause()
	}
	c.paused = true
	c.mu.Unlock()

	c.run(launch)
}

// Stop abandons any transition in flight, then stops the current track and
// rewinds it. No-op when already stopped.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || c.closed {
		return
	}
	c.abortTransition()
	if t := c.state.Track; t != nil {
		t.Pause()
		if err := t.Rewind(); err != nil {
			c.reporter.Report(fmt.Errorf("failed to rewind %s track: %w", c.state.Segment, err))
		}
		t.SetVolume(c.state.Volume)
	}
	c.paused = true
	c.stopped = true
}

// Skip stops the current track and starts over from the default segment, even
// when that is the segment already playing. The stopped track is held until the
// fresh one is ready, so a failed reload leaves it in place for Play.
func (c *Controller) Skip() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.abortTransition()
	if t := c.state.Track; t != nil {
		t.Pause()
		if err := t.Rewind(); err != nil {
			c.reporter.Report(fmt.Errorf("failed to rewind %s track: %w", c.state.Segment, err))
		}
		t.SetVolume(c.state.Volume)
	}
	c.paused = true
	c.stopped = false
	launch := c.begin(request{segment: c.def, level: c.levelFor(c.def), restart: true})
	c.mu.Unlock()

	c.run(launch)
}

// SetMasterVolume scales every target volume. An idle track is adjusted at
// once; a running crossfade picks the new value up when it completes.
func (c *Controller) SetMasterVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.master = clamp01(v)
	if c.job == nil && c.state.Track != nil {
		c.state.Volume = c.level * c.master
		c.state.Track.SetVolume(c.state.Volume)
	}
}

// MasterVolume returns the master music volume.
func (c *Controller) MasterVolume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.master
}

// State returns a snapshot of the playback state.
func (c *Controller) State() PlaybackState {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Paused = c.paused
	if s.TransitionInProgress {
		s.Target = c.target.segment
	}
	if c.queued != nil {
		s.Queued = c.queued.segment
	}
	return s
}

// Crossfading reports whether a crossfade is running.
func (c *Controller) Crossfading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.job != nil
}

// Close releases every track and drops pending work. The controller ignores
// all calls afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.abortTransition()
	if t := c.state.Track; t != nil {
		t.Pause()
		_ = t.Close()
		c.state.Track = nil
	}
	c.cancel()
}

func (c *Controller) levelFor(seg Segment) float64 {
	if l, ok := c.levels[seg]; ok {
		return l
	}
	return 1
}

func (c *Controller) run(launch func()) {
	if launch != nil {
		c.spawn(launch)
	}
}

// request must be called with c.mu held. It returns the load to launch, if any.
func (c *Controller) request(req request) func() {
	if c.closed {
		return nil
	}
	if c.state.TransitionInProgress {
		c.queued = &req
		return nil
	}
	if req.segment == c.state.Segment {
		return nil
	}
	return c.begin(req)
}

func (c *Controller) begin(req request) func() {
	key, ok := c.keys[req.segment]
	if !ok {
		c.abandon(req, fmt.Errorf("no asset key for segment %s", req.segment))
		return nil
	}

	c.gen++
	gen := c.gen
	c.state.TransitionInProgress = true
	c.target = req

	ctx, timeout := c.ctx, c.loadTimeout
	return func() {
		lctx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			lctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		buf, err := c.buffers.Get(lctx, key)

		c.mu.Lock()
		defer c.mu.Unlock()
		if gen == c.gen {
			c.loaded = &loadResult{gen: gen, req: req, key: key, buf: buf, err: err}
		}
	}
}

func (c *Controller) applyLoad(res *loadResult) func() {
	if res.gen != c.gen || !c.state.TransitionInProgress {
		return nil
	}
	if res.err != nil {
		c.abandon(res.req, res.err)
		return c.drainQueue()
	}
	track, err := c.mixer.NewTrack(res.buf)
	if err != nil {
		c.abandon(res.req, fmt.Errorf("failed to create player for %q: %w", res.key, err))
		return c.drainQueue()
	}

	volume := res.req.level * c.master
	out := c.state.Track
	if res.req.restart {
		c.paused = false
		c.stopped = false
	}
	if out == nil || c.paused || res.req.restart {
		// Nothing audible to fade from
		if out != nil {
			out.Pause()
			_ = out.Close()
		}
		track.SetVolume(volume)
		if !c.paused {
			track.Play()
		}
		c.commit(res.req, track)
		return c.drainQueue()
	}

	c.job = NewCrossfade(out, track, volume, c.fade)
	c.job.Start()
	if c.job.Done() {
		return c.complete()
	}
	return nil
}

func (c *Controller) complete() func() {
	job := c.job
	c.job = nil
	c.commit(c.target, job.Incoming())
	return c.drainQueue()
}

func (c *Controller) commit(req request, track Track) {
	c.level = req.level
	c.state.Segment = req.segment
	c.state.Track = track
	c.state.Volume = req.level * c.master
	c.state.TransitionInProgress = false
	c.target = request{}
	track.SetVolume(c.state.Volume)
}

func (c *Controller) abandon(req request, cause error) {
	c.state.TransitionInProgress = false
	c.target = request{}
	c.reporter.Report(&TransitionAbandonedError{Segment: req.segment, Cause: cause})
}

func (c *Controller) drainQueue() func() {
	q := c.queued
	c.queued = nil
	if q == nil || q.segment == c.state.Segment {
		return nil
	}
	return c.begin(*q)
}

// abortTransition drops pending loads, the queue and any running crossfade.
// The incoming track of an aborted crossfade is released; the current track
// is left to the caller.
func (c *Controller) abortTransition() {
	c.gen++
	c.loaded = nil
	c.queued = nil
	if c.job != nil {
		c.job.Cancel()
		in := c.job.Incoming()
		in.Pause()
		_ = in.Close()
		c.job = nil
	}
	c.state.TransitionInProgress = false
	c.target = request{}
}
