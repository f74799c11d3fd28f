package soundtrack

import (
	"context"
	"fmt"
	"time"

	"github.com/automoto/doomerang-soundtrack/assets"
	cfg "github.com/automoto/doomerang-soundtrack/config"
	"github.com/automoto/doomerang-soundtrack/diag"
)

// Engine wires resolver, cache, classifier, controller and bridge from a
// SoundtrackConfig.
type Engine struct {
	*Controller

	Cache      *assets.BufferCache
	Classifier *Classifier
	Bridge     *Bridge

	tick time.Duration
}

// EngineOptions supplies the pieces a config cannot describe.
type EngineOptions struct {
	Mixer    Mixer
	Reporter diag.Reporter

	// Locations overrides the configured candidate locations when set.
	Locations []assets.Source
	// Decoder overrides the ebiten decoder when set.
	Decoder assets.Decoder
	// Spawn overrides how loads are run; see ControllerOptions.
	Spawn func(func())
}

// NewEngine builds an engine. Segment names in the config must parse.
func NewEngine(conf cfg.SoundtrackConfig, opts EngineOptions) (*Engine, error) {
	reporter := diag.OrDefault(opts.Reporter)

	def, err := ParseSegment(conf.DefaultSegment)
	if err != nil {
		return nil, fmt.Errorf("default segment: %w", err)
	}
	levels, err := parseSegmentMap(conf.SegmentLevels)
	if err != nil {
		return nil, fmt.Errorf("segment levels: %w", err)
	}
	keys, err := parseSegmentMap(conf.SegmentKeys)
	if err != nil {
		return nil, fmt.Errorf("segment keys: %w", err)
	}
	states := make(map[string]Segment, len(conf.States))
	for name, segName := range conf.States {
		s, err := ParseSegment(segName)
		if err != nil {
			return nil, fmt.Errorf("state %q: %w", name, err)
		}
		states[name] = s
	}
	for key := range keysOf(keys) {
		if _, ok := conf.Catalog[key]; !ok {
			return nil, fmt.Errorf("asset key %q has no catalog entry", key)
		}
	}

	locations := opts.Locations
	if locations == nil {
		locations = assets.ParseLocations(conf.Locations, conf.HTTPTimeout)
	}
	decoder := opts.Decoder
	if decoder == nil {
		decoder = assets.NewEbitenDecoder(conf.SampleRate)
	}

	resolver := assets.NewResolver(conf.Catalog, locations, reporter)
	cache := assets.NewBufferCache(resolver, decoder, reporter)

	classifier := NewClassifier(ClassifierOptions{
		Threshold: conf.IntensityThreshold,
		Default:   def,
		Levels:    levels,
		States:    states,
		Arcs:      conf.Arcs,
	})

	controller := NewController(ControllerOptions{
		Buffers:  cache,
		Mixer:    opts.Mixer,
		Reporter: reporter,
		Keys:     keys,
		Levels:   levels,
		Default:  def,
		Fade: FadeOptions{
			Duration: conf.FadeDuration,
			Steps:    conf.FadeSteps,
			Easing:   conf.FadeEasing,
		},
		LoadTimeout: conf.LoadTimeout,
		Spawn:       opts.Spawn,
	})
	controller.SetMasterVolume(conf.DefaultMusicVol)

	tick := time.Second / 60
	if conf.TickRate > 0 {
		tick = time.Second / time.Duration(conf.TickRate)
	}

	return &Engine{
		Controller: controller,
		Cache:      cache,
		Classifier: classifier,
		Bridge:     NewBridge(classifier, controller),
		tick:       tick,
	}, nil
}

// Notify passes one gameplay event through the bridge.
func (e *Engine) Notify(ev Event) Classification {
	return e.Bridge.Notify(ev)
}

// Tick returns the engine's update interval.
func (e *Engine) Tick() time.Duration { return e.tick }

// Run ticks the engine on a wall-clock ticker until ctx is done. Use it when
// no game loop calls Update.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			e.Update(now.Sub(last))
			last = now
		}
	}
}

func parseSegmentMap[V any](in map[string]V) (map[Segment]V, error) {
	out := make(map[Segment]V, len(in))
	for name, v := range in {
		s, err := ParseSegment(name)
		if err != nil {
			return nil, err
		}
		out[s] = v
	}
	return out, nil
}

func keysOf(m map[Segment]string) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for _, k := range m {
		out[k] = struct{}{}
	}
	return out
}
