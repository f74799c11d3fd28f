package soundtrack

import (
	"math"
	"strings"
)

// Event is one gameplay or narrative notification. It carries either a named
// state (gameplay state, emotion or narrative arc) or a numeric intensity.
type Event struct {
	State        string
	Intensity    float64
	HasIntensity bool
}

// StateEvent builds an Event for a named state.
func StateEvent(name string) Event {
	return Event{State: name}
}

// IntensityEvent builds an Event for a numeric intensity in [0,1].
func IntensityEvent(v float64) Event {
	return Event{Intensity: v, HasIntensity: true}
}

// Classification is the classifier's verdict for one event.
type Classification struct {
	Segment Segment
	Level   float64
}

// ClassifierOptions holds the classification tables.
type ClassifierOptions struct {
	Threshold float64            // intensity >= Threshold is BossBattle
	Default   Segment            // used for unknown input
	Levels    map[Segment]float64 // target loudness per segment
	States    map[string]Segment  // state/emotion name -> segment
	Arcs      map[string]string   // narrative arc -> state/emotion name
}

// Classifier maps events to segments. It is immutable after construction and
// safe for concurrent use.
type Classifier struct {
	threshold float64
	def       Segment
	levels    map[Segment]float64
	states    map[string]Segment
	arcs      map[string]string
}

// NewClassifier copies opts; names are matched case-insensitively.
func NewClassifier(opts ClassifierOptions) *Classifier {
	c := &Classifier{
		threshold: opts.Threshold,
		def:       opts.Default,
		levels:    make(map[Segment]float64, len(opts.Levels)),
		states:    make(map[string]Segment, len(opts.States)),
		arcs:      make(map[string]string, len(opts.Arcs)),
	}
	if c.def == SegmentNone {
		c.def = SegmentAmbient
	}
	for s, l := range opts.Levels {
		c.levels[s] = clamp01(l)
	}
	for name, s := range opts.States {
		c.states[normalize(name)] = s
	}
	for arc, name := range opts.Arcs {
		c.arcs[normalize(arc)] = normalize(name)
	}
	return c
}

// Classify never fails: anything it does not recognise maps to the default segment.
func (c *Classifier) Classify(ev Event) Classification {
	seg := c.segmentFor(ev)
	return Classification{Segment: seg, Level: c.Level(seg)}
}

// Level returns the configured loudness for seg, or 1 when none is configured.
func (c *Classifier) Level(seg Segment) float64 {
	if l, ok := c.levels[seg]; ok {
		return l
	}
	return 1
}

// Threshold returns the intensity threshold.
func (c *Classifier) Threshold() float64 { return c.threshold }

func (c *Classifier) segmentFor(ev Event) Segment {
	if ev.HasIntensity {
		if math.IsNaN(ev.Intensity) {
			return c.def
		}
		if ev.Intensity >= c.threshold {
			return SegmentBossBattle
		}
		return SegmentAmbient
	}

	name := normalize(ev.State)
	if s, ok := c.states[name]; ok {
		return s
	}
	// Narrative arcs resolve through the emotion they evoke
	if emotion, ok := c.arcs[name]; ok {
		if s, ok := c.states[emotion]; ok {
			return s
		}
	}
	return c.def
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
