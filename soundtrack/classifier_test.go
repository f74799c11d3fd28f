package soundtrack

import (
	"math"
	"testing"
)

func testClassifier() *Classifier {
	return NewClassifier(ClassifierOptions{
		Threshold: 0.7,
		Default:   SegmentAmbient,
		Levels: map[Segment]float64{
			SegmentAmbient:     0.5,
			SegmentExploration: 0.7,
			SegmentBossBattle:  1.0,
		},
		States: map[string]Segment{
			"calm":    SegmentAmbient,
			"explore": SegmentExploration,
			"intense": SegmentBossBattle,
			"happy":   SegmentExploration,
			"sad":     SegmentAmbient,
			"angry":   SegmentBossBattle,
		},
		Arcs: map[string]string{
			"intro":      "happy",
			"climax":     "angry",
			"resolution": "sad",
		},
	})
}

func TestClassify(t *testing.T) {
	c := testClassifier()

	tests := []struct {
		name  string
		ev    Event
		want  Segment
		level float64
	}{
		{"calm", StateEvent("calm"), SegmentAmbient, 0.5},
		{"explore", StateEvent("explore"), SegmentExploration, 0.7},
		{"intense", StateEvent("intense"), SegmentBossBattle, 1.0},
		{"emotion", StateEvent("angry"), SegmentBossBattle, 1.0},
		{"arc", StateEvent("climax"), SegmentBossBattle, 1.0},
		{"arc resolution", StateEvent("resolution"), SegmentAmbient, 0.5},
		{"case and space", StateEvent("  Explore "), SegmentExploration, 0.7},
		{"unknown", StateEvent("confused"), SegmentAmbient, 0.5},
		{"empty", StateEvent(""), SegmentAmbient, 0.5},
		{"high intensity", IntensityEvent(0.9), SegmentBossBattle, 1.0},
		{"threshold inclusive", IntensityEvent(0.7), SegmentBossBattle, 1.0},
		{"below threshold", IntensityEvent(0.69), SegmentAmbient, 0.5},
		{"zero", IntensityEvent(0), SegmentAmbient, 0.5},
		{"NaN", IntensityEvent(math.NaN()), SegmentAmbient, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.ev)
			if got.Segment != tt.want || got.Level != tt.level {
				t.Errorf("Classify(%+v) = %v@%v, want %v@%v", tt.ev, got.Segment, got.Level, tt.want, tt.level)
			}
		})
	}
}

func TestClassifierDefaults(t *testing.T) {
	c := NewClassifier(ClassifierOptions{Threshold: 0.5})
	if got := c.Classify(StateEvent("anything")); got.Segment != SegmentAmbient || got.Level != 1 {
		t.Errorf("got %+v, want ambient at 1", got)
	}

	c = NewClassifier(ClassifierOptions{Default: SegmentExploration})
	if got := c.Classify(IntensityEvent(math.NaN())).Segment; got != SegmentExploration {
		t.Errorf("NaN intensity = %v, want configured default", got)
	}
}

func TestClassifierCopiesTables(t *testing.T) {
	states := map[string]Segment{"calm": SegmentAmbient}
	c := NewClassifier(ClassifierOptions{States: states, Default: SegmentExploration})
	states["calm"] = SegmentBossBattle
	if got := c.Classify(StateEvent("calm")).Segment; got != SegmentAmbient {
		t.Errorf("classifier should not see later table edits, got %v", got)
	}
}
