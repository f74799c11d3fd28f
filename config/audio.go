package config

import "time"

// Segment names as they appear in the catalog tables. The soundtrack package
// parses these into its Segment enum.
const (
	SegmentAmbient     = "ambient"
	SegmentExploration = "exploration"
	SegmentBossBattle  = "bossBattle"
)

// SoundtrackConfig contains the adaptive soundtrack engine configuration.
// It is read once at engine startup; changing it requires a new engine.
type SoundtrackConfig struct {
	SampleRate      int
	TickRate        int     // engine ticks per second (matches ebiten TPS)
	DefaultMusicVol float64 // master music volume before saved settings apply

	// Crossfade
	FadeDuration time.Duration
	FadeSteps    int    // discrete steps per ramp
	FadeEasing   string // "linear", "quad", "cubic", "sine"

	// Classification
	IntensityThreshold float64            // numeric intensity >= threshold is intense
	DefaultSegment     string             // fallback for unknown input
	SegmentLevels      map[string]float64 // target loudness per segment
	States             map[string]string  // state or emotion name -> segment
	Arcs               map[string]string  // narrative arc -> emotion/state name

	// Catalog
	SegmentKeys map[string]string // segment -> asset key
	Catalog     map[string]string // asset key -> filename
	Locations   []string          // candidate base locations, highest priority first

	LoadTimeout time.Duration // bound on resolve+decode for one transition
	HTTPTimeout time.Duration // per-request timeout for http locations
}

var Soundtrack SoundtrackConfig

func init() {
	Soundtrack = SoundtrackConfig{
		SampleRate:      44100,
		TickRate:        60,
		DefaultMusicVol: 0.75,

		FadeDuration: time.Second,
		FadeSteps:    10,
		FadeEasing:   "linear",

		IntensityThreshold: 0.7,
		DefaultSegment:     SegmentAmbient,
		SegmentLevels: map[string]float64{
			SegmentAmbient:     0.5,
			SegmentExploration: 0.7,
			SegmentBossBattle:  1.0,
		},
		States: map[string]string{
			// gameplay states
			"calm":    SegmentAmbient,
			"menu":    SegmentAmbient,
			"explore": SegmentExploration,
			"intense": SegmentBossBattle,
			"boss":    SegmentBossBattle,
			// emotional tones
			"happy": SegmentExploration,
			"sad":   SegmentAmbient,
			"angry": SegmentBossBattle,
		},
		Arcs: map[string]string{
			"intro":      "happy",
			"climax":     "angry",
			"resolution": "sad",
		},

		SegmentKeys: map[string]string{
			SegmentAmbient:     "ambient",
			SegmentExploration: "exploration",
			SegmentBossBattle:  "bossBattle",
		},
		Catalog: map[string]string{
			"ambient":     "background_music.ogg",
			"exploration": "exploration.ogg",
			"bossBattle":  "battle_tracks.ogg",
		},
		Locations: []string{"assets/audio/music", "audio"},

		LoadTimeout: 10 * time.Second,
		HTTPTimeout: 5 * time.Second,
	}
}
