package config

import (
	"image/color"

	"github.com/yohamta/donburi/ecs"
)

// Default is the only render layer used by the jukebox scene.
const Default ecs.LayerID = iota

// Config holds general window configuration
type Config struct {
	Width  int
	Height int
	Title  string
}

// JukeboxConfig contains the debug jukebox scene configuration
type JukeboxConfig struct {
	IntensityStep  float64 // how far [ and ] move the numeric intensity
	BackgroundCol  color.RGBA
	TextCol        color.RGBA
	AccentCol      color.RGBA
	FontSize       float64
	LineHeight     int
	MarginX        int
	MarginY        int
	StateKeys      []string // states bound to keys 1..n
	HistoryEntries int      // recent classifications shown on screen
}

// MessageConfig contains the on-screen notice configuration
type MessageConfig struct {
	DisplayDuration int // frames a notice stays on screen
	MaxPending      int // notices kept while one is showing
	MaxLength       int // longer notices are truncated
	BoxPadding      int
	BottomMargin    int // distance from the bottom of the screen
	BoxColor        color.RGBA
	TextColor       color.RGBA
}

// Global configuration instances
var C *Config
var Jukebox JukeboxConfig
var Message MessageConfig

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
		Title:  "Doomerang Soundtrack",
	}

	Jukebox = JukeboxConfig{
		IntensityStep:  0.1,
		BackgroundCol:  color.RGBA{R: 12, G: 12, B: 20, A: 255},
		TextCol:        color.RGBA{R: 230, G: 230, B: 230, A: 255},
		AccentCol:      color.RGBA{R: 255, G: 196, B: 64, A: 255},
		FontSize:       12,
		LineHeight:     16,
		MarginX:        16,
		MarginY:        24,
		StateKeys:      []string{"calm", "explore", "boss", "intro", "climax", "resolution"},
		HistoryEntries: 6,
	}

	Message = MessageConfig{
		DisplayDuration: 180,
		MaxPending:      4,
		MaxLength:       90,
		BoxPadding:      6,
		BottomMargin:    56,
		BoxColor:        color.RGBA{R: 80, G: 16, B: 16, A: 220},
		TextColor:       color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}
