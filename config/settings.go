package config

// SettingsConfig contains settings persistence configuration
type SettingsConfig struct {
	AppName     string // gdata namespace
	ItemKey     string // gdata item holding the JSON settings
	VolumeSteps []float64
}

// Settings is the global settings configuration
var Settings SettingsConfig

func init() {
	Settings = SettingsConfig{
		AppName:     "doomerang-soundtrack",
		ItemKey:     "settings",
		VolumeSteps: []float64{0, 0.25, 0.5, 0.75, 1.0},
	}
}

// NextVolumeStep returns the volume step after v, or the first step past the end.
// dir is +1 or -1.
func NextVolumeStep(v float64, dir int) float64 {
	steps := Settings.VolumeSteps
	if len(steps) == 0 {
		return v
	}
	idx := 0
	for i, s := range steps {
		if s <= v+1e-9 {
			idx = i
		}
	}
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx >= len(steps) {
		idx = len(steps) - 1
	}
	return steps[idx]
}
