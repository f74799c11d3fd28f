package config

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadEnv applies SOUNDTRACK_* environment overrides to Soundtrack.
// Unset or unparsable values keep the compiled-in defaults.
func LoadEnv() {
	s := &Soundtrack
	s.SampleRate = envInt("SOUNDTRACK_SAMPLE_RATE", s.SampleRate)
	s.FadeDuration = envDuration("SOUNDTRACK_FADE_DURATION", s.FadeDuration)
	s.FadeSteps = envInt("SOUNDTRACK_FADE_STEPS", s.FadeSteps)
	s.FadeEasing = envStr("SOUNDTRACK_FADE_EASING", s.FadeEasing)
	s.IntensityThreshold = envFloat("SOUNDTRACK_INTENSITY_THRESHOLD", s.IntensityThreshold)
	s.DefaultMusicVol = envFloat("SOUNDTRACK_MUSIC_VOLUME", s.DefaultMusicVol)
	s.LoadTimeout = envDuration("SOUNDTRACK_LOAD_TIMEOUT", s.LoadTimeout)
	s.HTTPTimeout = envDuration("SOUNDTRACK_HTTP_TIMEOUT", s.HTTPTimeout)
	if v := os.Getenv("SOUNDTRACK_LOCATIONS"); v != "" {
		s.Locations = SplitLocations(v)
	}
}

// SplitLocations parses a comma separated location list, dropping empty entries.
func SplitLocations(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return fallback
}

// envDuration accepts Go duration strings ("750ms") or bare milliseconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
