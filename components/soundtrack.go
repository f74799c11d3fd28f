package components

import (
	"time"

	"github.com/automoto/doomerang-soundtrack/soundtrack"
	"github.com/yohamta/donburi"
)

// SoundtrackDriver is the engine surface the soundtrack system and the jukebox
// scene use. *soundtrack.Engine implements it.
type SoundtrackDriver interface {
	Notify(ev soundtrack.Event) soundtrack.Classification
	Update(dt time.Duration)
	Tick() time.Duration
	State() soundtrack.PlaybackState

	Play()
	Pause()
	Stop()
	Skip()
	SetMasterVolume(v float64)
}

// ClassifiedEvent pairs an event with the segment it was mapped to.
type ClassifiedEvent struct {
	Event  soundtrack.Event
	Result soundtrack.Classification
}

// SoundtrackData stores the adaptive soundtrack state (singleton component)
type SoundtrackData struct {
	Driver        SoundtrackDriver
	PendingEvents []soundtrack.Event
	History       []ClassifiedEvent // most recent last

	MusicVolume   float64 // 0.0 - 1.0, kept while muted
	Muted         bool
	LastIntensity float64
}

var Soundtrack = donburi.NewComponentType[SoundtrackData]()
