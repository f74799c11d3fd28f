package systems

import (
	"github.com/automoto/doomerang-soundtrack/components"
	cfg "github.com/automoto/doomerang-soundtrack/config"
	"github.com/automoto/doomerang-soundtrack/soundtrack"
	"github.com/yohamta/donburi/ecs"
)

// UpdateSoundtrack hands queued gameplay events to the engine in arrival
// order, then advances it by one tick.
func UpdateSoundtrack(e *ecs.ECS) {
	entry, ok := components.Soundtrack.First(e.World)
	if !ok {
		return
	}
	data := components.Soundtrack.Get(entry)
	if data.Driver == nil {
		return
	}

	for _, ev := range data.PendingEvents {
		cl := data.Driver.Notify(ev)
		data.History = append(data.History, components.ClassifiedEvent{Event: ev, Result: cl})
		if ev.HasIntensity {
			data.LastIntensity = ev.Intensity
		}
	}
	data.PendingEvents = data.PendingEvents[:0]

	if n := cfg.Jukebox.HistoryEntries; n > 0 && len(data.History) > n {
		data.History = append(data.History[:0], data.History[len(data.History)-n:]...)
	}

	data.Driver.Update(data.Driver.Tick())
}

// QueueSoundtrackEvent queues a gameplay event for the next UpdateSoundtrack.
func QueueSoundtrackEvent(e *ecs.ECS, ev soundtrack.Event) {
	data := GetOrCreateSoundtrack(e, nil)
	data.PendingEvents = append(data.PendingEvents, ev)
}

// SetMusicVolume changes the music volume (0.0 - 1.0)
func SetMusicVolume(e *ecs.ECS, volume float64) {
	data := GetOrCreateSoundtrack(e, nil)
	data.MusicVolume = volume
	if data.Muted {
		return
	}
	if data.Driver != nil {
		data.Driver.SetMasterVolume(volume)
	}
}

// ToggleMute silences the soundtrack or restores the music volume.
func ToggleMute(e *ecs.ECS) {
	data := GetOrCreateSoundtrack(e, nil)
	data.Muted = !data.Muted
	if data.Driver == nil {
		return
	}
	if data.Muted {
		data.Driver.SetMasterVolume(0)
	} else {
		data.Driver.SetMasterVolume(data.MusicVolume)
	}
}

// GetOrCreateSoundtrack returns the singleton Soundtrack component for this
// ECS, creating it if needed. A non-nil driver replaces the current one.
func GetOrCreateSoundtrack(e *ecs.ECS, driver components.SoundtrackDriver) *components.SoundtrackData {
	entry, ok := components.Soundtrack.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Soundtrack))
		components.Soundtrack.SetValue(entry, components.SoundtrackData{
			MusicVolume:   cfg.Soundtrack.DefaultMusicVol,
			PendingEvents: make([]soundtrack.Event, 0, 8),
		})
	}
	data := components.Soundtrack.Get(entry)
	if driver != nil {
		data.Driver = driver
	}
	return data
}

// NewDrainEvents creates a system that moves every event waiting on events
// into the soundtrack queue without blocking.
func NewDrainEvents(events <-chan soundtrack.Event) ecs.System {
	return func(e *ecs.ECS) {
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				QueueSoundtrackEvent(e, ev)
			default:
				return
			}
		}
	}
}
