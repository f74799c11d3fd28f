package scenes

import (
	"image/color"
	"sync"

	"github.com/automoto/doomerang-soundtrack/components"
	cfg "github.com/automoto/doomerang-soundtrack/config"
	"github.com/automoto/doomerang-soundtrack/soundtrack"
	"github.com/automoto/doomerang-soundtrack/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// JukeboxScene drives the soundtrack engine from the keyboard and from an
// optional external event feed, and shows what it is doing.
type JukeboxScene struct {
	ecs    *ecs.ECS
	driver components.SoundtrackDriver
	events <-chan soundtrack.Event
	saved  *systems.SavedSettings
	board  *systems.NoticeBoard
	once   sync.Once
}

// NewJukeboxScene creates a jukebox scene. events, saved and board may be nil.
func NewJukeboxScene(driver components.SoundtrackDriver, events <-chan soundtrack.Event, saved *systems.SavedSettings, board *systems.NoticeBoard) *JukeboxScene {
	return &JukeboxScene{driver: driver, events: events, saved: saved, board: board}
}

func (js *JukeboxScene) Update() {
	js.once.Do(js.configure)
	js.ecs.Update()
}

func (js *JukeboxScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if js.ecs == nil {
		return
	}
	js.ecs.Draw(screen)
}

func (js *JukeboxScene) configure() {
	js.ecs = ecs.NewECS(donburi.NewWorld())

	systems.GetOrCreateSoundtrack(js.ecs, js.driver)
	systems.ApplySavedSettings(js.ecs, js.saved)

	// Inputs first so events queued this frame reach the engine this frame
	if js.events != nil {
		js.ecs.AddSystem(systems.NewDrainEvents(js.events))
	}
	js.ecs.AddSystem(systems.UpdateInput)
	js.ecs.AddSystem(systems.NewUpdateJukebox())
	js.ecs.AddSystem(systems.UpdateSoundtrack)
	if js.board != nil {
		js.ecs.AddSystem(systems.NewUpdateMessage(js.board))
	}

	// Renderers (notices draw on top of the jukebox)
	js.ecs.AddRenderer(cfg.Default, systems.DrawJukebox)
	js.ecs.AddRenderer(cfg.Default, systems.DrawMessage)
}
