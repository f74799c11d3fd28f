package systems

import (
	"fmt"
	"math"

	"github.com/automoto/doomerang-soundtrack/components"
	cfg "github.com/automoto/doomerang-soundtrack/config"
	"github.com/automoto/doomerang-soundtrack/fonts"
	"github.com/automoto/doomerang-soundtrack/soundtrack"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// NewUpdateJukebox creates the system that turns input actions into
// soundtrack events and playback commands.
func NewUpdateJukebox() ecs.System {
	return func(e *ecs.ECS) {
		input := getOrCreateInput(e)
		for id := cfg.ActionNone + 1; id < cfg.ActionCount; id++ {
			if GetAction(input, id).JustPressed {
				HandleJukeboxAction(e, id)
			}
		}
	}
}

// HandleJukeboxAction applies one action and reports whether it did anything.
func HandleJukeboxAction(e *ecs.ECS, action cfg.ActionID) bool {
	data := GetOrCreateSoundtrack(e, nil)

	for i, state := range cfg.Jukebox.StateKeys {
		if id, ok := cfg.StateAction(i); ok && id == action {
			QueueSoundtrackEvent(e, soundtrack.StateEvent(state))
			return true
		}
	}

	switch action {
	case cfg.ActionIntensityUp, cfg.ActionIntensityDown:
		step := cfg.Jukebox.IntensityStep
		if action == cfg.ActionIntensityDown {
			step = -step
		}
		v := math.Round((data.LastIntensity+step)*100) / 100
		v = math.Max(0, math.Min(1, v))
		data.LastIntensity = v
		QueueSoundtrackEvent(e, soundtrack.IntensityEvent(v))
	case cfg.ActionVolumeUp, cfg.ActionVolumeDown:
		dir := 1
		if action == cfg.ActionVolumeDown {
			dir = -1
		}
		SetMusicVolume(e, cfg.NextVolumeStep(data.MusicVolume, dir))
		SaveCurrentSettings(data)
	case cfg.ActionMute:
		ToggleMute(e)
		SaveCurrentSettings(data)
	default:
		return handlePlaybackAction(data.Driver, action)
	}
	return true
}

func handlePlaybackAction(d components.SoundtrackDriver, action cfg.ActionID) bool {
	if d == nil {
		return false
	}
	switch action {
	case cfg.ActionPause:
		if d.State().Paused {
			d.Play()
		} else {
			d.Pause()
		}
	case cfg.ActionPlay:
		d.Play()
	case cfg.ActionStop:
		d.Stop()
	case cfg.ActionSkip:
		d.Skip()
	default:
		return false
	}
	return true
}

// getJukeboxHelp returns key hints for the input method last used
func getJukeboxHelp(method components.InputMethod) []string {
	switch method {
	case components.InputPlayStation:
		return []string{
			"D-Pad: Intensity   Triangle: Boss   Options: Pause",
			"Cross: Play   Circle: Stop   Square: Skip   L1/R1: Volume",
		}
	case components.InputXbox:
		return []string{
			"D-Pad: Intensity   Y: Boss   Start: Pause",
			"A: Play   B: Stop   X: Skip   LB/RB: Volume",
		}
	default:
		return []string{
			"1-6: State   [ ]: Intensity   P: Pause   Space: Play",
			"S: Stop   K: Skip   - =: Volume   M: Mute",
		}
	}
}

// DrawJukebox renders the playback state, recent classifications and key help.
func DrawJukebox(e *ecs.ECS, screen *ebiten.Image) {
	entry, ok := components.Soundtrack.First(e.World)
	if !ok {
		return
	}
	data := components.Soundtrack.Get(entry)

	width := float32(screen.Bounds().Dx())
	height := float32(screen.Bounds().Dy())
	vector.FillRect(screen, 0, 0, width, height, cfg.Jukebox.BackgroundCol, false)

	x := cfg.Jukebox.MarginX
	y := cfg.Jukebox.MarginY
	lh := cfg.Jukebox.LineHeight

	text.Draw(screen, cfg.C.Title, fonts.Title.Get(), x, y, cfg.Jukebox.AccentCol)
	y += lh * 2

	regular := fonts.Regular.Get()
	for _, line := range jukeboxStatusLines(data) {
		text.Draw(screen, line, regular, x, y, cfg.Jukebox.TextCol)
		y += lh
	}

	y += lh
	mono := fonts.Mono.Get()
	for i := len(data.History) - 1; i >= 0; i-- {
		text.Draw(screen, describeClassified(data.History[i]), mono, x, y, cfg.Jukebox.TextCol)
		y += lh
	}

	help := getJukeboxHelp(getOrCreateInput(e).LastInputMethod)
	hy := int(height) - cfg.Jukebox.MarginY/2 - lh*(len(help)-1)
	for _, line := range help {
		text.Draw(screen, line, regular, x, hy, cfg.Jukebox.AccentCol)
		hy += lh
	}
}

func jukeboxStatusLines(data *components.SoundtrackData) []string {
	lines := make([]string, 0, 5)
	if data.Driver == nil {
		return append(lines, "no engine")
	}
	s := data.Driver.State()

	seg := "silence"
	if s.Segment != soundtrack.SegmentNone {
		seg = fmt.Sprintf("%s at %.2f", s.Segment, s.Volume)
	}
	if s.Paused {
		seg += " (paused)"
	}
	lines = append(lines, "playing: "+seg)

	if s.TransitionInProgress {
		lines = append(lines, fmt.Sprintf("transition: %s", s.Target))
	}
	if s.Queued != soundtrack.SegmentNone {
		lines = append(lines, fmt.Sprintf("queued: %s", s.Queued))
	}

	vol := fmt.Sprintf("volume: %.2f", data.MusicVolume)
	if data.Muted {
		vol += " (muted)"
	}
	lines = append(lines, vol, fmt.Sprintf("intensity: %.2f", data.LastIntensity))
	return lines
}

func describeClassified(c components.ClassifiedEvent) string {
	in := fmt.Sprintf("state %q", c.Event.State)
	if c.Event.HasIntensity {
		in = fmt.Sprintf("intensity %.2f", c.Event.Intensity)
	}
	return fmt.Sprintf("%-20s -> %s %.2f", in, c.Result.Segment, c.Result.Level)
}
