package systems

import (
	"strings"
	"testing"

	"github.com/automoto/doomerang-soundtrack/components"
	cfg "github.com/automoto/doomerang-soundtrack/config"
	"github.com/automoto/doomerang-soundtrack/soundtrack"
)

func TestJukeboxStateActions(t *testing.T) {
	withStore(t, nil)
	d := &fakeDriver{}
	e := newTestECS(d)

	if !HandleJukeboxAction(e, cfg.ActionState1) || !HandleJukeboxAction(e, cfg.ActionState3) {
		t.Fatal("state actions should be bound")
	}
	UpdateSoundtrack(e)

	if len(d.notified) != 2 || d.notified[0].State != cfg.Jukebox.StateKeys[0] || d.notified[1].State != cfg.Jukebox.StateKeys[2] {
		t.Errorf("notified = %+v", d.notified)
	}
	if _, ok := cfg.StateAction(len(cfg.Jukebox.StateKeys)); ok {
		t.Errorf("no action past the last state")
	}
}

func TestJukeboxIntensityActions(t *testing.T) {
	withStore(t, nil)
	d := &fakeDriver{}
	e := newTestECS(d)

	for i := 0; i < 12; i++ {
		HandleJukeboxAction(e, cfg.ActionIntensityUp)
	}
	HandleJukeboxAction(e, cfg.ActionIntensityDown)
	UpdateSoundtrack(e)

	if n := len(d.notified); n != 13 {
		t.Fatalf("notified %d events, want 13", n)
	}
	if v := d.notified[11].Intensity; v != 1 {
		t.Errorf("intensity should clamp at 1, got %v", v)
	}
	if v := d.notified[12].Intensity; v != 0.9 {
		t.Errorf("intensity after step down = %v, want 0.9", v)
	}
	if GetOrCreateSoundtrack(e, nil).LastIntensity != 0.9 {
		t.Errorf("last intensity not tracked")
	}
}

func TestJukeboxPlaybackActions(t *testing.T) {
	withStore(t, nil)
	d := &fakeDriver{}
	e := newTestECS(d)

	for _, a := range []cfg.ActionID{cfg.ActionPause, cfg.ActionPause, cfg.ActionStop, cfg.ActionPlay, cfg.ActionSkip} {
		if !HandleJukeboxAction(e, a) {
			t.Fatalf("action %d should be bound", a)
		}
	}
	want := []string{"pause", "play", "stop", "play", "skip"}
	if strings.Join(d.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", d.calls, want)
	}
	if HandleJukeboxAction(e, cfg.ActionNone) {
		t.Errorf("ActionNone should do nothing")
	}
}

func TestJukeboxVolumeActionsPersist(t *testing.T) {
	withStore(t, &memStore{})
	d := &fakeDriver{}
	e := newTestECS(d)
	SetMusicVolume(e, 0.75)

	HandleJukeboxAction(e, cfg.ActionVolumeDown)
	HandleJukeboxAction(e, cfg.ActionVolumeDown)
	if d.lastMaster() != 0.25 {
		t.Errorf("master = %v, want 0.25", d.lastMaster())
	}
	HandleJukeboxAction(e, cfg.ActionVolumeUp)
	HandleJukeboxAction(e, cfg.ActionMute)

	saved, err := LoadSettings()
	if err != nil || saved == nil || saved.MusicVolume != 0.5 || !saved.Muted {
		t.Errorf("saved = %+v, %v", saved, err)
	}
}

func TestUpdateJukeboxFiresOnPress(t *testing.T) {
	withStore(t, nil)
	d := &fakeDriver{}
	e := newTestECS(d)
	update := NewUpdateJukebox()
	input := getOrCreateInput(e)

	// Held across two frames: only the first one counts
	input.Current[cfg.ActionSkip] = true
	update(e)
	input.Previous = input.Current
	update(e)

	if strings.Join(d.calls, ",") != "skip" {
		t.Errorf("calls = %v, want one skip", d.calls)
	}
}

func TestGetAction(t *testing.T) {
	input := &components.InputData{}
	input.Current[cfg.ActionPlay] = true
	input.Previous[cfg.ActionStop] = true

	if s := GetAction(input, cfg.ActionPlay); !s.Pressed || !s.JustPressed || s.JustReleased {
		t.Errorf("play = %+v", s)
	}
	if s := GetAction(input, cfg.ActionStop); s.Pressed || !s.JustReleased {
		t.Errorf("stop = %+v", s)
	}
}

func TestControllerTypeFromName(t *testing.T) {
	tests := map[string]components.InputMethod{
		"Sony DualSense Wireless Controller": components.InputPlayStation,
		"PS4 Controller":                     components.InputPlayStation,
		"Xbox Wireless Controller":           components.InputXbox,
		"":                                   components.InputXbox,
	}
	for name, want := range tests {
		if got := controllerTypeFromName(name); got != want {
			t.Errorf("controllerTypeFromName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestJukeboxStatusLines(t *testing.T) {
	d := &fakeDriver{state: soundtrack.PlaybackState{
		Segment:              soundtrack.SegmentAmbient,
		Volume:               0.5,
		TransitionInProgress: true,
		Target:               soundtrack.SegmentBossBattle,
		Queued:               soundtrack.SegmentExploration,
	}}
	data := &components.SoundtrackData{Driver: d, MusicVolume: 0.75, Muted: true}

	got := strings.Join(jukeboxStatusLines(data), "\n")
	for _, want := range []string{"ambient at 0.50", "transition: bossBattle", "queued: exploration", "(muted)"} {
		if !strings.Contains(got, want) {
			t.Errorf("status missing %q:\n%s", want, got)
		}
	}

	line := describeClassified(components.ClassifiedEvent{
		Event:  soundtrack.IntensityEvent(0.9),
		Result: soundtrack.Classification{Segment: soundtrack.SegmentBossBattle, Level: 1},
	})
	if !strings.Contains(line, "intensity 0.90") || !strings.Contains(line, "bossBattle 1.00") {
		t.Errorf("describeClassified = %q", line)
	}

	for _, m := range []components.InputMethod{components.InputKeyboard, components.InputXbox, components.InputPlayStation} {
		if len(getJukeboxHelp(m)) == 0 {
			t.Errorf("no help for input method %v", m)
		}
	}
}
