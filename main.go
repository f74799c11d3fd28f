package main

import (
	"context"
	"errors"
	"flag"
	"image"
	"log"

	"github.com/automoto/doomerang-soundtrack/assets"
	"github.com/automoto/doomerang-soundtrack/config"
	"github.com/automoto/doomerang-soundtrack/diag"
	"github.com/automoto/doomerang-soundtrack/fonts"
	"github.com/automoto/doomerang-soundtrack/notify"
	"github.com/automoto/doomerang-soundtrack/scenes"
	"github.com/automoto/doomerang-soundtrack/soundtrack"
	"github.com/automoto/doomerang-soundtrack/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func NewGame(scene Scene) *Game {
	return &Game{
		bounds: image.Rectangle{},
		scene:  scene,
	}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	notifyURL := flag.String("notify", "", "websocket URL of a gameplay event feed (ws://...)")
	locations := flag.String("locations", "", "comma-separated asset locations, highest priority first")
	flag.Parse()

	config.LoadEnv()
	if *locations != "" {
		config.Soundtrack.Locations = config.SplitLocations(*locations)
	}

	if err := fonts.LoadDefaults(config.Jukebox.FontSize); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetTPS(config.Soundtrack.TickRate)

	// Initialize persistence and load saved settings
	_ = systems.InitPersistence()
	saved, _ := systems.LoadSettings()

	// Abandoned transitions and undecodable tracks also show up on screen
	board := &systems.NoticeBoard{Filter: func(err error) bool {
		return errors.Is(err, soundtrack.ErrTransitionAbandoned) || errors.Is(err, assets.ErrDecodeFailure)
	}}
	reporter := diag.Tee(diag.LogReporter{}, board)
	audioCtx := audio.NewContext(config.Soundtrack.SampleRate)
	engine, err := soundtrack.NewEngine(config.Soundtrack, soundtrack.EngineOptions{
		Mixer:    soundtrack.NewEbitenMixer(audioCtx),
		Reporter: reporter,
	})
	if err != nil {
		log.Fatalf("Failed to create soundtrack engine: %v", err)
	}
	defer engine.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Decode the whole catalog in the background; Start shares the in-flight load
	go func() {
		if failed := engine.Cache.Preload(ctx); failed > 0 {
			log.Printf("[soundtrack] %d tracks failed to preload", failed)
		}
	}()
	engine.Start()

	var events chan soundtrack.Event
	if *notifyURL != "" {
		events = make(chan soundtrack.Event, 64)
		client := notify.NewClient(*notifyURL, diag.LogReporter{Prefix: "[notify]"})
		go func() {
			if err := client.Run(ctx, events); err != nil && ctx.Err() == nil {
				log.Printf("[notify] feed stopped: %v", err)
			}
		}()
	}

	if err := ebiten.RunGame(NewGame(scenes.NewJukeboxScene(engine, events, saved, board))); err != nil {
		log.Fatal(err)
	}
}
