package systems

import (
	"sync"

	"github.com/automoto/doomerang-soundtrack/components"
	cfg "github.com/automoto/doomerang-soundtrack/config"
	"github.com/automoto/doomerang-soundtrack/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// NoticeBoard is a diag.Reporter that collects errors from any goroutine so
// the message system can show them one at a time. Only errors accepted by
// Filter are kept; a nil Filter keeps everything.
type NoticeBoard struct {
	Filter func(error) bool

	mu      sync.Mutex
	pending []string
}

func (b *NoticeBoard) Report(err error) {
	if err == nil || (b.Filter != nil && !b.Filter(err)) {
		return
	}
	msg := err.Error()
	if n := cfg.Message.MaxLength; n > 3 && len(msg) > n {
		msg = msg[:n-3] + "..."
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, msg)
	// Oldest notices go first when the board overflows
	if n := cfg.Message.MaxPending; n > 0 && len(b.pending) > n {
		b.pending = append(b.pending[:0], b.pending[len(b.pending)-n:]...)
	}
}

func (b *NoticeBoard) next() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pending) == 0 {
		return "", false
	}
	msg := b.pending[0]
	b.pending = b.pending[1:]
	return msg, true
}

// NewUpdateMessage creates the system that moves notices from board to the
// screen, each for cfg.Message.DisplayDuration frames.
func NewUpdateMessage(board *NoticeBoard) ecs.System {
	return func(ecs *ecs.ECS) {
		state := getOrCreateMessageState(ecs)

		// Decrement display timer if active
		if state.DisplayTimer > 0 {
			state.DisplayTimer--
			if state.DisplayTimer == 0 {
				state.Active = ""
			}
			// Don't pick up the next notice while one is displaying
			return
		}

		if msg, ok := board.next(); ok {
			state.Active = msg
			state.DisplayTimer = cfg.Message.DisplayDuration
		}
	}
}

// DrawMessage renders the active notice above the key help
func DrawMessage(ecs *ecs.ECS, screen *ebiten.Image) {
	state := getOrCreateMessageState(ecs)
	if state.Active == "" {
		return
	}

	face := fonts.Regular.Get()

	// Measure text
	bounds := text.BoundString(face, state.Active) //nolint:staticcheck // TODO: migrate to text/v2
	textWidth := bounds.Dx()
	textHeight := bounds.Dy()

	padding := cfg.Message.BoxPadding
	boxWidth := float32(textWidth) + float32(padding)*2
	boxHeight := float32(textHeight) + float32(padding)*2

	screenWidth := float64(screen.Bounds().Dx())
	screenHeight := float64(screen.Bounds().Dy())
	boxX := float32((screenWidth - float64(boxWidth)) / 2)
	boxY := float32(screenHeight) - float32(cfg.Message.BottomMargin) - boxHeight

	vector.FillRect(
		screen,
		boxX, boxY,
		boxWidth, boxHeight,
		cfg.Message.BoxColor,
		false,
	)

	textX := int(boxX + float32(padding))
	textY := int(boxY + float32(padding) + float32(textHeight))
	text.Draw(screen, state.Active, face, textX, textY, cfg.Message.TextColor)
}

// getOrCreateMessageState returns the singleton MessageState component
func getOrCreateMessageState(ecs *ecs.ECS) *components.MessageStateData {
	entry, ok := components.MessageState.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.MessageState))
	}
	return components.MessageState.Get(entry)
}
