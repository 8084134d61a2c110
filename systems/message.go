package systems

import (
	"github.com/automoto/farmstead/components"
	cfg "github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const messageFrames = 120

// ShowMessage displays msg at the bottom of the screen for a couple of seconds.
func ShowMessage(e *ecs.ECS, msg string) {
	state := getOrCreateMessageState(e)
	state.Text = msg
	state.DisplayTimer = messageFrames
}

// UpdateMessage counts down the active message.
func UpdateMessage(e *ecs.ECS) {
	state := getOrCreateMessageState(e)
	if state.DisplayTimer > 0 {
		state.DisplayTimer--
		if state.DisplayTimer == 0 {
			state.Text = ""
		}
	}
}

// DrawMessage renders the active message in a panel above the bottom edge.
func DrawMessage(e *ecs.ECS, screen *ebiten.Image) {
	state := getOrCreateMessageState(e)
	if state.Text == "" {
		return
	}

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())
	face := fonts.Regular.Get()

	// Approximate text width for the 12pt face
	textWidth := float64(len(state.Text) * 7)
	panelW := textWidth + 2*cfg.HUD.Margin
	panelH := cfg.HUD.FontSize + 2*cfg.HUD.Margin
	x := (width - panelW) / 2
	y := height - panelH - cfg.HUD.Margin

	vector.FillRect(screen, float32(x), float32(y), float32(panelW), float32(panelH), cfg.HUD.PanelColor, false)
	text.Draw(screen, state.Text, face, int(x+cfg.HUD.Margin), int(y+cfg.HUD.Margin+cfg.HUD.FontSize-2), cfg.HUD.TextColor)
}

func getOrCreateMessageState(e *ecs.ECS) *components.MessageStateData {
	entry, ok := components.MessageState.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.MessageState))
	}
	return components.MessageState.Get(entry)
}
