package systems

import (
	"fmt"
	"strings"

	"github.com/automoto/farmstead/components"
	cfg "github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/fonts"
	"github.com/automoto/farmstead/shared/movement"
	"github.com/automoto/farmstead/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// DrawHUD renders the map name, the player's tile and facing, and any
// proximity flags in the top-left corner.
func DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	entry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	player := components.Player.Get(entry)
	engine := player.Engine()
	if engine == nil {
		return
	}

	lines := HUDLines(player.Traveler.MapName(), engine)
	face := fonts.Regular.Get()
	lineH := cfg.HUD.FontSize + 2
	m := cfg.HUD.Margin

	longest := 0
	for _, l := range lines {
		longest = max(longest, len(l))
	}
	panelW := float64(longest*7) + 2*m
	panelH := float64(len(lines))*lineH + m
	vector.FillRect(screen, float32(m), float32(m), float32(panelW), float32(panelH), cfg.HUD.PanelColor, false)

	for i, l := range lines {
		y := m + float64(i+1)*lineH
		text.Draw(screen, l, face, int(2*m), int(y), cfg.HUD.TextColor)
	}
}

// HUDLines is the text the HUD shows for engine on mapName.
func HUDLines(mapName string, engine *movement.Engine) []string {
	t := engine.Tile()
	lines := []string{
		mapName,
		fmt.Sprintf("tile %d,%d  %s", t.X, t.Y, engine.Facing()),
	}
	if flags := engine.Flags(); len(flags) > 0 {
		lines = append(lines, "near "+strings.Join(flags, ", "))
	}
	return lines
}
