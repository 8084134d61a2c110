package systems

import (
	"fmt"

	"github.com/automoto/farmstead/components"
	cfg "github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/fonts"
	"github.com/automoto/farmstead/shared/collision"
	"github.com/automoto/farmstead/shared/gamemath"
	"github.com/automoto/farmstead/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// DrawDebug renders the tile grid, collision outlines and zone labels,
// depending on the Settings toggles.
func DrawDebug(e *ecs.ECS, screen *ebiten.Image) {
	settings := GetOrCreateSettings(e)
	if !settings.ShowCollision && !settings.ShowZones && !settings.ShowGrid {
		return
	}

	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return
	}
	level := components.Level.Get(levelEntry)
	if level.Current == nil {
		return
	}
	cam, ok := CameraTransform(e)
	if !ok {
		return
	}
	m := level.Current
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()

	// Viewport in world coordinates for culling
	view := visibleWorld(cam, float64(width), float64(height))

	if settings.ShowGrid {
		minT, maxT := gamemath.TileSpan(view.X, view.Y, view.W, view.H, m.CellSize)
		for tx := minT.X; tx <= maxT.X+1; tx++ {
			p := cam.WorldToScreen(gamemath.TileOrigin(gamemath.Tile{X: tx}, m.CellSize))
			vector.FillRect(screen, float32(p.X), 0, 1, float32(height), cfg.HUD.GridColor, false)
		}
		for ty := minT.Y; ty <= maxT.Y+1; ty++ {
			p := cam.WorldToScreen(gamemath.TileOrigin(gamemath.Tile{Y: ty}, m.CellSize))
			vector.FillRect(screen, 0, float32(p.Y), float32(width), 1, cfg.HUD.GridColor, false)
		}
	}

	if settings.ShowCollision {
		idx, err := level.Atlas.Index(level.Name)
		if err == nil {
			for _, r := range idx.Regions() {
				rect := collision.BlockedRect(r.Shape, gamemath.TileOrigin(r.Tile(), m.CellSize), m.CellSize)
				if !rect.Overlaps(view) {
					continue
				}
				strokeWorldRect(screen, cam, rect, cfg.Red)
			}
			for _, d := range idx.Duplicates() {
				strokeWorldRect(screen, cam, gamemath.TileRect(d.Tile, m.CellSize), cfg.Magenta)
			}
		}
		drawPlayerBox(e, screen, cam)
	}

	if settings.ShowZones {
		face := fonts.Small.Get()
		for _, z := range m.Zones {
			if len(z.Tiles) == 0 {
				continue
			}
			c := cfg.HUD.ZoneColors[z.Kind.String()]
			for _, t := range z.Tiles {
				strokeWorldRect(screen, cam, gamemath.TileRect(t, m.CellSize), c)
			}
			p := cam.WorldToScreen(gamemath.TileOrigin(z.Tiles[0], m.CellSize))
			text.Draw(screen, z.Name, face, int(p.X)+2, int(p.Y)+10, cfg.White)
		}
	}
}

// drawPlayerBox outlines the player's collision box and labels its tile.
func drawPlayerBox(e *ecs.ECS, screen *ebiten.Image, cam gamemath.Transform) {
	entry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	engine := components.Player.Get(entry).Engine()
	if engine == nil {
		return
	}
	box := engine.Box()
	strokeWorldRect(screen, cam, box, cfg.LightBlue)

	t := engine.Tile()
	p := cam.WorldToScreen(gamemath.Vec{X: box.X, Y: box.Y + box.H})
	text.Draw(screen, fmt.Sprintf("%d,%d", t.X, t.Y), fonts.Small.Get(), int(p.X), int(p.Y)+10, cfg.LightBlue)
}

// visibleWorld returns the world rectangle the camera shows.
func visibleWorld(cam gamemath.Transform, viewW, viewH float64) gamemath.Rect {
	tl := cam.ScreenToWorld(gamemath.Vec{})
	br := cam.ScreenToWorld(gamemath.Vec{X: viewW, Y: viewH})
	return gamemath.Rect{X: tl.X, Y: tl.Y, W: br.X - tl.X, H: br.Y - tl.Y}
}
