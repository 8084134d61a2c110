package systems

import (
	"image/color"

	"github.com/automoto/farmstead/components"
	cfg "github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/shared/collision"
	"github.com/automoto/farmstead/shared/gamemath"
	"github.com/automoto/farmstead/shared/zone"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// DrawLevel renders the floor, the blocked part of every collision region
// and the zones.
func DrawLevel(e *ecs.ECS, screen *ebiten.Image) {
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
	settings := GetOrCreateSettings(e)

	fillWorldRect(screen, cam, gamemath.Rect{W: m.Width, H: m.Height}, cfg.HUD.FloorColor)

	for _, r := range m.Regions {
		origin := gamemath.TileOrigin(r.Tile(), m.CellSize)
		fillWorldRect(screen, cam, collision.BlockedRect(r.Shape, origin, m.CellSize), cfg.HUD.RegionColor)
	}

	for _, z := range m.Zones {
		// Proximity areas are invisible in play.
		if z.Kind == zone.KindProximity && !settings.ShowZones {
			continue
		}
		c, ok := cfg.HUD.ZoneColors[z.Kind.String()]
		if !ok {
			continue
		}
		for _, t := range z.Tiles {
			fillWorldRect(screen, cam, gamemath.TileRect(t, m.CellSize), c)
		}
	}
}

// fillWorldRect fills a world-space rectangle through the camera transform.
func fillWorldRect(screen *ebiten.Image, cam gamemath.Transform, r gamemath.Rect, c color.Color) {
	p := cam.WorldToScreen(gamemath.Vec{X: r.X, Y: r.Y})
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(r.W*cam.Scale), float32(r.H*cam.Scale), c, false)
}

// strokeWorldRect outlines a world-space rectangle through the camera transform.
func strokeWorldRect(screen *ebiten.Image, cam gamemath.Transform, r gamemath.Rect, c color.Color) {
	p := cam.WorldToScreen(gamemath.Vec{X: r.X, Y: r.Y})
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(r.W*cam.Scale), float32(r.H*cam.Scale), 1, c, false)
}
