package systems

import (
	"github.com/automoto/farmstead/components"
	cfg "github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/shared/gamemath"
	"github.com/automoto/farmstead/shared/movement"
	"github.com/automoto/farmstead/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// facingMarkerSize is the facing indicator size as a fraction of the box.
const facingMarkerSize = 0.3

// DrawPlayer renders the player's collision box and a marker on the side it
// faces.
func DrawPlayer(e *ecs.ECS, screen *ebiten.Image) {
	entry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	player := components.Player.Get(entry)
	engine := player.Engine()
	if engine == nil {
		return
	}
	cam, ok := CameraTransform(e)
	if !ok {
		return
	}

	box := engine.Box()
	body := cfg.HUD.PlayerColor
	if player.BlockedFlash > 0 {
		body = cfg.HUD.BlockedColor
	}
	fillWorldRect(screen, cam, box, body)

	if marker, ok := FacingMarker(box, engine.Facing()); ok {
		fillWorldRect(screen, cam, marker, cfg.HUD.FacingColor)
	}
}

// FacingMarker returns the small rectangle drawn on the faced edge of box.
// Standing has no marker.
func FacingMarker(box gamemath.Rect, f movement.Facing) (gamemath.Rect, bool) {
	mw := box.W * facingMarkerSize
	mh := box.H * facingMarkerSize
	c := box.Center()
	switch f {
	case movement.FacingUp:
		return gamemath.Rect{X: c.X - mw/2, Y: box.Y, W: mw, H: mh}, true
	case movement.FacingDown:
		return gamemath.Rect{X: c.X - mw/2, Y: box.Y + box.H - mh, W: mw, H: mh}, true
	case movement.FacingLeft:
		return gamemath.Rect{X: box.X, Y: c.Y - mh/2, W: mw, H: mh}, true
	case movement.FacingRight:
		return gamemath.Rect{X: box.X + box.W - mw, Y: c.Y - mh/2, W: mw, H: mh}, true
	}
	return gamemath.Rect{}, false
}
