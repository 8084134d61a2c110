package systems

import (
	"github.com/automoto/farmstead/components"
	"github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/shared/gamemath"
	"github.com/automoto/farmstead/tags"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCamera keeps the player centred, eased by FollowSmoothing, and clamps
// the view to the map when configured to.
func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	scale := camera.Transform.Scale
	if camera.ZoomTween != nil {
		z, done := camera.ZoomTween.Update(1 / float32(config.C.TPS))
		scale = float64(z)
		if done {
			camera.ZoomTween = nil
			scale = camera.Zoom
		}
	}
	if scale <= 0 {
		scale = camera.Zoom
	}

	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	engine := components.Player.Get(playerEntry).Engine()
	if engine == nil {
		return
	}

	target := CameraTarget(engine.Position(), engine.Box(), levelSize(e), scale)
	if camera.Snap || camera.Transform.Scale == 0 {
		camera.Transform = target
		camera.Snap = false
		return
	}
	// Translation is smoothed; scale follows the zoom tween directly.
	next := camera.Transform.Lerp(target, config.Camera.FollowSmoothing)
	next.Scale = scale
	camera.Transform = next
}

// CameraTarget is the transform that centres box at pos on screen.
func CameraTarget(pos gamemath.Vec, box gamemath.Rect, world gamemath.Vec, scale float64) gamemath.Transform {
	viewW, viewH := float64(config.C.Width), float64(config.C.Height)
	t := gamemath.CenterOn(pos, box.W, box.H, viewW, viewH, scale)
	if config.Camera.ClampToMap && world.X > 0 && world.Y > 0 {
		t = t.Clamp(world.X, world.Y, viewW, viewH)
	}
	return t
}

// SetZoom starts a tween toward z, limited to the configured zoom range.
func SetZoom(e *ecs.ECS, z float64) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)
	z = gamemath.ClampFloat(z, config.Camera.MinZoom, config.Camera.MaxZoom)
	if z == camera.Zoom {
		return
	}
	from := camera.Transform.Scale
	if from <= 0 {
		from = camera.Zoom
	}
	camera.Zoom = z
	camera.ZoomTween = gween.New(float32(from), float32(z), config.Camera.ZoomTweenSecs, ease.OutQuad)
}

// SnapCamera makes the next UpdateCamera jump straight to the player.
func SnapCamera(e *ecs.ECS) {
	if cameraEntry, ok := components.Camera.First(e.World); ok {
		components.Camera.Get(cameraEntry).Snap = true
	}
}

// CameraTransform returns the current world-to-screen transform.
func CameraTransform(e *ecs.ECS) (gamemath.Transform, bool) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return gamemath.Transform{}, false
	}
	t := components.Camera.Get(cameraEntry).Transform
	return t, t.Scale > 0
}

func cameraZoom(e *ecs.ECS) float64 {
	if cameraEntry, ok := components.Camera.First(e.World); ok {
		return components.Camera.Get(cameraEntry).Zoom
	}
	return config.Camera.Zoom
}

func levelSize(e *ecs.ECS) gamemath.Vec {
	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return gamemath.Vec{}
	}
	level := components.Level.Get(levelEntry)
	if level.Current == nil {
		return gamemath.Vec{}
	}
	return gamemath.Vec{X: level.Current.Width, Y: level.Current.Height}
}
