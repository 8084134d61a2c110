package components

import (
	"github.com/automoto/farmstead/shared/gamemath"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

type CameraData struct {
	Transform gamemath.Transform // Current smoothed world-to-screen projection
	Zoom      float64            // Target zoom; the transform scale eases toward it
	ZoomTween *gween.Tween       // Active zoom change, nil when settled
	Snap      bool               // Skip smoothing on the next update (after a map switch)
}

var Camera = donburi.NewComponentType[CameraData]()
