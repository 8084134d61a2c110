package gamemath

// Transform is a translate+scale projection from world space to screen space:
// screen = world*Scale + Translate.
type Transform struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
}

// CenterOn returns the transform that keeps the entity box centred in the
// viewport: translate = viewportCenter - entityCenter*scale.
func CenterOn(entity Vec, boxW, boxH, viewW, viewH, scale float64) Transform {
	if scale == 0 {
		scale = 1
	}
	cx := entity.X + boxW/2
	cy := entity.Y + boxH/2
	return Transform{
		TranslateX: viewW/2 - cx*scale,
		TranslateY: viewH/2 - cy*scale,
		Scale:      scale,
	}
}

// Clamp shifts the transform so the visible area never leaves the
// worldW*worldH map. Axes where the scaled world is smaller than the viewport
// centre the world instead.
func (t Transform) Clamp(worldW, worldH, viewW, viewH float64) Transform {
	t.TranslateX = clampAxis(t.TranslateX, worldW*t.Scale, viewW)
	t.TranslateY = clampAxis(t.TranslateY, worldH*t.Scale, viewH)
	return t
}

func clampAxis(translate, scaledWorld, view float64) float64 {
	if scaledWorld <= view {
		return (view - scaledWorld) / 2
	}
	return ClampFloat(translate, view-scaledWorld, 0)
}

// WorldToScreen projects a world point.
func (t Transform) WorldToScreen(p Vec) Vec {
	return Vec{X: p.X*t.Scale + t.TranslateX, Y: p.Y*t.Scale + t.TranslateY}
}

// ScreenToWorld is the inverse of WorldToScreen.
func (t Transform) ScreenToWorld(p Vec) Vec {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	return Vec{X: (p.X - t.TranslateX) / s, Y: (p.Y - t.TranslateY) / s}
}

// Lerp moves t toward target by factor (0..1) on every field. Used for camera
// smoothing.
func (t Transform) Lerp(target Transform, factor float64) Transform {
	return Transform{
		TranslateX: t.TranslateX + (target.TranslateX-t.TranslateX)*factor,
		TranslateY: t.TranslateY + (target.TranslateY-t.TranslateY)*factor,
		Scale:      t.Scale + (target.Scale-t.Scale)*factor,
	}
}
