package systems

import (
	"image/color"

	"github.com/automoto/farmstead/components"
	cfg "github.com/automoto/farmstead/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

// StartFade plays the map switch fade: a short hold on the fade colour, then
// a fade back in.
func StartFade(e *ecs.ECS) {
	fade := getOrCreateFade(e)
	hold := cfg.Fade.Seconds / 3
	fade.Sequence = gween.NewSequence(
		gween.New(1, 1, hold, ease.Linear),
		gween.New(1, 0, cfg.Fade.Seconds, ease.InQuad),
	)
	fade.Alpha = 1
}

// UpdateFade advances the fade tween.
func UpdateFade(e *ecs.ECS) {
	fade := getOrCreateFade(e)
	if fade.Sequence == nil {
		return
	}
	alpha, _, done := fade.Sequence.Update(1 / float32(cfg.C.TPS))
	fade.Alpha = alpha
	if done {
		fade.Sequence = nil
		fade.Alpha = 0
	}
}

// IsFading reports whether the fade is still playing.
func IsFading(e *ecs.ECS) bool {
	entry, ok := components.Fade.First(e.World)
	return ok && components.Fade.Get(entry).Sequence != nil
}

// DrawFade covers the screen with the fade colour at the current alpha.
func DrawFade(e *ecs.ECS, screen *ebiten.Image) {
	fade := getOrCreateFade(e)
	if fade.Alpha <= 0 {
		return
	}
	a := fade.Alpha
	if a > 1 {
		a = 1
	}
	c := color.NRGBA{R: cfg.Fade.Color.R, G: cfg.Fade.Color.G, B: cfg.Fade.Color.B, A: uint8(255 * a)}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.FillRect(screen, 0, 0, float32(w), float32(h), c, false)
}

func getOrCreateFade(e *ecs.ECS) *components.FadeData {
	entry, ok := components.Fade.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Fade))
	}
	return components.Fade.Get(entry)
}
