package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// FadeData drives the full-screen fade played on map switches.
type FadeData struct {
	Sequence *gween.Sequence // Fade out then in; nil when idle
	Alpha    float32         // Current overlay opacity (0..1)
}

var Fade = donburi.NewComponentType[FadeData]()
