package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"golang.org/x/image/font"
)

// drawCentered draws s horizontally centred at baseline y. charW is the
// approximate glyph advance for face.
func drawCentered(screen *ebiten.Image, s string, face font.Face, width, y float64, c color.Color, charW int) {
	x := int((width - float64(len(s)*charW)) / 2)
	text.Draw(screen, s, face, x, int(y), c)
}
