// Package collision stores the static solid regions of a map and answers
// box-overlap queries against them.
package collision

import (
	"errors"
	"fmt"
	"strings"

	"github.com/automoto/farmstead/shared/gamemath"
)

// ErrUnknownShape is returned when a shape name is not one of the five
// supported sub-cell shapes.
var ErrUnknownShape = errors.New("unknown collision shape")

// Shape selects which part of a tile cell is solid.
type Shape uint8

const (
	ShapeFull Shape = iota
	ShapeHalfTop
	ShapeHalfBottom
	ShapeHalfLeft
	ShapeHalfRight
	shapeCount // sentinel
)

var shapeNames = [shapeCount]string{
	ShapeFull:       "full",
	ShapeHalfTop:    "half-top",
	ShapeHalfBottom: "half-bottom",
	ShapeHalfLeft:   "half-left",
	ShapeHalfRight:  "half-right",
}

// Shapes lists every valid shape in declaration order.
func Shapes() []Shape {
	return []Shape{ShapeFull, ShapeHalfTop, ShapeHalfBottom, ShapeHalfLeft, ShapeHalfRight}
}

func (s Shape) String() string {
	if s < shapeCount {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

// Valid reports whether s is one of the five declared shapes.
func (s Shape) Valid() bool {
	return s < shapeCount
}

// ParseShape converts a map-data shape name. Matching ignores case and
// surrounding space; "halfTop" and "half_top" spellings are accepted too since
// Tiled property values are hand-typed.
func ParseShape(name string) (Shape, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", "-")
	switch key {
	case "", "full":
		return ShapeFull, nil
	case "half-top", "halftop":
		return ShapeHalfTop, nil
	case "half-bottom", "halfbottom":
		return ShapeHalfBottom, nil
	case "half-left", "halfleft":
		return ShapeHalfLeft, nil
	case "half-right", "halfright":
		return ShapeHalfRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// MarshalText implements encoding.TextMarshaler so shapes round-trip through
// YAML and JSON as their names.
func (s Shape) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// BlockedRect returns the solid sub-rectangle of a tile whose top-left corner
// is origin. A half shape and the opposite half partition the cell exactly.
func BlockedRect(s Shape, origin gamemath.Vec, cellSize float64) gamemath.Rect {
	half := cellSize / 2
	switch s {
	case ShapeHalfTop:
		return gamemath.Rect{X: origin.X, Y: origin.Y, W: cellSize, H: half}
	case ShapeHalfBottom:
		return gamemath.Rect{X: origin.X, Y: origin.Y + half, W: cellSize, H: cellSize - half}
	case ShapeHalfLeft:
		return gamemath.Rect{X: origin.X, Y: origin.Y, W: half, H: cellSize}
	case ShapeHalfRight:
		return gamemath.Rect{X: origin.X + half, Y: origin.Y, W: cellSize - half, H: cellSize}
	default:
		return gamemath.Rect{X: origin.X, Y: origin.Y, W: cellSize, H: cellSize}
	}
}
