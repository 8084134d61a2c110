// Package gamemath holds the pure geometry shared by the engine, the clients and
// the map tools. Nothing in here depends on ebitengine, donburi or resolv.
package gamemath

import "math"

// Tile is an integer grid coordinate (column, row).
type Tile struct {
	X, Y int
}

// Vec is a continuous pixel-space position.
type Vec struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v*s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// ToTile converts a pixel coordinate to the tile containing it. Negative
// coordinates floor toward negative infinity, so -1 maps to tile -1, not 0.
func ToTile(px, py, cellSize float64) Tile {
	return Tile{
		X: int(math.Floor(px / cellSize)),
		Y: int(math.Floor(py / cellSize)),
	}
}

// TileOrigin returns the pixel coordinate of the top-left corner of t.
func TileOrigin(t Tile, cellSize float64) Vec {
	return Vec{X: float64(t.X) * cellSize, Y: float64(t.Y) * cellSize}
}

// TileRect returns the full cell rectangle of t.
func TileRect(t Tile, cellSize float64) Rect {
	o := TileOrigin(t, cellSize)
	return Rect{X: o.X, Y: o.Y, W: cellSize, H: cellSize}
}

// TileSpan returns the inclusive range of tiles a box at (x, y) of size w*h can
// touch. The far edge is exclusive, but a box ending exactly on a cell boundary
// still reports the next tile; callers filter with an exact overlap test.
func TileSpan(x, y, w, h, cellSize float64) (minT, maxT Tile) {
	return ToTile(x, y, cellSize), ToTile(x+w, y+h, cellSize)
}
