package gamemath

import "math"

// DiagonalFactor scales each axis when two perpendicular directions are held so
// diagonal travel covers the same distance per tick as axis-aligned travel.
var DiagonalFactor = 1 / math.Sqrt2

// ClampFloat constrains a value to the range [min, max].
func ClampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampToWorld keeps a box of size w*h fully inside a worldW*worldH map.
// If the box is larger than the world on an axis it is pinned to 0.
func ClampToWorld(p Vec, w, h, worldW, worldH float64) Vec {
	return Vec{
		X: ClampFloat(p.X, 0, math.Max(0, worldW-w)),
		Y: ClampFloat(p.Y, 0, math.Max(0, worldH-h)),
	}
}

// Velocity turns a summed direction (each component in -1, 0 or 1) into a
// per-tick displacement at the given speed.
func Velocity(dirX, dirY int, speed float64) Vec {
	v := Vec{X: float64(dirX) * speed, Y: float64(dirY) * speed}
	if dirX != 0 && dirY != 0 {
		v = v.Scale(DiagonalFactor)
	}
	return v
}
