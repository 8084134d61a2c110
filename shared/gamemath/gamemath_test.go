package gamemath

import (
	"math"
	"testing"
)

func TestToTile(t *testing.T) {
	tests := []struct {
		name     string
		px, py   float64
		cellSize float64
		want     Tile
	}{
		{"origin", 0, 0, 40, Tile{0, 0}},
		{"inside first cell", 39.9, 39.9, 40, Tile{0, 0}},
		{"exact boundary", 40, 80, 40, Tile{1, 2}},
		{"interior cell size", 250, 99, 100, Tile{2, 0}},
		{"negative floors down", -1, -0.5, 40, Tile{-1, -1}},
		{"negative boundary", -40, -41, 40, Tile{-1, -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToTile(tt.px, tt.py, tt.cellSize)
			if got != tt.want {
				t.Errorf("ToTile(%v, %v, %v) = %v, want %v", tt.px, tt.py, tt.cellSize, got, tt.want)
			}
			wantX := int(math.Floor(tt.px / tt.cellSize))
			wantY := int(math.Floor(tt.py / tt.cellSize))
			if got.X != wantX || got.Y != wantY {
				t.Errorf("ToTile disagrees with floor: got %v, want (%d, %d)", got, wantX, wantY)
			}
		})
	}
}

func TestTileOriginRoundTrip(t *testing.T) {
	for _, tile := range []Tile{{0, 0}, {3, 7}, {-2, -5}} {
		o := TileOrigin(tile, 40)
		if got := ToTile(o.X, o.Y, 40); got != tile {
			t.Errorf("ToTile(TileOrigin(%v)) = %v", tile, got)
		}
	}
}

func TestRectsOverlap(t *testing.T) {
	cell := Rect{X: 120, Y: 0, W: 40, H: 40}
	tests := []struct {
		name string
		box  Rect
		want bool
	}{
		{"inside", Rect{130, 10, 13, 13}, true},
		{"touching left edge", Rect{107, 10, 13, 13}, false},
		{"one pixel in", Rect{108, 10, 13, 13}, true},
		{"touching bottom edge", Rect{130, 40, 13, 13}, false},
		{"far away", Rect{0, 100, 13, 13}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Overlaps(cell); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := cell.Overlaps(tt.box); got != tt.want {
				t.Errorf("Overlaps is not symmetric: %v", got)
			}
		})
	}
}

func TestVelocityDiagonal(t *testing.T) {
	v := Velocity(1, -1, 20)
	want := 20 / math.Sqrt2
	if math.Abs(v.X-want) > 1e-9 || math.Abs(v.Y+want) > 1e-9 {
		t.Fatalf("Velocity(1, -1, 20) = %v, want (%v, %v)", v, want, -want)
	}
	if math.Abs(v.X-14.142) > 0.001 {
		t.Errorf("diagonal component %v, want about 14.14", v.X)
	}

	straight := Velocity(1, 0, 20)
	if straight != (Vec{X: 20}) {
		t.Errorf("Velocity(1, 0, 20) = %v", straight)
	}
}

func TestClampToWorld(t *testing.T) {
	got := ClampToWorld(Vec{X: -5, Y: 1000}, 13, 13, 400, 400)
	if got != (Vec{X: 0, Y: 387}) {
		t.Errorf("ClampToWorld = %v", got)
	}
	inside := Vec{X: 50, Y: 60}
	if got := ClampToWorld(inside, 13, 13, 400, 400); got != inside {
		t.Errorf("ClampToWorld moved an in-bounds point to %v", got)
	}
}

func TestCenterOn(t *testing.T) {
	tr := CenterOn(Vec{X: 100, Y: 100}, 20, 20, 640, 360, 2)
	// Entity centre (110, 110) must land on the viewport centre.
	got := tr.WorldToScreen(Vec{X: 110, Y: 110})
	if got != (Vec{X: 320, Y: 180}) {
		t.Errorf("entity centre projects to %v, want (320, 180)", got)
	}
	if tr.TranslateX != 320-110*2 || tr.TranslateY != 180-110*2 {
		t.Errorf("translate = (%v, %v)", tr.TranslateX, tr.TranslateY)
	}

	back := tr.ScreenToWorld(got)
	if back != (Vec{X: 110, Y: 110}) {
		t.Errorf("ScreenToWorld round trip = %v", back)
	}
}

func TestTransformClamp(t *testing.T) {
	// Entity at the top-left corner of a large world: the camera stops at 0.
	tr := CenterOn(Vec{X: 0, Y: 0}, 10, 10, 640, 360, 1).Clamp(2000, 2000, 640, 360)
	if tr.TranslateX != 0 || tr.TranslateY != 0 {
		t.Errorf("clamped translate = (%v, %v), want (0, 0)", tr.TranslateX, tr.TranslateY)
	}

	// A world smaller than the viewport is centred.
	small := CenterOn(Vec{X: 50, Y: 50}, 10, 10, 640, 360, 1).Clamp(200, 100, 640, 360)
	if small.TranslateX != 220 || small.TranslateY != 130 {
		t.Errorf("small world translate = (%v, %v), want (220, 130)", small.TranslateX, small.TranslateY)
	}
}
