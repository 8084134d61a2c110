package collision

import (
	"errors"
	"testing"

	"github.com/automoto/farmstead/shared/gamemath"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const cell = 40.0

func mustIndex(t *testing.T, regions ...Region) *Index {
	t.Helper()
	idx, err := NewIndex(cell, regions)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return idx
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		in      string
		want    Shape
		wantErr bool
	}{
		{"full", ShapeFull, false},
		{"half-top", ShapeHalfTop, false},
		{"half-bottom", ShapeHalfBottom, false},
		{"half-left", ShapeHalfLeft, false},
		{"half-right", ShapeHalfRight, false},
		{" Half_Top ", ShapeHalfTop, false},
		{"halfRight", ShapeHalfRight, false},
		{"", ShapeFull, false},
		{"diagonal", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseShape(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownShape) {
					t.Fatalf("ParseShape(%q) error = %v, want ErrUnknownShape", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseShape(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseShape(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestShapeTextRoundTrip(t *testing.T) {
	for _, s := range Shapes() {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", s, err)
		}
		var back Shape
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != s {
			t.Errorf("round trip %v -> %q -> %v", s, text, back)
		}
	}
}

// Every half shape and its opposite cover the cell exactly: same total area,
// no shared interior, and the union equals the full cell rectangle.
func TestHalfShapesPartitionCell(t *testing.T) {
	origin := gamemath.Vec{X: 120, Y: 0}
	full := BlockedRect(ShapeFull, origin, cell)
	pairs := [][2]Shape{
		{ShapeHalfTop, ShapeHalfBottom},
		{ShapeHalfLeft, ShapeHalfRight},
	}
	for _, p := range pairs {
		a := BlockedRect(p[0], origin, cell)
		b := BlockedRect(p[1], origin, cell)
		if a.Overlaps(b) {
			t.Errorf("%v and %v overlap: %v %v", p[0], p[1], a, b)
		}
		if a.W*a.H+b.W*b.H != full.W*full.H {
			t.Errorf("%v + %v area = %v, want %v", p[0], p[1], a.W*a.H+b.W*b.H, full.W*full.H)
		}
		minX, minY := min(a.X, b.X), min(a.Y, b.Y)
		maxX, maxY := max(a.X+a.W, b.X+b.W), max(a.Y+a.H, b.Y+b.H)
		if minX != full.X || minY != full.Y || maxX != full.X+full.W || maxY != full.Y+full.H {
			t.Errorf("%v + %v bounds (%v,%v)-(%v,%v) do not match cell %v", p[0], p[1], minX, minY, maxX, maxY, full)
		}
	}

	top := BlockedRect(ShapeHalfTop, origin, cell)
	if top.Y != 0 || top.H != 20 {
		t.Errorf("half-top rect = %v, want y in [0, 20)", top)
	}
}

func TestFullShapeBlocksAnyOverlap(t *testing.T) {
	idx := mustIndex(t, Region{TileX: 3, TileY: 0, Shape: ShapeFull})

	// Slide a 13x13 box across the cell [120,160)x[0,40) in 1px steps: it is
	// blocked exactly when the boxes intersect.
	for x := 100.0; x <= 170; x++ {
		for y := -20.0; y <= 50; y += 5 {
			want := gamemath.RectsOverlap(x, y, 13, 13, 120, 0, 40, 40)
			if got := idx.Overlaps(x, y, 13, 13); got != want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestHalfTopPassThrough(t *testing.T) {
	idx := mustIndex(t, Region{TileX: 3, TileY: 0, Shape: ShapeHalfTop})

	if idx.Overlaps(130, 25, 13, 13) {
		t.Error("box in the bottom half of a half-top tile must not be blocked")
	}
	if !idx.Overlaps(130, 19, 13, 13) {
		t.Error("box reaching into the top half must be blocked")
	}
	if idx.Overlaps(130, 20, 13, 13) {
		t.Error("box touching the half-top edge must not be blocked")
	}
}

func TestHalfShapes(t *testing.T) {
	tests := []struct {
		shape   Shape
		x, y    float64
		blocked bool
	}{
		{ShapeHalfBottom, 130, 5, false},
		{ShapeHalfBottom, 130, 10, true},
		{ShapeHalfLeft, 141, 10, false},
		{ShapeHalfLeft, 139, 10, true},
		{ShapeHalfRight, 126, 10, false},
		{ShapeHalfRight, 128, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			idx := mustIndex(t, Region{TileX: 3, TileY: 0, Shape: tt.shape})
			if got := idx.Overlaps(tt.x, tt.y, 13, 13); got != tt.blocked {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.blocked)
			}
		})
	}
}

func TestOverlapsIsIdempotent(t *testing.T) {
	idx := mustIndex(t,
		Region{TileX: 3, TileY: 0, Shape: ShapeFull},
		Region{TileX: 4, TileY: 1, Shape: ShapeHalfLeft},
	)
	for i := 0; i < 5; i++ {
		if !idx.Overlaps(139, 10, 13, 13) {
			t.Fatal("blocked query changed result")
		}
		if idx.Overlaps(10, 10, 13, 13) {
			t.Fatal("open query changed result")
		}
	}
	if idx.Len() != 2 {
		t.Errorf("Len = %d after queries", idx.Len())
	}
}

func TestDuplicateRegionsUnion(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	idx, err := NewIndex(cell, []Region{
		{TileX: 2, TileY: 2, Shape: ShapeHalfTop},
		{TileX: 2, TileY: 2, Shape: ShapeHalfLeft},
		{TileX: 5, TileY: 5, Shape: ShapeFull},
	}, WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	dups := idx.Duplicates()
	if len(dups) != 1 || dups[0].Tile != (gamemath.Tile{X: 2, Y: 2}) || len(dups[0].Shapes) != 2 {
		t.Fatalf("Duplicates = %+v", dups)
	}
	if logs.Len() != 1 {
		t.Errorf("expected one duplicate warning, got %d", logs.Len())
	}

	// Bottom-right quarter of the tile is free under both shapes.
	if idx.Overlaps(101, 101, 13, 13) {
		t.Error("bottom-right quarter should be open")
	}
	// Bottom-left quarter is solid only through half-left.
	if !idx.Overlaps(81, 101, 13, 13) {
		t.Error("half-left part of the union should block")
	}
	// Top-right quarter is solid only through half-top.
	if !idx.Overlaps(101, 81, 13, 13) {
		t.Error("half-top part of the union should block")
	}
}

func TestNewIndexRejectsBadInput(t *testing.T) {
	if _, err := NewIndex(0, nil); err == nil {
		t.Error("zero cell size accepted")
	}
	_, err := NewIndex(cell, []Region{{TileX: 1, TileY: 1, Shape: Shape(42)}})
	if !errors.Is(err, ErrUnknownShape) {
		t.Errorf("invalid shape error = %v", err)
	}
}

func TestRegionsSorted(t *testing.T) {
	idx := mustIndex(t,
		Region{TileX: 4, TileY: 1, Shape: ShapeFull},
		Region{TileX: 0, TileY: 1, Shape: ShapeHalfRight},
		Region{TileX: 9, TileY: 0, Shape: ShapeFull},
	)
	got := idx.Regions()
	want := []Region{
		{TileX: 9, TileY: 0, Shape: ShapeFull},
		{TileX: 0, TileY: 1, Shape: ShapeHalfRight},
		{TileX: 4, TileY: 1, Shape: ShapeFull},
	}
	if len(got) != len(want) {
		t.Fatalf("Regions = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Regions[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
