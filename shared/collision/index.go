package collision

import (
	"fmt"
	"sort"

	"github.com/automoto/farmstead/shared/gamemath"
	"go.uber.org/zap"
)

// Region is a tile tagged with the sub-cell shape that blocks movement.
type Region struct {
	TileX int   `yaml:"tileX" json:"tileX"`
	TileY int   `yaml:"tileY" json:"tileY"`
	Shape Shape `yaml:"shape" json:"shape"`
}

// Tile returns the region's grid coordinate.
func (r Region) Tile() gamemath.Tile {
	return gamemath.Tile{X: r.TileX, Y: r.TileY}
}

// Duplicate describes a tile that was given more than one region.
type Duplicate struct {
	Tile   gamemath.Tile
	Shapes []Shape
}

// Index is a read-only, tile-keyed view of a map's collision regions. Several
// regions on one tile are kept and unioned: any of them overlapping blocks.
type Index struct {
	cellSize   float64
	tiles      map[gamemath.Tile][]Shape
	count      int
	duplicates []Duplicate
}

// Option configures NewIndex.
type Option func(*indexOptions)

type indexOptions struct {
	log *zap.Logger
}

// WithLogger makes NewIndex report duplicate regions at warn level.
func WithLogger(log *zap.Logger) Option {
	return func(o *indexOptions) {
		o.log = log
	}
}

// NewIndex builds the index for one map. cellSize must be positive and every
// region must carry a valid shape.
func NewIndex(cellSize float64, regions []Region, opts ...Option) (*Index, error) {
	o := indexOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if cellSize <= 0 {
		return nil, fmt.Errorf("collision index: cell size must be positive, got %v", cellSize)
	}

	idx := &Index{
		cellSize: cellSize,
		tiles:    make(map[gamemath.Tile][]Shape, len(regions)),
	}

	for i, r := range regions {
		if !r.Shape.Valid() {
			return nil, fmt.Errorf("collision index: region %d at (%d, %d): %w", i, r.TileX, r.TileY, ErrUnknownShape)
		}
		t := r.Tile()
		idx.tiles[t] = append(idx.tiles[t], r.Shape)
		idx.count++
	}

	for t, shapes := range idx.tiles {
		if len(shapes) < 2 {
			continue
		}
		idx.duplicates = append(idx.duplicates, Duplicate{Tile: t, Shapes: append([]Shape(nil), shapes...)})
	}
	sort.Slice(idx.duplicates, func(i, j int) bool {
		return tileLess(idx.duplicates[i].Tile, idx.duplicates[j].Tile)
	})
	for _, d := range idx.duplicates {
		o.log.Warn("duplicate collision regions on tile",
			zap.Int("tile_x", d.Tile.X),
			zap.Int("tile_y", d.Tile.Y),
			zap.Stringers("shapes", d.Shapes),
		)
	}

	return idx, nil
}

// CellSize returns the grid cell size in pixels.
func (idx *Index) CellSize() float64 {
	return idx.cellSize
}

// Len returns the number of regions, duplicates included.
func (idx *Index) Len() int {
	return idx.count
}

// At returns the shapes registered on tile t. The slice must not be modified.
func (idx *Index) At(t gamemath.Tile) []Shape {
	return idx.tiles[t]
}

// Duplicates lists tiles holding more than one region, sorted by row then column.
func (idx *Index) Duplicates() []Duplicate {
	return idx.duplicates
}

// Overlaps reports whether a box at (x, y) of size w*h intersects the solid
// part of any region. It checks every tile the box can touch and stops at the
// first hit.
func (idx *Index) Overlaps(x, y, w, h float64) bool {
	box := gamemath.Rect{X: x, Y: y, W: w, H: h}
	minT, maxT := gamemath.TileSpan(x, y, w, h, idx.cellSize)
	for ty := minT.Y; ty <= maxT.Y; ty++ {
		for tx := minT.X; tx <= maxT.X; tx++ {
			t := gamemath.Tile{X: tx, Y: ty}
			shapes, ok := idx.tiles[t]
			if !ok {
				continue
			}
			origin := gamemath.TileOrigin(t, idx.cellSize)
			for _, s := range shapes {
				if box.Overlaps(BlockedRect(s, origin, idx.cellSize)) {
					return true
				}
			}
		}
	}
	return false
}

// Regions returns every region sorted by row, column and shape. Used by debug
// overlays and map tools; the index itself never iterates it.
func (idx *Index) Regions() []Region {
	out := make([]Region, 0, idx.count)
	for t, shapes := range idx.tiles {
		for _, s := range shapes {
			out = append(out, Region{TileX: t.X, TileY: t.Y, Shape: s})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TileY != b.TileY || a.TileX != b.TileX {
			return tileLess(a.Tile(), b.Tile())
		}
		return a.Shape < b.Shape
	})
	return out
}

func tileLess(a, b gamemath.Tile) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
