package zone

import (
	"fmt"
	"math"
	"sort"

	"github.com/automoto/farmstead/shared/gamemath"
	"github.com/solarlune/resolv"
)

// entry links a resolv object back to its zone and the zone's load order.
type entry struct {
	zone  *Zone
	order int
}

// Set indexes a map's zones in a resolv space whose cells are the map's tiles,
// so a one-pixel probe placed in a tile sees exactly the zones covering it.
// A Set reuses its probe between queries and is not safe for concurrent use.
type Set struct {
	space    *resolv.Space
	probe    *resolv.Object
	cellSize float64
	zones    []Zone
}

// NewSet builds the zone index for a worldW*worldH map. The cell size must be
// a positive whole number of pixels.
func NewSet(cellSize, worldW, worldH float64, zones []Zone) (*Set, error) {
	if cellSize <= 0 || cellSize != math.Trunc(cellSize) {
		return nil, fmt.Errorf("zone set: cell size must be a positive integer, got %v", cellSize)
	}
	cell := int(cellSize)
	cols := int(math.Ceil(worldW / cellSize))
	rows := int(math.Ceil(worldH / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	s := &Set{
		space:    resolv.NewSpace(cols*cell, rows*cell, cell, cell),
		cellSize: cellSize,
		zones:    make([]Zone, len(zones)),
	}
	copy(s.zones, zones)

	for i := range s.zones {
		z := &s.zones[i]
		if z.Kind >= kindCount {
			return nil, fmt.Errorf("zone set: zone %q: %w", z.Name, ErrUnknownKind)
		}
		if len(z.Tiles) == 0 {
			return nil, fmt.Errorf("zone set: zone %q has no tiles", z.Name)
		}
		if z.Radius < 0 {
			return nil, fmt.Errorf("zone set: zone %q has negative radius %d", z.Name, z.Radius)
		}
		for _, t := range z.Tiles {
			s.space.Add(s.newObject(z, i, t))
		}
	}

	s.probe = resolv.NewObject(0, 0, 1, 1, "probe")
	s.probe.SetShape(resolv.NewRectangle(0, 0, 1, 1))
	s.space.Add(s.probe)

	return s, nil
}

func (s *Set) newObject(z *Zone, order int, t gamemath.Tile) *resolv.Object {
	r := gamemath.TileRect(t, s.cellSize)
	if z.Kind == KindProximity && z.Radius > 0 {
		grow := float64(z.Radius) * s.cellSize
		r = gamemath.Rect{X: r.X - grow, Y: r.Y - grow, W: r.W + 2*grow, H: r.H + 2*grow}
	}
	obj := resolv.NewObject(r.X, r.Y, r.W, r.H, z.Kind.Tag())
	obj.SetShape(resolv.NewRectangle(0, 0, r.W, r.H))
	obj.Data = &entry{zone: z, order: order}
	return obj
}

// CellSize returns the grid cell size in pixels.
func (s *Set) CellSize() float64 {
	return s.cellSize
}

// Len returns the number of zones.
func (s *Set) Len() int {
	return len(s.zones)
}

// Zones returns the zones in load order. The slice must not be modified.
func (s *Set) Zones() []Zone {
	return s.zones
}

// At returns the zones whose trigger area covers tile t, in load order. With
// no kinds given every kind matches.
func (s *Set) At(t gamemath.Tile, kinds ...Kind) []*Zone {
	tags := make([]string, 0, len(kinds))
	for _, k := range kinds {
		tags = append(tags, k.Tag())
	}
	if len(tags) == 0 {
		tags = kindTags[:]
	}

	origin := gamemath.TileOrigin(t, s.cellSize)
	s.probe.X = origin.X
	s.probe.Y = origin.Y
	s.probe.Update()

	check := s.probe.Check(0, 0, tags...)
	if check == nil {
		return nil
	}

	var found []*entry
	seen := make(map[*Zone]bool)
	for _, obj := range check.Objects {
		if !hasAnyTag(obj, tags) {
			continue
		}
		e, ok := obj.Data.(*entry)
		if !ok || seen[e.zone] {
			continue
		}
		seen[e.zone] = true
		found = append(found, e)
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].order < found[j].order
	})

	out := make([]*Zone, len(found))
	for i, e := range found {
		out[i] = e.zone
	}
	return out
}

// AtPoint returns the zones covering the tile that contains pixel (x, y).
func (s *Set) AtPoint(x, y float64, kinds ...Kind) []*Zone {
	return s.At(gamemath.ToTile(x, y, s.cellSize), kinds...)
}

func hasAnyTag(obj *resolv.Object, tags []string) bool {
	for _, tag := range tags {
		if obj.HasTags(tag) {
			return true
		}
	}
	return false
}
