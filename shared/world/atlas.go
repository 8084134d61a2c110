// Package world ties loaded maps to movement engines. The Atlas holds every
// map with its collision index built once; the Traveler owns the active
// engine and replaces it when a zone sends the player to another map.
package world

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/automoto/farmstead/shared/collision"
	"github.com/automoto/farmstead/shared/leveldata"
	"github.com/automoto/farmstead/shared/movement"
	"github.com/automoto/farmstead/shared/zone"
	"go.uber.org/zap"
)

// ErrUnknownMap is returned for map names the Atlas was not built with.
var ErrUnknownMap = errors.New("unknown map")

// Defaults fill in per-map movement parameters a map file leaves at zero.
type Defaults struct {
	Speed     float64
	BoxWidth  float64
	BoxHeight float64
}

// Atlas is the read-only set of maps for a game session.
type Atlas struct {
	maps     map[string]*leveldata.MapData
	names    []string
	indexes  map[string]*collision.Index
	defaults Defaults
	log      *zap.Logger
}

// NewAtlas builds collision indexes for every map and checks that each map
// can host an engine and that teleport targets and parents name maps that
// exist.
func NewAtlas(maps map[string]*leveldata.MapData, names []string, defaults Defaults, log *zap.Logger) (*Atlas, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Atlas{
		maps:     maps,
		names:    names,
		indexes:  make(map[string]*collision.Index, len(maps)),
		defaults: defaults,
		log:      log,
	}

	for _, name := range names {
		m, ok := maps[name]
		if !ok {
			return nil, fmt.Errorf("atlas: %w: %s", ErrUnknownMap, name)
		}
		idx, err := collision.NewIndex(m.CellSize, m.Regions,
			collision.WithLogger(log.With(zap.String("map", name))))
		if err != nil {
			return nil, fmt.Errorf("atlas: map %s: %w", name, err)
		}
		a.indexes[name] = idx

		cfg, err := a.Config(name)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("atlas: map %s: %w", name, err)
		}
		if _, err := zone.NewSet(m.CellSize, m.Width, m.Height, m.Zones); err != nil {
			return nil, fmt.Errorf("atlas: map %s: %w", name, err)
		}

		if m.Parent != "" {
			if _, ok := maps[m.Parent]; !ok {
				return nil, fmt.Errorf("atlas: map %s: parent: %w: %s", name, ErrUnknownMap, m.Parent)
			}
		}
		for _, z := range m.Zones {
			if z.Kind != zone.KindTeleport || z.Target.Map == "" {
				continue
			}
			if _, ok := maps[z.Target.Map]; !ok {
				return nil, fmt.Errorf("atlas: map %s: zone %s: %w: %s", name, z.Name, ErrUnknownMap, z.Target.Map)
			}
		}
	}

	log.Info("maps loaded", zap.Int("count", len(names)), zap.Strings("maps", names))
	return a, nil
}

// LoadAtlas loads every map under dir in fsys and builds the Atlas.
func LoadAtlas(fsys fs.FS, dir string, defaults Defaults, log *zap.Logger) (*Atlas, error) {
	maps, names, err := leveldata.LoadAllMaps(fsys, dir)
	if err != nil {
		return nil, err
	}
	return NewAtlas(maps, names, defaults, log)
}

// Names returns the sorted map names.
func (a *Atlas) Names() []string {
	return a.names
}

// Map returns the named map.
func (a *Atlas) Map(name string) (*leveldata.MapData, error) {
	m, ok := a.maps[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMap, name)
	}
	return m, nil
}

// Index returns the named map's collision index.
func (a *Atlas) Index(name string) (*collision.Index, error) {
	idx, ok := a.indexes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMap, name)
	}
	return idx, nil
}

// Config returns the movement parameters of the named map with defaults
// applied.
func (a *Atlas) Config(name string) (movement.Config, error) {
	m, err := a.Map(name)
	if err != nil {
		return movement.Config{}, err
	}
	cfg := movement.Config{
		Map:         name,
		CellSize:    m.CellSize,
		WorldWidth:  m.Width,
		WorldHeight: m.Height,
		BoxWidth:    m.BoxWidth,
		BoxHeight:   m.BoxHeight,
		Speed:       m.Speed,
	}
	if cfg.Speed == 0 {
		cfg.Speed = a.defaults.Speed
	}
	if cfg.BoxWidth == 0 {
		cfg.BoxWidth = a.defaults.BoxWidth
	}
	if cfg.BoxHeight == 0 {
		cfg.BoxHeight = a.defaults.BoxHeight
	}
	return cfg, nil
}

// NewEngine instantiates a movement engine for the named map at (x, y). Each
// engine gets its own zone set; the collision index is shared.
func (a *Atlas) NewEngine(name string, x, y float64, opts ...movement.Option) (*movement.Engine, error) {
	cfg, err := a.Config(name)
	if err != nil {
		return nil, err
	}
	m := a.maps[name]
	zones, err := zone.NewSet(m.CellSize, m.Width, m.Height, m.Zones)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", name, err)
	}

	base := []movement.Option{
		movement.WithIndex(a.indexes[name]),
		movement.WithZones(zones),
		movement.WithLogger(a.log.With(zap.String("map", name))),
		movement.WithPosition(x, y),
	}
	e, err := movement.New(cfg, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", name, err)
	}
	return e, nil
}
