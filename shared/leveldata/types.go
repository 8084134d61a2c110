// Package leveldata loads map definitions shared by the desktop client, the
// terminal client and the map tools. It has no dependencies on ebitengine or
// donburi: pure data only.
package leveldata

import (
	"fmt"

	"github.com/automoto/farmstead/shared/collision"
	"github.com/automoto/farmstead/shared/zone"
)

// DefaultSpawn is the spawn name used when a map is entered without a
// specific arrival point.
const DefaultSpawn = "default"

// MapData is everything the engine needs to instantiate one screen.
type MapData struct {
	Name     string  `yaml:"name"`
	CellSize float64 `yaml:"cellSize"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`

	// Zero means "use the configured default".
	Speed     float64 `yaml:"speed,omitempty"`
	BoxWidth  float64 `yaml:"boxWidth,omitempty"`
	BoxHeight float64 `yaml:"boxHeight,omitempty"`

	// Parent is the map an exit zone returns to when no entry point was
	// remembered, e.g. after loading a save inside an interior.
	Parent string `yaml:"parent,omitempty"`

	Regions []collision.Region `yaml:"regions"`
	Zones   []zone.Zone        `yaml:"zones"`
	Spawns  []SpawnPoint       `yaml:"spawns"`
}

// SpawnPoint is a named arrival position (top-left of the entity box).
type SpawnPoint struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// Validate checks the fields the engine cannot default.
func (m *MapData) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("map has no name")
	}
	if m.CellSize <= 0 {
		return fmt.Errorf("map %s: cell size must be positive, got %v", m.Name, m.CellSize)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("map %s: size must be positive, got %vx%v", m.Name, m.Width, m.Height)
	}
	for i, r := range m.Regions {
		if !r.Shape.Valid() {
			return fmt.Errorf("map %s: region %d: %w", m.Name, i, collision.ErrUnknownShape)
		}
	}
	seen := make(map[string]bool, len(m.Zones))
	for _, z := range m.Zones {
		if z.Name == "" {
			return fmt.Errorf("map %s: %s zone without a name", m.Name, z.Kind)
		}
		if seen[z.Name] {
			return fmt.Errorf("map %s: duplicate zone name %q", m.Name, z.Name)
		}
		seen[z.Name] = true
		if len(z.Tiles) == 0 {
			return fmt.Errorf("map %s: zone %q has no tiles", m.Name, z.Name)
		}
	}
	return nil
}

// Spawn returns the named spawn point. An empty name means DefaultSpawn.
func (m *MapData) Spawn(name string) (SpawnPoint, bool) {
	if name == "" {
		name = DefaultSpawn
	}
	for _, s := range m.Spawns {
		if s.Name == name {
			return s, true
		}
	}
	return SpawnPoint{}, false
}

// DefaultSpawnPoint returns the default spawn, else the first spawn, else
// the centre of the map.
func (m *MapData) DefaultSpawnPoint() SpawnPoint {
	if s, ok := m.Spawn(DefaultSpawn); ok {
		return s
	}
	if len(m.Spawns) > 0 {
		return m.Spawns[0]
	}
	return SpawnPoint{Name: DefaultSpawn, X: m.Width / 2, Y: m.Height / 2}
}
