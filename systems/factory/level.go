package factory

import (
	"github.com/automoto/farmstead/archetypes"
	"github.com/automoto/farmstead/components"
	"github.com/automoto/farmstead/shared/world"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateLevel spawns the level entity. It is filled in by the Traveler's
// transfer callback when the player enters a map.
func CreateLevel(ecs *ecs.ECS, atlas *world.Atlas) *donburi.Entry {
	level := archetypes.Level.Spawn(ecs)
	components.Level.Set(level, &components.LevelData{
		Atlas: atlas,
	})
	return level
}
