package factory

import (
	"github.com/automoto/farmstead/archetypes"
	"github.com/automoto/farmstead/components"
	"github.com/automoto/farmstead/shared/world"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreatePlayer spawns the player entity driven by traveler.
func CreatePlayer(ecs *ecs.ECS, traveler *world.Traveler) *donburi.Entry {
	player := archetypes.Player.Spawn(ecs)
	components.Player.Set(player, &components.PlayerData{
		Traveler: traveler,
	})
	return player
}
