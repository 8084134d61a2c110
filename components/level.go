package components

import (
	"github.com/automoto/farmstead/shared/leveldata"
	"github.com/automoto/farmstead/shared/world"
	"github.com/yohamta/donburi"
)

// LevelData tracks the map the player is on. It is refreshed after every
// map switch.
type LevelData struct {
	Atlas   *world.Atlas
	Name    string
	Current *leveldata.MapData
	Visits  int // Map switches since the scene started
}

var Level = donburi.NewComponentType[LevelData]()
