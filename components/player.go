package components

import (
	"github.com/automoto/farmstead/shared/movement"
	"github.com/automoto/farmstead/shared/world"
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	Traveler     *world.Traveler
	LastResult   movement.Result
	BlockedFlash int // Frames left to tint the player after a rejected move
}

// Engine returns the engine for the active map.
func (p *PlayerData) Engine() *movement.Engine {
	return p.Traveler.Engine()
}

var Player = donburi.NewComponentType[PlayerData]()
