package components

import "github.com/yohamta/donburi"

// SettingsData stores the toggles the player can change in game
type SettingsData struct {
	ShowCollision bool
	ShowZones     bool
	ShowGrid      bool
	Fullscreen    bool
}

var Settings = donburi.NewComponentType[SettingsData]()
