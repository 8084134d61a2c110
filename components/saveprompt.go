package components

import (
	"github.com/automoto/farmstead/shared/zone"
	"github.com/yohamta/donburi"
)

// SavePromptData stores the state of the save point dialog
type SavePromptData struct {
	IsOpen bool
	Zone   zone.Zone // Save point that opened the prompt
	Result string    // Outcome of the last confirm, shown in the dialog
}

var SavePrompt = donburi.NewComponentType[SavePromptData]()
