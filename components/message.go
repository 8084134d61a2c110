package components

import "github.com/yohamta/donburi"

// MessageStateData is a singleton tracking the active toast message
type MessageStateData struct {
	Text         string
	DisplayTimer int // Frames remaining to display current message
}

var MessageState = donburi.NewComponentType[MessageStateData]()
