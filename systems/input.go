package systems

import (
	"strings"

	"github.com/automoto/farmstead/components"
	cfg "github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/config/keymap"
	"github.com/automoto/farmstead/shared/movement"
	"github.com/automoto/farmstead/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// Cache controller types to avoid string allocation every frame
var controllerTypeCache = make(map[ebiten.GamepadID]components.InputMethod)

// moveActions maps the directional actions onto engine directions.
var moveActions = [...]struct {
	action cfg.ActionID
	dir    movement.Direction
}{
	{cfg.ActionMoveUp, movement.Up},
	{cfg.ActionMoveDown, movement.Down},
	{cfg.ActionMoveLeft, movement.Left},
	{cfg.ActionMoveRight, movement.Right},
}

// UpdateInput polls raw input and updates the InputComponent.
// Must run BEFORE UpdatePlayerInput in the system order.
func UpdateInput(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)

	// Swap buffers: current becomes previous, then zero out current
	input.Previous = input.Current
	input.Current = [cfg.ActionCount]bool{}

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	// Read analog stick state (with deadzone)
	analogLeft, analogRight, analogUp, analogDown, analogGpID := getAnalogStickState(gamepadIDs)

	var keyboardUsed, gamepadUsed bool
	var activeGamepadID ebiten.GamepadID

	for actionID, binding := range keymap.Input.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				input.Current[actionID] = true
				keyboardUsed = true
			}
		}

		for _, gpID := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					input.Current[actionID] = true
					gamepadUsed = true
					activeGamepadID = gpID
				}
			}
		}
	}

	// Merge analog stick into directional actions
	for _, a := range []struct {
		held   bool
		action cfg.ActionID
	}{
		{analogLeft, cfg.ActionMoveLeft},
		{analogRight, cfg.ActionMoveRight},
		{analogUp, cfg.ActionMoveUp},
		{analogDown, cfg.ActionMoveDown},
	} {
		if a.held {
			input.Current[a.action] = true
			gamepadUsed = true
			activeGamepadID = analogGpID
		}
	}

	// Update last input method - gamepad takes priority if both used
	if gamepadUsed {
		input.LastInputMethod = getControllerType(activeGamepadID)
	} else if keyboardUsed {
		input.LastInputMethod = components.InputKeyboard
	}
}

// UpdatePlayerInput turns directional action edges into engine presses and
// releases. While the player cannot move every held direction is released.
func UpdatePlayerInput(e *ecs.ECS) {
	entry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	player := components.Player.Get(entry)
	engine := player.Engine()
	if engine == nil {
		return
	}

	if !CanMove(e) {
		engine.ReleaseAll()
		return
	}

	applyMoveActions(getOrCreateInput(e), engine)
}

// applyMoveActions forwards this frame's directional edges to engine.
func applyMoveActions(input *components.InputData, engine *movement.Engine) {
	for _, m := range moveActions {
		state := GetAction(input, m.action)
		switch {
		case state.JustPressed:
			engine.Press(m.dir)
		case state.JustReleased:
			engine.Release(m.dir)
		case state.Pressed && !isHeld(engine, m.dir):
			// Held through a pause or prompt; pick it back up.
			engine.Press(m.dir)
		}
	}
}

func isHeld(engine *movement.Engine, d movement.Direction) bool {
	for _, h := range engine.Held() {
		if h == d {
			return true
		}
	}
	return false
}

// getControllerType returns cached controller type, detecting on first access
func getControllerType(gpID ebiten.GamepadID) components.InputMethod {
	if method, ok := controllerTypeCache[gpID]; ok {
		return method
	}

	name := strings.ToLower(ebiten.GamepadName(gpID))
	var method components.InputMethod
	if strings.Contains(name, "ps4") || strings.Contains(name, "ps5") ||
		strings.Contains(name, "playstation") || strings.Contains(name, "dualshock") ||
		strings.Contains(name, "dualsense") {
		method = components.InputPlayStation
	} else {
		// Default gamepad to Xbox-style
		method = components.InputXbox
	}

	controllerTypeCache[gpID] = method
	return method
}

// getAnalogStickState reads the left analog stick from all gamepads
// Returns directional states based on deadzone threshold and the active gamepad ID
func getAnalogStickState(gamepads []ebiten.GamepadID) (left, right, up, down bool, activeGpID ebiten.GamepadID) {
	deadzone := keymap.Input.AnalogDeadzone

	for _, gpID := range gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}

		horizontal := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		vertical := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickVertical)

		if horizontal < -deadzone {
			left = true
			activeGpID = gpID
		}
		if horizontal > deadzone {
			right = true
			activeGpID = gpID
		}
		if vertical < -deadzone {
			up = true
			activeGpID = gpID
		}
		if vertical > deadzone {
			down = true
			activeGpID = gpID
		}
	}

	return
}

// getOrCreateInput returns the singleton Input component, creating if needed
func getOrCreateInput(ecs *ecs.ECS) *components.InputData {
	entry, ok := components.Input.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Input))
		// Zero-value InputData is correct (all bools false)
	}
	return components.Input.Get(entry)
}

// GetAction returns the full ActionState for an action ID.
// JustPressed/JustReleased are derived from current vs previous frame.
func GetAction(input *components.InputData, id cfg.ActionID) components.ActionState {
	curr := input.Current[id]
	prev := input.Previous[id]
	return components.ActionState{
		Pressed:      curr,
		JustPressed:  curr && !prev,
		JustReleased: !curr && prev,
	}
}
