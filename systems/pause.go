package systems

import (
	"os"

	"github.com/automoto/farmstead/components"
	cfg "github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// NewUpdatePause creates the pause system. Cancel toggles the pause menu
// unless the save dialog owns the key. leave is called when the player picks
// Main Menu, before the scene changes.
// This system should run AFTER UpdateInput but BEFORE UpdateSavePrompt.
func NewUpdatePause(sceneChanger SceneChanger, createMenuScene func() interface{}, leave func()) ecs.System {
	return func(e *ecs.ECS) {
		pause := GetOrCreatePause(e)
		input := getOrCreateInput(e)

		// The settings overlay handles its own input, Esc included
		if IsSettingsOpen(e) {
			return
		}

		if GetAction(input, cfg.ActionCancel).JustPressed && !IsSavePromptOpen(e) {
			pause.IsPaused = !pause.IsPaused
			pause.SelectedOption = components.MenuResume
			return
		}

		// Only process menu input while paused
		if !pause.IsPaused {
			return
		}

		// Navigate menu with wrap-around using modulo arithmetic
		numOptions := int(components.MenuExit) + 1
		if GetAction(input, cfg.ActionMoveUp).JustPressed {
			pause.SelectedOption = components.PauseMenuOption(
				(int(pause.SelectedOption) - 1 + numOptions) % numOptions,
			)
		}
		if GetAction(input, cfg.ActionMoveDown).JustPressed {
			pause.SelectedOption = components.PauseMenuOption(
				(int(pause.SelectedOption) + 1) % numOptions,
			)
		}

		if GetAction(input, cfg.ActionConfirm).JustPressed {
			switch pause.SelectedOption {
			case components.MenuResume:
				pause.IsPaused = false
			case components.MenuSettings:
				OpenSettings(e)
			case components.MenuMainMenu:
				if leave != nil {
					leave()
				}
				sceneChanger.ChangeScene(createMenuScene())
			case components.MenuExit:
				os.Exit(0)
			}
		}
	}
}

// IsPaused reports whether the pause menu is showing.
func IsPaused(e *ecs.ECS) bool {
	entry, ok := components.Pause.First(e.World)
	return ok && components.Pause.Get(entry).IsPaused
}

// DrawPause renders the pause overlay and menu.
func DrawPause(e *ecs.ECS, screen *ebiten.Image) {
	pause := GetOrCreatePause(e)

	if !pause.IsPaused {
		return
	}

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	// Draw semi-transparent overlay
	vector.FillRect(
		screen,
		0, 0,
		float32(width), float32(height),
		cfg.Pause.OverlayColor,
		false,
	)

	menuOptions := cfg.Pause.MenuOptions
	totalMenuHeight := float64(len(menuOptions)) * (cfg.Pause.MenuItemHeight + cfg.Pause.MenuItemGap)
	startY := (height - totalMenuHeight) / 2

	fontFace := fonts.Bold.Get()

	for i, option := range menuOptions {
		y := startY + float64(i)*(cfg.Pause.MenuItemHeight+cfg.Pause.MenuItemGap)

		textColor := cfg.Pause.TextColorNormal
		if components.PauseMenuOption(i) == pause.SelectedOption {
			textColor = cfg.Pause.TextColorSelected
		}
		drawCentered(screen, option, fontFace, width, y+cfg.Pause.MenuItemHeight, textColor, 12)
	}

	input := getOrCreateInput(e)
	drawCentered(screen, getPauseHint(input.LastInputMethod), fonts.Small.Get(), width, height-12, cfg.Pause.TextColorNormal, 7)
}

// getPauseHint returns the appropriate hint for pause menu
func getPauseHint(method components.InputMethod) string {
	switch method {
	case components.InputPlayStation:
		return "Left Stick/D-Pad: Navigate   Cross: Select   Circle: Resume"
	case components.InputXbox:
		return "Left Stick/D-Pad: Navigate   A: Select   B: Resume"
	}
	return "Arrows: Navigate   Enter: Select   Esc: Resume"
}

// GetOrCreatePause returns the singleton Pause component, creating if needed.
func GetOrCreatePause(ecs *ecs.ECS) *components.PauseData {
	if _, ok := components.Pause.First(ecs.World); !ok {
		ent := ecs.World.Entry(ecs.World.Create(components.Pause))
		components.Pause.SetValue(ent, components.PauseData{
			IsPaused:       false,
			SelectedOption: components.MenuResume,
		})
	}

	ent, _ := components.Pause.First(ecs.World)
	return components.Pause.Get(ent)
}
