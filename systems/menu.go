package systems

import (
	"os"

	"github.com/automoto/farmstead/components"
	cfg "github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const (
	menuTitleY      = 110.0
	menuStartY      = 160.0
	menuItemHeight  = 20.0
	menuItemGap     = 8.0
	confirmPromptY  = 150.0
	menuTitleText   = "FARMSTEAD"
	confirmQuestion = "Overwrite your saved game?"
)

// SceneChanger allows systems to trigger scene transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// NewUpdateMenu creates an UpdateMenu system with scene transition
// capability. createWorldScene receives true to continue the saved game.
func NewUpdateMenu(sceneChanger SceneChanger, createWorldScene func(continueGame bool) interface{}) ecs.System {
	return func(e *ecs.ECS) {
		menu := GetOrCreateMenu(e)
		input := getOrCreateInput(e)

		if menu.ShowingConfirmDialog {
			updateConfirmDialog(menu, input, func() {
				ClearGame()
				sceneChanger.ChangeScene(createWorldScene(false))
			})
			return
		}

		numOptions := len(menu.VisibleOptions)
		if numOptions == 0 {
			return
		}

		if GetAction(input, cfg.ActionMoveUp).JustPressed {
			menu.SelectedIndex = (menu.SelectedIndex - 1 + numOptions) % numOptions
		}
		if GetAction(input, cfg.ActionMoveDown).JustPressed {
			menu.SelectedIndex = (menu.SelectedIndex + 1) % numOptions
		}

		if GetAction(input, cfg.ActionConfirm).JustPressed {
			switch menu.VisibleOptions[menu.SelectedIndex] {
			case components.MainMenuNewGame:
				if menu.HasSaveGame {
					menu.ShowingConfirmDialog = true
					menu.ConfirmSelection = 0
					return
				}
				sceneChanger.ChangeScene(createWorldScene(false))
			case components.MainMenuContinue:
				sceneChanger.ChangeScene(createWorldScene(true))
			case components.MainMenuExit:
				os.Exit(0)
			}
		}

		if GetAction(input, cfg.ActionCancel).JustPressed {
			os.Exit(0)
		}
	}
}

func updateConfirmDialog(menu *components.MenuData, input *components.InputData, onYes func()) {
	if GetAction(input, cfg.ActionMoveLeft).JustPressed || GetAction(input, cfg.ActionMoveRight).JustPressed {
		menu.ConfirmSelection = 1 - menu.ConfirmSelection
	}
	if GetAction(input, cfg.ActionCancel).JustPressed {
		menu.ShowingConfirmDialog = false
		return
	}
	if GetAction(input, cfg.ActionConfirm).JustPressed {
		menu.ShowingConfirmDialog = false
		if menu.ConfirmSelection == 1 {
			onYes()
		}
	}
}

// DrawMenu renders the main menu screen
func DrawMenu(e *ecs.ECS, screen *ebiten.Image) {
	menu := GetOrCreateMenu(e)

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.FillRect(screen, 0, 0, float32(width), float32(height), cfg.HUD.FloorColor, false)

	titleFont := fonts.Title.Get()
	titleWidth := len(menuTitleText) * 20 // Approximate width for 32pt font
	titleX := int((width - float64(titleWidth)) / 2)
	text.Draw(screen, menuTitleText, titleFont, titleX, int(menuTitleY), cfg.Yellow)

	menuFont := fonts.Bold.Get()

	if menu.ShowingConfirmDialog {
		drawCentered(screen, confirmQuestion, menuFont, width, confirmPromptY, cfg.White, 12)
		no, yes := cfg.White, cfg.White
		if menu.ConfirmSelection == 0 {
			no = cfg.Orange
		} else {
			yes = cfg.Orange
		}
		text.Draw(screen, "No", menuFont, int(width/2)-60, int(confirmPromptY+40), no)
		text.Draw(screen, "Yes", menuFont, int(width/2)+30, int(confirmPromptY+40), yes)
		return
	}

	for i, option := range menu.VisibleOptions {
		y := menuStartY + float64(i)*(menuItemHeight+menuItemGap)

		textColor := cfg.White
		if i == menu.SelectedIndex {
			textColor = cfg.Orange
		}
		drawCentered(screen, getOptionLabel(option), menuFont, width, y+menuItemHeight, textColor, 12)
	}

	input := getOrCreateInput(e)
	drawCentered(screen, getMenuHint(input.LastInputMethod), fonts.Small.Get(), width, height-12, cfg.White, 7)
}

// getMenuHint returns the appropriate hint for menu navigation
func getMenuHint(method components.InputMethod) string {
	switch method {
	case components.InputPlayStation:
		return "Left Stick/D-Pad: Navigate   Cross: Select"
	case components.InputXbox:
		return "Left Stick/D-Pad: Navigate   A: Select"
	}
	return "Arrows/WASD: Navigate   Enter: Select"
}

// getOptionLabel returns the display text for a menu option
func getOptionLabel(option components.MainMenuOption) string {
	switch option {
	case components.MainMenuNewGame:
		return "New Game"
	case components.MainMenuContinue:
		return "Continue"
	case components.MainMenuExit:
		return "Exit"
	default:
		return ""
	}
}

// MenuOptions lists the main menu entries for the given save state.
func MenuOptions(hasSave bool) []components.MainMenuOption {
	if hasSave {
		return []components.MainMenuOption{
			components.MainMenuContinue,
			components.MainMenuNewGame,
			components.MainMenuExit,
		}
	}
	return []components.MainMenuOption{
		components.MainMenuNewGame,
		components.MainMenuExit,
	}
}

// GetOrCreateMenu returns the singleton Menu component, creating if needed
func GetOrCreateMenu(e *ecs.ECS) *components.MenuData {
	if _, ok := components.Menu.First(e.World); !ok {
		hasSave := HasSaveGame()
		ent := e.World.Entry(e.World.Create(components.Menu))
		components.Menu.SetValue(ent, components.MenuData{
			VisibleOptions: MenuOptions(hasSave),
			HasSaveGame:    hasSave,
		})
	}

	ent, _ := components.Menu.First(e.World)
	return components.Menu.Get(ent)
}
