package systems

import (
	"strconv"

	"github.com/automoto/farmstead/components"
	cfg "github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/fonts"
	"github.com/automoto/farmstead/save"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const numSettingsOptions = int(components.SettingsOptBack) + 1

// UpdateSettingsMenu handles settings navigation and value changes.
func UpdateSettingsMenu(e *ecs.ECS) {
	menu := GetOrCreateSettingsMenu(e)

	if !menu.IsOpen {
		return
	}

	input := getOrCreateInput(e)

	// Handle controls screen separately
	if menu.ShowingControls {
		if GetAction(input, cfg.ActionCancel).JustPressed ||
			GetAction(input, cfg.ActionConfirm).JustPressed {
			menu.ShowingControls = false
		}
		return
	}

	if GetAction(input, cfg.ActionMoveUp).JustPressed {
		navigateUp(e, menu)
	}
	if GetAction(input, cfg.ActionMoveDown).JustPressed {
		navigateDown(e, menu)
	}

	if GetAction(input, cfg.ActionMoveLeft).JustPressed {
		adjustValue(e, menu, -1)
	}
	if GetAction(input, cfg.ActionMoveRight).JustPressed {
		adjustValue(e, menu, +1)
	}

	// Select/Enter - for toggles and Back button
	if GetAction(input, cfg.ActionConfirm).JustPressed {
		handleSelect(e, menu)
	}

	if GetAction(input, cfg.ActionCancel).JustPressed {
		closeSettings(e, menu)
	}
}

// navigateUp moves selection up, skipping hidden options
func navigateUp(e *ecs.ECS, s *components.SettingsMenuData) {
	for {
		s.SelectedOption = components.SettingsMenuOption(
			(int(s.SelectedOption) - 1 + numSettingsOptions) % numSettingsOptions,
		)
		if !isOptionHidden(e, s.SelectedOption) {
			break
		}
	}
}

// navigateDown moves selection down, skipping hidden options
func navigateDown(e *ecs.ECS, s *components.SettingsMenuData) {
	for {
		s.SelectedOption = components.SettingsMenuOption(
			(int(s.SelectedOption) + 1) % numSettingsOptions,
		)
		if !isOptionHidden(e, s.SelectedOption) {
			break
		}
	}
}

// isOptionHidden returns true if the option should be hidden
func isOptionHidden(e *ecs.ECS, opt components.SettingsMenuOption) bool {
	// Hide resolution when fullscreen is enabled
	return opt == components.SettingsOptResolution && GetOrCreateSettings(e).Fullscreen
}

// adjustValue changes the value for the selected option
func adjustValue(e *ecs.ECS, s *components.SettingsMenuData, direction int) {
	switch s.SelectedOption {
	case components.SettingsOptZoom:
		if direction > 0 {
			SetZoom(e, cfg.SettingsMenu.NextZoom(cameraZoom(e)))
		} else {
			SetZoom(e, cfg.SettingsMenu.PrevZoom(cameraZoom(e)))
		}

	case components.SettingsOptOverlay:
		cycleDebugOverlay(GetOrCreateSettings(e))

	case components.SettingsOptFullscreen:
		toggleFullscreen(e)

	case components.SettingsOptResolution:
		cycleResolution(s, direction)
	}
}

// toggleFullscreen toggles fullscreen mode
func toggleFullscreen(e *ecs.ECS) {
	settings := GetOrCreateSettings(e)
	settings.Fullscreen = !settings.Fullscreen
	ebiten.SetFullscreen(settings.Fullscreen)
}

// cycleResolution cycles through available resolutions
func cycleResolution(s *components.SettingsMenuData, direction int) {
	numResolutions := len(cfg.SettingsMenu.Resolutions)
	s.ResolutionIndex = (s.ResolutionIndex + direction + numResolutions) % numResolutions

	// Apply the resolution
	res := cfg.SettingsMenu.Resolutions[s.ResolutionIndex]
	ebiten.SetWindowSize(res.Width, res.Height)
}

// handleSelect handles the select/enter action
func handleSelect(e *ecs.ECS, s *components.SettingsMenuData) {
	switch s.SelectedOption {
	case components.SettingsOptOverlay:
		cycleDebugOverlay(GetOrCreateSettings(e))

	case components.SettingsOptFullscreen:
		toggleFullscreen(e)

	case components.SettingsOptControls:
		s.ShowingControls = true

	case components.SettingsOptBack:
		closeSettings(e, s)
	}
}

// closeSettings closes the settings menu and saves settings
func closeSettings(e *ecs.ECS, s *components.SettingsMenuData) {
	s.IsOpen = false
	SaveCurrentSettings(e)
}

// DrawSettingsMenu renders the settings overlay.
func DrawSettingsMenu(e *ecs.ECS, screen *ebiten.Image) {
	menu := GetOrCreateSettingsMenu(e)

	if !menu.IsOpen {
		return
	}

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.FillRect(
		screen,
		0, 0,
		float32(width), float32(height),
		cfg.HUD.PanelColor,
		false,
	)

	if menu.ShowingControls {
		drawControlsScreen(e, screen, width, height)
		return
	}

	fontFace := fonts.Bold.Get()
	drawCentered(screen, "SETTINGS", fonts.Title.Get(), width, 35, cfg.Yellow, 20)

	// Count visible options for layout calculation
	visibleCount := 0
	for opt := components.SettingsOptZoom; opt <= components.SettingsOptBack; opt++ {
		if !isOptionHidden(e, opt) {
			visibleCount++
		}
	}

	menuItemHeight := 24.0
	menuItemGap := 10.0
	totalMenuHeight := float64(visibleCount) * (menuItemHeight + menuItemGap)
	startY := (height-totalMenuHeight)/2 + 10 // Offset slightly down from center

	optionIndex := 0
	for opt := components.SettingsOptZoom; opt <= components.SettingsOptBack; opt++ {
		if isOptionHidden(e, opt) {
			continue
		}

		y := startY + float64(optionIndex)*(menuItemHeight+menuItemGap)

		textColor := cfg.Pause.TextColorNormal
		if opt == menu.SelectedOption {
			textColor = cfg.Pause.TextColorSelected
		}

		label, value := getOptionDisplay(e, menu, opt)

		labelX := int(width/2) - 120
		text.Draw(screen, label, fontFace, labelX, int(y)+int(menuItemHeight), textColor)

		if value != "" {
			valueX := int(width/2) + 40
			text.Draw(screen, value, fontFace, valueX, int(y)+int(menuItemHeight), textColor)
		}

		optionIndex++
	}

	input := getOrCreateInput(e)
	drawCentered(screen, getSettingsHint(input.LastInputMethod), fonts.Small.Get(), width, height-12, cfg.Pause.TextColorNormal, 7)
}

// drawControlsScreen renders the controls/button mapping screen
func drawControlsScreen(e *ecs.ECS, screen *ebiten.Image, width, height float64) {
	input := getOrCreateInput(e)
	fontFace := fonts.Bold.Get()

	drawCentered(screen, "CONTROLS", fonts.Title.Get(), width, 35, cfg.Yellow, 20)

	startY := 70.0
	lineHeight := 22.0
	labelX := int(width/2) - 120
	valueX := int(width/2) + 10

	for i, mapping := range getControlMappings(input.LastInputMethod) {
		y := startY + float64(i)*lineHeight
		text.Draw(screen, mapping.Action, fontFace, labelX, int(y), cfg.Pause.TextColorNormal)
		text.Draw(screen, mapping.Button, fontFace, valueX, int(y), cfg.Pause.TextColorSelected)
	}

	drawCentered(screen, "Press Enter or Esc to go back", fonts.Small.Get(), width, height-12, cfg.Pause.TextColorNormal, 7)
}

// controlMapping represents a single control mapping entry
type controlMapping struct {
	Action string
	Button string
}

// getControlMappings returns control mappings for the given input method
func getControlMappings(method components.InputMethod) []controlMapping {
	switch method {
	case components.InputPlayStation:
		return []controlMapping{
			{"Move", "Left Stick / D-Pad"},
			{"Confirm", "Cross"},
			{"Back / Pause", "Circle"},
			{"Zoom", "L1 / R1"},
		}
	case components.InputXbox:
		return []controlMapping{
			{"Move", "Left Stick / D-Pad"},
			{"Confirm", "A"},
			{"Back / Pause", "B"},
			{"Zoom", "LB / RB"},
		}
	default: // Keyboard
		return []controlMapping{
			{"Move", "Arrow Keys / WASD"},
			{"Confirm", "Enter / E / Space"},
			{"Back / Pause", "Esc"},
			{"Zoom", "+ / -"},
			{"Debug Overlay", "F3"},
			{"Fullscreen", "F11"},
		}
	}
}

// getSettingsHint returns the appropriate hint for settings menu
func getSettingsHint(method components.InputMethod) string {
	switch method {
	case components.InputPlayStation:
		return "Left Stick/D-Pad: Navigate   Left/Right: Change   Cross: Select   Circle: Back"
	case components.InputXbox:
		return "Left Stick/D-Pad: Navigate   Left/Right: Change   A: Select   B: Back"
	}
	return "Arrows: Navigate   Left/Right: Change   Enter: Select   Esc: Back"
}

// getOptionDisplay returns the label and value display for an option
func getOptionDisplay(e *ecs.ECS, s *components.SettingsMenuData, opt components.SettingsMenuOption) (string, string) {
	settings := GetOrCreateSettings(e)
	switch opt {
	case components.SettingsOptZoom:
		return "Zoom", formatZoom(cameraZoom(e))
	case components.SettingsOptOverlay:
		return "Debug Overlay", overlayLabel(settings)
	case components.SettingsOptFullscreen:
		return "Fullscreen", formatToggle(settings.Fullscreen)
	case components.SettingsOptResolution:
		if s.ResolutionIndex < len(cfg.SettingsMenu.Resolutions) {
			return "Resolution", cfg.SettingsMenu.Resolutions[s.ResolutionIndex].Label
		}
		return "Resolution", "Unknown"
	case components.SettingsOptControls:
		return "Controls", ">"
	case components.SettingsOptBack:
		return "< Back", ""
	default:
		return "", ""
	}
}

func overlayLabel(s *components.SettingsData) string {
	switch overlayStage(s) {
	case save.OverlayAll:
		return "All"
	case save.OverlayCollision:
		return "Collision"
	}
	return "Off"
}

func formatZoom(z float64) string {
	return "x" + strconv.FormatFloat(z, 'g', 3, 64)
}

// formatToggle formats a boolean as On/Off
func formatToggle(value bool) string {
	if value {
		return "[X] On"
	}
	return "[ ] Off"
}

// GetOrCreateSettingsMenu returns the singleton SettingsMenu component, creating if needed.
func GetOrCreateSettingsMenu(e *ecs.ECS) *components.SettingsMenuData {
	if _, ok := components.SettingsMenu.First(e.World); !ok {
		ent := e.World.Entry(e.World.Create(components.SettingsMenu))
		components.SettingsMenu.SetValue(ent, components.SettingsMenuData{
			SelectedOption:  components.SettingsOptZoom,
			ResolutionIndex: cfg.SettingsMenu.ResolutionIndex(ebiten.WindowSize()),
		})
	}

	ent, _ := components.SettingsMenu.First(e.World)
	return components.SettingsMenu.Get(ent)
}

// OpenSettings opens the settings menu
func OpenSettings(e *ecs.ECS) {
	menu := GetOrCreateSettingsMenu(e)
	menu.IsOpen = true
	menu.ShowingControls = false
	menu.SelectedOption = components.SettingsOptZoom
}

// IsSettingsOpen returns true if the settings menu is currently open
func IsSettingsOpen(e *ecs.ECS) bool {
	entry, ok := components.SettingsMenu.First(e.World)
	return ok && components.SettingsMenu.Get(entry).IsOpen
}
