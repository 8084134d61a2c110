package systems

import (
	"github.com/automoto/farmstead/components"
	cfg "github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/shared/zone"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// OpenSavePrompt shows the save dialog for the save point z.
func OpenSavePrompt(e *ecs.ECS, z zone.Zone) {
	prompt := GetOrCreateSavePrompt(e)
	prompt.IsOpen = true
	prompt.Zone = z
	prompt.Result = ""
}

// UpdateSavePrompt handles keyboard and gamepad confirm/cancel while the
// dialog is open. The dialog's buttons call the same functions.
func UpdateSavePrompt(e *ecs.ECS) {
	prompt := GetOrCreateSavePrompt(e)
	if !prompt.IsOpen {
		return
	}
	input := getOrCreateInput(e)

	if GetAction(input, cfg.ActionCancel).JustPressed {
		CloseSavePrompt(e)
		return
	}
	if GetAction(input, cfg.ActionConfirm).JustPressed {
		ConfirmSave(e)
	}
}

// ConfirmSave saves the game and closes the dialog.
func ConfirmSave(e *ecs.ECS) {
	prompt := GetOrCreateSavePrompt(e)
	if err := SaveGame(e); err != nil {
		logger.Warn("save failed", zap.String("zone", prompt.Zone.Name), zap.Error(err))
		prompt.Result = "Could not save: " + err.Error()
		return
	}
	prompt.IsOpen = false
	ShowMessage(e, "Game saved")
}

// CloseSavePrompt dismisses the dialog without saving.
func CloseSavePrompt(e *ecs.ECS) {
	prompt := GetOrCreateSavePrompt(e)
	prompt.IsOpen = false
	prompt.Result = ""
}

// IsSavePromptOpen reports whether the save dialog is showing.
func IsSavePromptOpen(e *ecs.ECS) bool {
	entry, ok := components.SavePrompt.First(e.World)
	return ok && components.SavePrompt.Get(entry).IsOpen
}

// CanMove reports whether the player is free to move: no dialog, no pause
// menu and no fade.
func CanMove(e *ecs.ECS) bool {
	return !IsSavePromptOpen(e) && !IsPaused(e) && !IsFading(e)
}

// WithGameplayChecks wraps a system to skip execution while paused or while a
// dialog is open.
func WithGameplayChecks(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		if IsSavePromptOpen(e) || IsPaused(e) {
			return
		}
		system(e)
	}
}

// GetOrCreateSavePrompt returns the singleton SavePrompt component, creating if needed
func GetOrCreateSavePrompt(e *ecs.ECS) *components.SavePromptData {
	entry, ok := components.SavePrompt.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.SavePrompt))
	}
	return components.SavePrompt.Get(entry)
}
