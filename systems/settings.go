package systems

import (
	"github.com/automoto/farmstead/components"
	cfg "github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/save"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// UpdateSettings handles the debug overlay, zoom and fullscreen keys.
func UpdateSettings(e *ecs.ECS) {
	settings := GetOrCreateSettings(e)
	input := getOrCreateInput(e)
	changed := false

	if GetAction(input, cfg.ActionToggleDebug).JustPressed {
		cycleDebugOverlay(settings)
		changed = true
	}

	if GetAction(input, cfg.ActionToggleFullscreen).JustPressed {
		settings.Fullscreen = !settings.Fullscreen
		ebiten.SetFullscreen(settings.Fullscreen)
		changed = true
	}

	if GetAction(input, cfg.ActionZoomIn).JustPressed {
		SetZoom(e, cameraZoom(e)+cfg.Camera.ZoomStep)
		changed = true
	}
	if GetAction(input, cfg.ActionZoomOut).JustPressed {
		SetZoom(e, cameraZoom(e)-cfg.Camera.ZoomStep)
		changed = true
	}

	if changed {
		SaveCurrentSettings(e)
	}
}

// cycleDebugOverlay steps through: off, collision, collision+zones+grid.
func cycleDebugOverlay(s *components.SettingsData) {
	switch {
	case !s.ShowCollision && !s.ShowZones:
		s.ShowCollision = true
	case s.ShowCollision && !s.ShowZones:
		s.ShowZones = true
		s.ShowGrid = true
	default:
		s.ShowCollision = false
		s.ShowZones = false
		s.ShowGrid = false
	}
}

// overlayStage names the stage cycleDebugOverlay is on.
func overlayStage(s *components.SettingsData) string {
	switch {
	case s.ShowZones:
		return save.OverlayAll
	case s.ShowCollision:
		return save.OverlayCollision
	}
	return save.OverlayOff
}

func setOverlayStage(s *components.SettingsData, stage string) {
	s.ShowCollision = stage != save.OverlayOff
	s.ShowZones = stage == save.OverlayAll
	s.ShowGrid = stage == save.OverlayAll
}

// GetOrCreateSettings returns the singleton Settings component, creating it
// from the global debug config if needed
func GetOrCreateSettings(e *ecs.ECS) *components.SettingsData {
	entry, ok := components.Settings.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Settings))
		components.Settings.SetValue(entry, components.SettingsData{
			ShowCollision: cfg.Debug.ShowCollision,
			ShowZones:     cfg.Debug.ShowZones,
			ShowGrid:      cfg.Debug.ShowGrid,
			Fullscreen:    ebiten.IsFullscreen(),
		})
	}
	return components.Settings.Get(entry)
}
