package systems

import (
	"errors"

	"github.com/automoto/farmstead/components"
	cfg "github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/save"
	"github.com/automoto/farmstead/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

var store *save.Store

// InitPersistence opens the save store. Without it the game still runs but
// nothing is written.
func InitPersistence() error {
	s, err := save.Open(save.AppName, logger)
	if err != nil {
		logger.Warn("persistence unavailable", zap.Error(err))
		return err
	}
	store = s
	return nil
}

// UseStore replaces the save store, mainly for tests.
func UseStore(s *save.Store) {
	store = s
}

// HasSaveGame reports whether a saved game exists.
func HasSaveGame() bool {
	return store != nil && store.Has()
}

// LoadGame returns the saved game, or nil when there is none or it is
// unreadable.
func LoadGame() *save.Game {
	if store == nil {
		return nil
	}
	g, err := store.Load()
	if err != nil {
		if !errors.Is(err, save.ErrNoSave) {
			logger.Warn("could not load saved game", zap.Error(err))
		}
		return nil
	}
	return g
}

// ClearGame deletes the saved game.
func ClearGame() {
	if store == nil {
		return
	}
	if err := store.Clear(); err != nil {
		logger.Warn("could not clear saved game", zap.Error(err))
	}
}

// SaveGame writes the player's map, position, facing and script flags.
func SaveGame(e *ecs.ECS) error {
	if store == nil {
		return errors.New("save data is unavailable")
	}
	entry, ok := tags.Player.First(e.World)
	if !ok {
		return errors.New("no player to save")
	}
	player := components.Player.Get(entry)
	engine := player.Engine()
	if engine == nil {
		return errors.New("player is not on a map")
	}

	pos := engine.Position()
	g := save.Game{
		Map:    player.Traveler.MapName(),
		X:      pos.X,
		Y:      pos.Y,
		Facing: engine.Facing(),
	}
	if scripts != nil {
		g.Flags = scripts.Flags()
	}
	return store.Save(g)
}

// LoadSettings loads settings from disk
func LoadSettings() *save.Settings {
	if store == nil {
		return nil
	}
	s, err := store.LoadSettings()
	if err != nil {
		logger.Warn("could not load settings", zap.Error(err))
		return nil
	}
	return s
}

// SaveCurrentSettings saves the current settings from the Settings component
func SaveCurrentSettings(e *ecs.ECS) {
	if store == nil {
		return
	}
	s := GetOrCreateSettings(e)
	if err := store.SaveSettings(save.Settings{
		Fullscreen: s.Fullscreen,
		Zoom:       cameraZoom(e),
		Overlay:    overlayStage(s),
	}); err != nil {
		logger.Warn("could not save settings", zap.Error(err))
	}
}

// ApplySavedSettingsGlobal applies settings without needing an ECS reference.
// Used during initial game startup before scenes are created.
func ApplySavedSettingsGlobal(saved *save.Settings) {
	if saved == nil {
		return
	}
	ebiten.SetFullscreen(saved.Fullscreen)
	if saved.Zoom >= cfg.Camera.MinZoom && saved.Zoom <= cfg.Camera.MaxZoom {
		cfg.Camera.Zoom = saved.Zoom
	}
	stage := saved.OverlayStage()
	cfg.Debug.ShowCollision = stage != save.OverlayOff
	cfg.Debug.ShowZones = stage == save.OverlayAll
	cfg.Debug.ShowGrid = stage == save.OverlayAll
}

// ApplySavedSettings copies loaded settings into the scene's Settings
// component.
func ApplySavedSettings(e *ecs.ECS, saved *save.Settings) {
	if saved == nil {
		return
	}
	s := GetOrCreateSettings(e)
	s.Fullscreen = saved.Fullscreen
	setOverlayStage(s, saved.OverlayStage())
}
