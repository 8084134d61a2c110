package scenes

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/automoto/farmstead/assets"
	cfg "github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/shared/leveldata"
	"github.com/automoto/farmstead/shared/movement"
	"github.com/automoto/farmstead/shared/scripting"
	"github.com/automoto/farmstead/shared/world"
	"github.com/automoto/farmstead/systems"
	"github.com/automoto/farmstead/systems/factory"
	"github.com/automoto/farmstead/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// WorldScene is the playable farm: one player walking between maps.
type WorldScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	continueGame bool
	once         sync.Once

	scripts *scripting.Engine
	prompt  *ui.SavePromptUI
}

// NewWorldScene creates the world scene. With continueGame the saved game is
// restored; otherwise the player starts at the configured start map.
func NewWorldScene(sc SceneChanger, continueGame bool) *WorldScene {
	return &WorldScene{sceneChanger: sc, continueGame: continueGame}
}

func (ws *WorldScene) Update() {
	ws.once.Do(ws.configure)
	ws.ecs.Update()

	if systems.IsSavePromptOpen(ws.ecs) {
		ws.prompt.Update(systems.GetOrCreateSavePrompt(ws.ecs))
	}
}

func (ws *WorldScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ws.ecs == nil {
		return
	}
	ws.ecs.Draw(screen)

	if systems.IsSavePromptOpen(ws.ecs) {
		ws.prompt.Draw(screen)
	}
}

func (ws *WorldScene) configure() {
	log := systems.Logger()
	ecs := ecs.NewECS(donburi.NewWorld())
	ws.ecs = ecs

	atlas, err := assets.LoadAtlas(cfg.World.MapsDir, world.Defaults{
		Speed:     cfg.Movement.Speed,
		BoxWidth:  cfg.Movement.BoxWidth,
		BoxHeight: cfg.Movement.BoxHeight,
	}, log)
	if err != nil {
		panic(err)
	}

	var hooks movement.Hooks = systems.NewZoneHooks(ecs)
	if cfg.World.Scripts {
		ws.scripts = scripting.NewEngine(log)
		systems.SetScripts(ws.scripts)
		hooks = scripting.NewHooks(ws.scripts, hooks)
	}

	traveler := world.NewTraveler(atlas,
		world.WithHooks(hooks),
		world.WithTransferFunc(systems.NewTransferHandler(ecs)),
		world.WithLogger(log),
	)
	if ws.scripts != nil {
		ws.scripts.SetTeleporter(traveler)
	}

	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdateSettings)
	ecs.AddSystem(systems.NewUpdatePause(ws.sceneChanger, func() interface{} {
		return NewMenuScene(ws.sceneChanger)
	}, ws.leave))
	ecs.AddSystem(systems.UpdateSettingsMenu)
	ecs.AddSystem(systems.UpdateSavePrompt)
	ecs.AddSystem(systems.UpdatePlayerInput)
	ecs.AddSystem(systems.WithGameplayChecks(systems.UpdatePlayer))
	ecs.AddSystem(systems.UpdateCamera)
	ecs.AddSystem(systems.UpdateFade)
	ecs.AddSystem(systems.UpdateMessage)

	ecs.AddRenderer(cfg.Default, systems.DrawLevel)
	ecs.AddRenderer(cfg.Default, systems.DrawPlayer)
	ecs.AddRenderer(cfg.Default, systems.DrawDebug)
	ecs.AddRenderer(cfg.LayerHUD, systems.DrawHUD)
	ecs.AddRenderer(cfg.LayerHUD, systems.DrawMessage)
	ecs.AddRenderer(cfg.LayerHUD, systems.DrawFade)
	ecs.AddRenderer(cfg.LayerHUD, systems.DrawPause)
	ecs.AddRenderer(cfg.LayerHUD, systems.DrawSettingsMenu)

	// Level and camera must exist before the first map is entered; the
	// transfer callback fills them in.
	factory.CreateLevel(ecs, atlas)
	factory.CreateCamera(ecs)
	factory.CreateFade(ecs)
	factory.CreatePlayer(ecs, traveler)
	systems.ApplySavedSettings(ecs, systems.LoadSettings())

	if err := ws.enter(traveler); err != nil {
		panic(err)
	}

	ws.prompt = ui.NewSavePromptUI(
		func() { systems.ConfirmSave(ecs) },
		func() { systems.CloseSavePrompt(ecs) },
	)
}

// leave releases the script engine when returning to the main menu.
func (ws *WorldScene) leave() {
	if ws.scripts != nil {
		ws.scripts.Close()
		ws.scripts = nil
	}
	systems.SetScripts(nil)
}

// enter places the player from the saved game or at the start spawn.
func (ws *WorldScene) enter(traveler *world.Traveler) error {
	log := systems.Logger()
	if ws.continueGame {
		if g := systems.LoadGame(); g != nil {
			if ws.scripts != nil {
				for _, f := range g.Flags {
					ws.scripts.SetFlag(f, true)
				}
			}
			err := traveler.EnterAt(g.Map, g.X, g.Y, g.Facing)
			if err == nil {
				log.Info("continued saved game", zap.String("map", g.Map), zap.Time("savedAt", g.SavedAt))
				return nil
			}
			log.Warn("saved game points at a missing map, starting fresh", zap.Error(err))
		}
	}

	spawn := cfg.World.StartSpawn
	if spawn == "" {
		spawn = leveldata.DefaultSpawn
	}
	if err := traveler.Enter(cfg.World.StartMap, spawn); err != nil {
		return fmt.Errorf("start map: %w", err)
	}
	return nil
}
