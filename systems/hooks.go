package systems

import (
	"fmt"

	"github.com/automoto/farmstead/components"
	"github.com/automoto/farmstead/shared/movement"
	"github.com/automoto/farmstead/shared/scripting"
	"github.com/automoto/farmstead/shared/world"
	"github.com/automoto/farmstead/shared/zone"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

var scripts *scripting.Engine

// SetScripts sets the Lua engine whose flags are saved with the game.
func SetScripts(s *scripting.Engine) {
	scripts = s
}

// NewZoneHooks returns the hooks that surface zone events in the scene.
func NewZoneHooks(e *ecs.ECS) movement.Hooks {
	return movement.HookFuncs{
		OnSavePrompt: func(z zone.Zone) {
			OpenSavePrompt(e, z)
		},
		OnProximity: func(z zone.Zone, near bool) {
			logger.Debug("proximity", zap.String("zone", z.Name), zap.String("flag", z.FlagName()), zap.Bool("near", near))
			if near {
				ShowMessage(e, proximityMessage(z))
			}
		},
		OnExit: func(z zone.Zone) {
			logger.Debug("exit zone", zap.String("zone", z.Name))
		},
		OnTeleport: func(z zone.Zone) {
			logger.Debug("teleport zone", zap.String("zone", z.Name), zap.String("map", z.Target.Map))
		},
	}
}

func proximityMessage(z zone.Zone) string {
	return fmt.Sprintf("Near %s", z.FlagName())
}

// NewTransferHandler returns the Traveler callback that refreshes the level
// after a map switch, snaps the camera and plays the fade.
func NewTransferHandler(e *ecs.ECS) func(world.Transfer) {
	return func(t world.Transfer) {
		levelEntry, ok := components.Level.First(e.World)
		if !ok {
			return
		}
		level := components.Level.Get(levelEntry)
		m, err := level.Atlas.Map(t.To)
		if err != nil {
			logger.Error("transfer to unknown map", zap.String("map", t.To), zap.Error(err))
			return
		}
		level.Name = t.To
		level.Current = m
		SnapCamera(e)

		// The first entry into the world is not a switch.
		if t.From == "" {
			return
		}
		level.Visits++
		StartFade(e)
	}
}
