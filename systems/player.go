package systems

import (
	"github.com/automoto/farmstead/components"
	cfg "github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/tags"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// UpdatePlayer advances the player's movement engine one frame. Map switches
// triggered by the move are applied by the Traveler before it returns.
func UpdatePlayer(e *ecs.ECS) {
	entry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	player := components.Player.Get(entry)
	if player.BlockedFlash > 0 {
		player.BlockedFlash--
	}
	if player.Engine() == nil {
		return
	}

	res := player.Traveler.Tick()
	player.LastResult = res
	if res.Blocked {
		player.BlockedFlash = cfg.HUD.BlockedFlash
	}
	if res.Teleported {
		SnapCamera(e)
		logger.Debug("teleported", zap.Float64("x", res.To.X), zap.Float64("y", res.To.Y))
	}
}
