package factory

import (
	"github.com/automoto/farmstead/archetypes"
	"github.com/automoto/farmstead/components"
	"github.com/automoto/farmstead/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateCamera(ecs *ecs.ECS) *donburi.Entry {
	camera := archetypes.Camera.Spawn(ecs)
	components.Camera.Set(camera, &components.CameraData{
		Zoom: config.Camera.Zoom,
		Snap: true,
	})
	return camera
}
