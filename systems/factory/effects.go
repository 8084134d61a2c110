package factory

import (
	"github.com/automoto/farmstead/archetypes"
	"github.com/automoto/farmstead/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateFade(ecs *ecs.ECS) *donburi.Entry {
	fade := archetypes.Fade.Spawn(ecs)
	components.Fade.Set(fade, &components.FadeData{})
	return fade
}
