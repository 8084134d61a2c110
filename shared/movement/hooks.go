package movement

import "github.com/automoto/farmstead/shared/zone"

// Hooks receives zone side effects after a committed move. The engine decides
// when a hook fires; what it does belongs to the surrounding game.
//
// Teleport fires for every teleport zone entered. When the zone's target is on
// the current map (no map, or Config.Map) the engine has already relocated the
// entity; otherwise the receiver is expected to switch maps. Exit fires when
// an exit zone is entered. SavePrompt fires once per entry into a save zone.
// Proximity fires whenever a proximity flag turns on or off.
type Hooks interface {
	Teleport(z zone.Zone)
	Exit(z zone.Zone)
	SavePrompt(z zone.Zone)
	Proximity(z zone.Zone, near bool)
}

// HookFuncs adapts plain functions to Hooks. Nil fields are skipped.
type HookFuncs struct {
	OnTeleport   func(z zone.Zone)
	OnExit       func(z zone.Zone)
	OnSavePrompt func(z zone.Zone)
	OnProximity  func(z zone.Zone, near bool)
}

func (h HookFuncs) Teleport(z zone.Zone) {
	if h.OnTeleport != nil {
		h.OnTeleport(z)
	}
}

func (h HookFuncs) Exit(z zone.Zone) {
	if h.OnExit != nil {
		h.OnExit(z)
	}
}

func (h HookFuncs) SavePrompt(z zone.Zone) {
	if h.OnSavePrompt != nil {
		h.OnSavePrompt(z)
	}
}

func (h HookFuncs) Proximity(z zone.Zone, near bool) {
	if h.OnProximity != nil {
		h.OnProximity(z, near)
	}
}

// NopHooks ignores every zone event.
var NopHooks Hooks = HookFuncs{}
