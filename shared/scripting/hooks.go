package scripting

import (
	"github.com/automoto/farmstead/shared/movement"
	"github.com/automoto/farmstead/shared/zone"
	"go.uber.org/zap"
)

// Script event names, exposed to Lua as zone.event.
const (
	EventTeleport = "teleport"
	EventExit     = "exit"
	EventSave     = "save"
	EventEnter    = "enter"
	EventLeave    = "leave"
)

// Hooks runs zone scripts before forwarding each event to next. A failing
// script is logged and never blocks the event.
type Hooks struct {
	engine *Engine
	next   movement.Hooks
}

// NewHooks decorates next. A nil next is treated as movement.NopHooks.
func NewHooks(e *Engine, next movement.Hooks) *Hooks {
	if next == nil {
		next = movement.NopHooks
	}
	return &Hooks{engine: e, next: next}
}

func (h *Hooks) run(z zone.Zone, event string) {
	if err := h.engine.Run(z, event); err != nil {
		h.engine.log.Warn("zone script failed", zap.String("zone", z.Name), zap.String("event", event), zap.Error(err))
	}
}

func (h *Hooks) Teleport(z zone.Zone) {
	h.run(z, EventTeleport)
	h.next.Teleport(z)
}

func (h *Hooks) Exit(z zone.Zone) {
	h.run(z, EventExit)
	h.next.Exit(z)
}

func (h *Hooks) SavePrompt(z zone.Zone) {
	h.run(z, EventSave)
	h.next.SavePrompt(z)
}

func (h *Hooks) Proximity(z zone.Zone, near bool) {
	event := EventLeave
	if near {
		event = EventEnter
	}
	h.run(z, event)
	h.next.Proximity(z, near)
}
