// Package scripting runs the optional Lua snippets attached to zones. Scripts
// see a global "zone" table and can set story flags, teleport the player and
// log through the game logger.
package scripting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/automoto/farmstead/shared/zone"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 50 * time.Millisecond

// Teleporter moves the player. world.Traveler implements it.
type Teleporter interface {
	TeleportTo(mapName string, x, y float64) error
}

// Engine wraps a single gopher-lua VM. Single-goroutine access only (game
// loop).
type Engine struct {
	vm         *lua.LState
	log        *zap.Logger
	timeout    time.Duration
	teleporter Teleporter
	flags      map[string]bool
	chunks     map[string]*lua.LFunction
	current    string
}

// NewEngine creates a VM with the zone API registered.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{
		vm:      vm,
		log:     log,
		timeout: DefaultTimeout,
		flags:   make(map[string]bool),
		chunks:  make(map[string]*lua.LFunction),
	}
	vm.SetGlobal("set_flag", vm.NewFunction(e.luaSetFlag))
	vm.SetGlobal("get_flag", vm.NewFunction(e.luaGetFlag))
	vm.SetGlobal("teleport", vm.NewFunction(e.luaTeleport))
	vm.SetGlobal("log", vm.NewFunction(e.luaLog))
	return e
}

// SetTeleporter wires the teleport binding.
func (e *Engine) SetTeleporter(t Teleporter) {
	e.teleporter = t
}

// SetTimeout changes the per-run limit. Zero disables it.
func (e *Engine) SetTimeout(d time.Duration) {
	e.timeout = d
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// Flag reports whether a story flag is set.
func (e *Engine) Flag(name string) bool {
	return e.flags[name]
}

// SetFlag sets or clears a story flag from Go.
func (e *Engine) SetFlag(name string, v bool) {
	if v {
		e.flags[name] = true
		return
	}
	delete(e.flags, name)
}

// Flags returns the set story flags, sorted.
func (e *Engine) Flags() []string {
	out := make([]string, 0, len(e.flags))
	for f := range e.flags {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Run executes z.Script for event. Zones without a script are a no-op.
// Compiled chunks are cached by source.
func (e *Engine) Run(z zone.Zone, event string) error {
	if z.Script == "" {
		return nil
	}
	fn, ok := e.chunks[z.Script]
	if !ok {
		var err error
		fn, err = e.vm.LoadString(z.Script)
		if err != nil {
			return fmt.Errorf("compile script for zone %s: %w", z.Name, err)
		}
		e.chunks[z.Script] = fn
	}

	t := e.vm.NewTable()
	t.RawSetString("name", lua.LString(z.Name))
	t.RawSetString("kind", lua.LString(z.Kind.String()))
	t.RawSetString("flag", lua.LString(z.FlagName()))
	t.RawSetString("event", lua.LString(event))
	e.vm.SetGlobal("zone", t)

	if e.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()
		e.vm.SetContext(ctx)
		defer e.vm.RemoveContext()
	}

	e.current = z.Name
	defer func() { e.current = "" }()

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, t); err != nil {
		return fmt.Errorf("run script for zone %s: %w", z.Name, err)
	}
	return nil
}

func (e *Engine) luaSetFlag(L *lua.LState) int {
	name := L.CheckString(1)
	e.SetFlag(name, L.OptBool(2, true))
	return 0
}

func (e *Engine) luaGetFlag(L *lua.LState) int {
	L.Push(lua.LBool(e.flags[L.CheckString(1)]))
	return 1
}

func (e *Engine) luaTeleport(L *lua.LState) int {
	mapName := L.CheckString(1)
	x := float64(L.CheckNumber(2))
	y := float64(L.CheckNumber(3))
	if e.teleporter == nil {
		L.RaiseError("teleport is not available")
		return 0
	}
	if err := e.teleporter.TeleportTo(mapName, x, y); err != nil {
		L.RaiseError("teleport: %s", err.Error())
	}
	return 0
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("zone script", zap.String("zone", e.current), zap.String("msg", L.CheckString(1)))
	return 0
}
