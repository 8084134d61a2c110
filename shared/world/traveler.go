package world

import (
	"fmt"

	"github.com/automoto/farmstead/shared/gamemath"
	"github.com/automoto/farmstead/shared/movement"
	"github.com/automoto/farmstead/shared/zone"
	"go.uber.org/zap"
)

// ReturnPoint is where an exit zone sends the player back to.
type ReturnPoint struct {
	Map string
	Pos gamemath.Vec
}

// Transfer describes a completed map switch.
type Transfer struct {
	From string
	To   string
	Pos  gamemath.Vec
}

type pendingTransfer struct {
	to   string
	pos  gamemath.Vec
	push *ReturnPoint
	// popped goes back on the return stack if the switch fails.
	popped *ReturnPoint
}

// TravelerOption configures NewTraveler.
type TravelerOption func(*Traveler)

// WithHooks forwards every zone event to h after the Traveler has handled it.
func WithHooks(h movement.Hooks) TravelerOption {
	return func(t *Traveler) {
		if h != nil {
			t.next = h
		}
	}
}

// WithTransferFunc is called after every map switch.
func WithTransferFunc(fn func(Transfer)) TravelerOption {
	return func(t *Traveler) {
		t.onTransfer = fn
	}
}

// WithLogger sets the Traveler logger.
func WithLogger(log *zap.Logger) TravelerOption {
	return func(t *Traveler) {
		if log != nil {
			t.log = log
		}
	}
}

// Traveler owns the active map and its engine. Cross-map teleports and exits
// requested during a tick are applied once the tick returns, so an engine is
// never replaced while it is running.
type Traveler struct {
	atlas      *Atlas
	next       movement.Hooks
	onTransfer func(Transfer)
	log        *zap.Logger

	current string
	engine  *movement.Engine
	returns []ReturnPoint

	ticking bool
	before  gamemath.Vec
	pending *pendingTransfer
}

// NewTraveler creates a Traveler with no active map; call Enter or EnterAt.
func NewTraveler(atlas *Atlas, opts ...TravelerOption) *Traveler {
	t := &Traveler{
		atlas: atlas,
		next:  movement.NopHooks,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// MapName returns the active map name.
func (t *Traveler) MapName() string {
	return t.current
}

// Engine returns the active engine. It changes after a map switch, so callers
// should not hold on to it across ticks.
func (t *Traveler) Engine() *movement.Engine {
	return t.engine
}

// Returns lists the remembered return points, innermost last.
func (t *Traveler) Returns() []ReturnPoint {
	return append([]ReturnPoint(nil), t.returns...)
}

// Enter starts the named map at a spawn point and clears the return stack.
func (t *Traveler) Enter(mapName, spawn string) error {
	m, err := t.atlas.Map(mapName)
	if err != nil {
		return err
	}
	sp, ok := m.Spawn(spawn)
	if !ok {
		sp = m.DefaultSpawnPoint()
	}
	t.returns = t.returns[:0]
	return t.switchTo(mapName, gamemath.Vec{X: sp.X, Y: sp.Y}, movement.FacingStand)
}

// EnterAt starts the named map at an exact position, as when restoring a
// save. The return stack is cleared.
func (t *Traveler) EnterAt(mapName string, x, y float64, facing movement.Facing) error {
	t.returns = t.returns[:0]
	return t.switchTo(mapName, gamemath.Vec{X: x, Y: y}, facing)
}

// TeleportTo moves the player to another map, or within the current one when
// mapName is empty or the active map. Called during a tick it is deferred
// until the tick finishes.
func (t *Traveler) TeleportTo(mapName string, x, y float64) error {
	if t.engine == nil {
		return fmt.Errorf("teleport to %s: no map entered", mapName)
	}
	if mapName == "" || mapName == t.current {
		t.engine.Teleport(x, y)
		return nil
	}
	if _, err := t.atlas.Map(mapName); err != nil {
		return err
	}
	t.request(&pendingTransfer{
		to:   mapName,
		pos:  gamemath.Vec{X: x, Y: y},
		push: &ReturnPoint{Map: t.current, Pos: t.restPosition()},
	})
	return nil
}

// Tick advances the active engine one frame and applies any map switch it
// triggered.
func (t *Traveler) Tick() movement.Result {
	return t.run(t.engine.Tick)
}

// Step performs one discrete move on the active engine.
func (t *Traveler) Step(d movement.Direction) movement.Result {
	return t.run(func() movement.Result { return t.engine.Step(d) })
}

func (t *Traveler) run(fn func() movement.Result) movement.Result {
	if t.engine == nil {
		return movement.Result{}
	}
	t.ticking = true
	t.before = t.engine.Position()
	res := fn()
	t.ticking = false

	if p := t.pending; p != nil {
		t.pending = nil
		if err := t.apply(p); err != nil {
			t.log.Error("map switch failed", zap.String("to", p.to), zap.Error(err))
		}
	}
	return res
}

// restPosition is where to put the player back when returning: the position
// before the move that triggered the switch, so the player does not land on
// the door again.
func (t *Traveler) restPosition() gamemath.Vec {
	if t.ticking {
		return t.before
	}
	return t.engine.Position()
}

func (t *Traveler) request(p *pendingTransfer) {
	if t.ticking {
		t.pending = p
		return
	}
	if err := t.apply(p); err != nil {
		t.log.Error("map switch failed", zap.String("to", p.to), zap.Error(err))
	}
}

func (t *Traveler) apply(p *pendingTransfer) error {
	held := t.engine.Held()
	facing := t.engine.Facing()
	from := t.current

	if err := t.switchTo(p.to, p.pos, facing); err != nil {
		if p.popped != nil {
			t.returns = append(t.returns, *p.popped)
		}
		return err
	}
	if p.push != nil {
		t.returns = append(t.returns, *p.push)
	}
	for _, d := range held {
		t.engine.Press(d)
	}

	t.log.Info("map switch", zap.String("from", from), zap.String("to", p.to),
		zap.Float64("x", t.engine.Position().X), zap.Float64("y", t.engine.Position().Y),
		zap.Int("depth", len(t.returns)))
	return nil
}

func (t *Traveler) switchTo(mapName string, pos gamemath.Vec, facing movement.Facing) error {
	e, err := t.atlas.NewEngine(mapName, pos.X, pos.Y,
		movement.WithHooks(t),
		movement.WithFacing(facing))
	if err != nil {
		return fmt.Errorf("enter %s: %w", mapName, err)
	}
	from := t.current
	t.current = mapName
	t.engine = e
	if t.onTransfer != nil {
		t.onTransfer(Transfer{From: from, To: mapName, Pos: e.Position()})
	}
	return nil
}

// Teleport implements movement.Hooks.
func (t *Traveler) Teleport(z zone.Zone) {
	if z.Target.Map != "" && z.Target.Map != t.current {
		if err := t.TeleportTo(z.Target.Map, z.Target.X, z.Target.Y); err != nil {
			t.log.Warn("teleport target", zap.String("zone", z.Name), zap.Error(err))
		}
	}
	t.next.Teleport(z)
}

// Exit implements movement.Hooks. It returns to the innermost remembered
// point, or to the map's parent when nothing was remembered.
func (t *Traveler) Exit(z zone.Zone) {
	if n := len(t.returns); n > 0 {
		rp := t.returns[n-1]
		t.returns = t.returns[:n-1]
		t.request(&pendingTransfer{to: rp.Map, pos: rp.Pos, popped: &rp})
	} else if parent := t.parent(); parent != "" {
		m, _ := t.atlas.Map(parent)
		sp, ok := m.Spawn(t.current)
		if !ok {
			sp = m.DefaultSpawnPoint()
		}
		t.request(&pendingTransfer{to: parent, pos: gamemath.Vec{X: sp.X, Y: sp.Y}})
	} else {
		t.log.Warn("exit with nowhere to go", zap.String("map", t.current), zap.String("zone", z.Name))
	}
	t.next.Exit(z)
}

// SavePrompt implements movement.Hooks.
func (t *Traveler) SavePrompt(z zone.Zone) {
	t.next.SavePrompt(z)
}

// Proximity implements movement.Hooks.
func (t *Traveler) Proximity(z zone.Zone, near bool) {
	t.next.Proximity(z, near)
}

func (t *Traveler) parent() string {
	m, err := t.atlas.Map(t.current)
	if err != nil {
		return ""
	}
	return m.Parent
}
