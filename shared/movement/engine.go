// Package movement owns the moving entity: its position, facing and held
// directions. Each tick turns the held input into a candidate position,
// clamps it to the world, and commits it only when the collision index
// reports no overlap. A blocked move leaves the entity exactly where it was.
package movement

import (
	"errors"
	"fmt"
	"sort"

	"github.com/automoto/farmstead/shared/collision"
	"github.com/automoto/farmstead/shared/gamemath"
	"github.com/automoto/farmstead/shared/zone"
	"go.uber.org/zap"
)

// ErrInvalidConfig is returned by New when the map or entity parameters
// cannot describe a playable screen.
var ErrInvalidConfig = errors.New("invalid movement config")

// Config parameterizes one engine per screen.
type Config struct {
	// Map names the screen. A teleport target naming it stays on this map.
	Map string

	CellSize    float64
	WorldWidth  float64
	WorldHeight float64
	BoxWidth    float64
	BoxHeight   float64
	Speed       float64

	// Regions is used to build the collision index unless WithIndex is given.
	Regions []collision.Region
}

// Validate reports whether c describes a playable screen.
func (c Config) Validate() error {
	switch {
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size %v", ErrInvalidConfig, c.CellSize)
	case c.WorldWidth <= 0 || c.WorldHeight <= 0:
		return fmt.Errorf("%w: world size %vx%v", ErrInvalidConfig, c.WorldWidth, c.WorldHeight)
	case c.BoxWidth <= 0 || c.BoxHeight <= 0:
		return fmt.Errorf("%w: box size %vx%v", ErrInvalidConfig, c.BoxWidth, c.BoxHeight)
	case c.BoxWidth >= c.CellSize || c.BoxHeight >= c.CellSize:
		return fmt.Errorf("%w: box %vx%v must be smaller than cell %v", ErrInvalidConfig, c.BoxWidth, c.BoxHeight, c.CellSize)
	case c.Speed <= 0:
		return fmt.Errorf("%w: speed %v", ErrInvalidConfig, c.Speed)
	}
	return nil
}

// Option configures New.
type Option func(*Engine)

// WithIndex uses a prebuilt collision index instead of Config.Regions.
func WithIndex(idx *collision.Index) Option {
	return func(e *Engine) {
		e.index = idx
	}
}

// WithZones attaches the screen's interactive zones.
func WithZones(zones *zone.Set) Option {
	return func(e *Engine) {
		e.zones = zones
	}
}

// WithHooks sets the receiver of zone events.
func WithHooks(h Hooks) Option {
	return func(e *Engine) {
		if h != nil {
			e.hooks = h
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithPosition sets the starting top-left position. It is clamped to the
// world but not checked against collision.
func WithPosition(x, y float64) Option {
	return func(e *Engine) {
		e.pos = gamemath.Vec{X: x, Y: y}
	}
}

// WithFacing sets the starting facing.
func WithFacing(f Facing) Option {
	return func(e *Engine) {
		e.facing = f
	}
}

// Result describes what a tick or step did. It is informational; a blocked
// move is not an error.
type Result struct {
	Moved      bool
	Blocked    bool
	Teleported bool
	From       gamemath.Vec
	To         gamemath.Vec
	Tile       gamemath.Tile

	// Zone is the teleport or exit zone that fired, if any.
	Zone *zone.Zone
}

// Engine is the movement resolver for a single entity on a single screen. It
// is not safe for concurrent use; the game loop that owns it drives it.
type Engine struct {
	cfg   Config
	index *collision.Index
	zones *zone.Set
	hooks Hooks
	log   *zap.Logger

	pos    gamemath.Vec
	facing Facing
	held   []Direction

	inSave map[string]bool
	near   map[string]zone.Zone

	// syncing is set while passive hooks fire; a relocation from inside one
	// sets resync instead of recursing.
	syncing      bool
	resync       bool
	resyncNotify bool
}

// maxResyncs bounds proximity hooks that keep relocating the entity.
const maxResyncs = 8

// New builds an engine. Passive zone state (save and proximity) is primed at
// the starting tile without firing hooks.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		hooks:  NopHooks,
		log:    zap.NewNop(),
		inSave: map[string]bool{},
		near:   map[string]zone.Zone{},
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.index == nil {
		idx, err := collision.NewIndex(cfg.CellSize, cfg.Regions, collision.WithLogger(e.log))
		if err != nil {
			return nil, fmt.Errorf("movement: %w", err)
		}
		e.index = idx
	} else if e.index.CellSize() != cfg.CellSize {
		return nil, fmt.Errorf("%w: index cell size %v, engine cell size %v", ErrInvalidConfig, e.index.CellSize(), cfg.CellSize)
	}
	if e.zones != nil && e.zones.CellSize() != cfg.CellSize {
		return nil, fmt.Errorf("%w: zone cell size %v, engine cell size %v", ErrInvalidConfig, e.zones.CellSize(), cfg.CellSize)
	}

	e.pos = e.clamp(e.pos)
	e.syncPassive(false)
	return e, nil
}

// Config returns the engine parameters.
func (e *Engine) Config() Config {
	return e.cfg
}

// Index returns the collision index.
func (e *Engine) Index() *collision.Index {
	return e.index
}

// Zones returns the zone set, or nil.
func (e *Engine) Zones() *zone.Set {
	return e.zones
}

// Position returns the top-left corner of the entity's box.
func (e *Engine) Position() gamemath.Vec {
	return e.pos
}

// Facing returns the current facing.
func (e *Engine) Facing() Facing {
	return e.facing
}

// Box returns the entity's bounding box.
func (e *Engine) Box() gamemath.Rect {
	return gamemath.Rect{X: e.pos.X, Y: e.pos.Y, W: e.cfg.BoxWidth, H: e.cfg.BoxHeight}
}

// Tile returns the tile under the centre of the entity's box. Zones trigger on
// this tile.
func (e *Engine) Tile() gamemath.Tile {
	c := e.Box().Center()
	return gamemath.ToTile(c.X, c.Y, e.cfg.CellSize)
}

// State reports Idle when no direction is held.
func (e *Engine) State() State {
	if len(e.held) == 0 {
		return Idle
	}
	return Moving
}

// Held returns the held directions in press order.
func (e *Engine) Held() []Direction {
	return append([]Direction(nil), e.held...)
}

// Press marks d as held and faces it. Repeats of an already held key are
// ignored so key repeat does not steal facing from a newer key.
func (e *Engine) Press(d Direction) {
	if !d.Valid() {
		return
	}
	for _, h := range e.held {
		if h == d {
			return
		}
	}
	e.held = append(e.held, d)
	e.facing = d.Facing()
}

// Release clears d. Releasing the last held direction returns to Idle and
// stands; otherwise the entity faces the newest direction still held.
func (e *Engine) Release(d Direction) {
	for i, h := range e.held {
		if h == d {
			e.held = append(e.held[:i], e.held[i+1:]...)
			break
		}
	}
	if len(e.held) == 0 {
		e.facing = FacingStand
		return
	}
	e.facing = e.held[len(e.held)-1].Facing()
}

// ReleaseAll drops every held direction, e.g. on focus loss or screen change.
func (e *Engine) ReleaseAll() {
	e.held = e.held[:0]
	e.facing = FacingStand
}

// Tick advances one frame of continuous movement using the held directions.
// Opposite directions cancel; two perpendicular axes move at speed/sqrt(2) on
// each axis.
func (e *Engine) Tick() Result {
	var dx, dy int
	for _, d := range e.held {
		x, y := d.Delta()
		dx += x
		dy += y
	}
	return e.move(gamemath.Velocity(dx, dy, e.cfg.Speed))
}

// Step performs one discrete move in direction d, for screens that advance
// per key press rather than per frame.
func (e *Engine) Step(d Direction) Result {
	if !d.Valid() {
		return e.idleResult()
	}
	e.facing = d.Facing()
	dx, dy := d.Delta()
	return e.move(gamemath.Velocity(dx, dy, e.cfg.Speed))
}

func (e *Engine) idleResult() Result {
	return Result{From: e.pos, To: e.pos, Tile: e.Tile()}
}

func (e *Engine) move(v gamemath.Vec) Result {
	res := e.idleResult()
	if v == (gamemath.Vec{}) {
		return res
	}

	candidate := e.clamp(e.pos.Add(v))
	if candidate == e.pos {
		return res
	}
	if e.index.Overlaps(candidate.X, candidate.Y, e.cfg.BoxWidth, e.cfg.BoxHeight) {
		res.Blocked = true
		return res
	}

	e.pos = candidate
	res.Moved = true
	e.evaluateZones(&res)
	res.To = e.pos
	res.Tile = e.Tile()
	return res
}

// Place relocates the entity without firing hooks, for spawns and save
// restores. Passive zone state is re-primed at the new tile.
func (e *Engine) Place(x, y float64) {
	e.pos = e.clamp(gamemath.Vec{X: x, Y: y})
	e.syncPassive(false)
}

// Teleport relocates the entity unconditionally and evaluates save and
// proximity zones at the destination, firing hooks as a move would.
func (e *Engine) Teleport(x, y float64) {
	e.pos = e.clamp(gamemath.Vec{X: x, Y: y})
	e.syncPassive(true)
}

// Near reports whether the proximity flag is set.
func (e *Engine) Near(flag string) bool {
	_, ok := e.near[flag]
	return ok
}

// Flags returns the set proximity flags, sorted.
func (e *Engine) Flags() []string {
	flags := make([]string, 0, len(e.near))
	for f := range e.near {
		flags = append(flags, f)
	}
	sort.Strings(flags)
	return flags
}

func (e *Engine) clamp(p gamemath.Vec) gamemath.Vec {
	return gamemath.ClampToWorld(p, e.cfg.BoxWidth, e.cfg.BoxHeight, e.cfg.WorldWidth, e.cfg.WorldHeight)
}

// evaluateZones runs after a committed move. The first teleport or exit on the
// tile wins. A cross-map teleport or an exit hands control to the hook and
// stops, since the screen is about to be replaced.
func (e *Engine) evaluateZones(res *Result) {
	if e.zones == nil {
		return
	}

	for _, z := range e.zones.At(e.Tile(), zone.KindTeleport, zone.KindExit) {
		res.Zone = z
		if z.Kind == zone.KindExit {
			e.log.Debug("exit zone", zap.String("zone", z.Name))
			e.hooks.Exit(*z)
			return
		}
		if z.Target.Map != "" && z.Target.Map != e.cfg.Map {
			e.log.Debug("teleport zone", zap.String("zone", z.Name), zap.String("map", z.Target.Map))
			e.hooks.Teleport(*z)
			return
		}
		e.pos = e.clamp(gamemath.Vec{X: z.Target.X, Y: z.Target.Y})
		res.Teleported = true
		e.log.Debug("teleport zone", zap.String("zone", z.Name),
			zap.Float64("x", e.pos.X), zap.Float64("y", e.pos.Y))
		e.hooks.Teleport(*z)
		break
	}

	e.syncPassive(true)
}

// passiveEvent is one pending save or proximity hook call.
type passiveEvent struct {
	z    zone.Zone
	save bool
	near bool
}

// syncPassive recomputes save and proximity state at the current tile. With
// notify set, entering a save zone prompts and proximity changes are reported.
// State is final before any hook fires. When a hook relocates the entity the
// remaining events are dropped and the state is recomputed at the new tile.
func (e *Engine) syncPassive(notify bool) {
	if e.zones == nil {
		return
	}
	if e.syncing {
		e.resync = true
		e.resyncNotify = e.resyncNotify || notify
		return
	}
	e.syncing = true
	defer func() { e.syncing = false }()

	for i := 0; i < maxResyncs; i++ {
		e.resync, e.resyncNotify = false, false
		events := e.updatePassive()
		if !notify {
			return
		}
		for n, ev := range events {
			e.firePassive(ev)
			if e.resync {
				e.rollback(events[n+1:])
				break
			}
		}
		if !e.resync {
			return
		}
		notify = e.resyncNotify
	}
	e.log.Warn("proximity hooks kept relocating the entity", zap.Int("resyncs", maxResyncs))
}

// updatePassive replaces the save and proximity state with what the current
// tile holds and returns the hook calls the change implies.
func (e *Engine) updatePassive() []passiveEvent {
	tile := e.Tile()
	var events []passiveEvent

	inSave := make(map[string]bool)
	for _, z := range e.zones.At(tile, zone.KindSave) {
		inSave[z.Name] = true
		if !e.inSave[z.Name] {
			events = append(events, passiveEvent{z: *z, save: true})
		}
	}
	e.inSave = inSave

	near := make(map[string]zone.Zone)
	var entered []passiveEvent
	for _, z := range e.zones.At(tile, zone.KindProximity) {
		flag := z.FlagName()
		if _, dup := near[flag]; dup {
			continue
		}
		near[flag] = *z
		if _, was := e.near[flag]; !was {
			entered = append(entered, passiveEvent{z: *z, near: true})
		}
	}
	for _, flag := range sortedKeys(e.near) {
		if _, still := near[flag]; !still {
			events = append(events, passiveEvent{z: e.near[flag]})
		}
	}
	e.near = near
	return append(events, entered...)
}

func (e *Engine) firePassive(ev passiveEvent) {
	if ev.save {
		e.log.Debug("save zone", zap.String("zone", ev.z.Name))
		e.hooks.SavePrompt(ev.z)
		return
	}
	e.hooks.Proximity(ev.z, ev.near)
}

// rollback undoes the state of events that never fired, so the next update
// reports them against the tile the entity actually ended on.
func (e *Engine) rollback(unfired []passiveEvent) {
	for _, ev := range unfired {
		switch {
		case ev.save:
			delete(e.inSave, ev.z.Name)
		case ev.near:
			delete(e.near, ev.z.FlagName())
		default:
			e.near[ev.z.FlagName()] = ev.z
		}
	}
}

func sortedKeys(m map[string]zone.Zone) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
