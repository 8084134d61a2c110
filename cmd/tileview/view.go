package main

import (
	"fmt"

	"github.com/automoto/farmstead/save"
	"github.com/automoto/farmstead/shared/collision"
	"github.com/automoto/farmstead/shared/gamemath"
	"github.com/automoto/farmstead/shared/movement"
	"github.com/automoto/farmstead/shared/scripting"
	"github.com/automoto/farmstead/shared/world"
	"github.com/automoto/farmstead/shared/zone"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// Each tile is drawn two columns wide so the grid looks square.
const tileColumns = 2

var shapeGlyphs = map[collision.Shape]rune{
	collision.ShapeFull:       '█',
	collision.ShapeHalfTop:    '▀',
	collision.ShapeHalfBottom: '▄',
	collision.ShapeHalfLeft:   '▌',
	collision.ShapeHalfRight:  '▐',
}

var zoneGlyphs = map[zone.Kind]rune{
	zone.KindTeleport:  'T',
	zone.KindExit:      'X',
	zone.KindSave:      'S',
	zone.KindProximity: '*',
}

var facingGlyphs = map[movement.Facing]rune{
	movement.FacingStand: '@',
	movement.FacingUp:    '^',
	movement.FacingDown:  'v',
	movement.FacingLeft:  '<',
	movement.FacingRight: '>',
}

var (
	styleFloor   = tcell.StyleDefault.Foreground(tcell.ColorDarkOliveGreen)
	styleRegion  = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	styleZone    = tcell.StyleDefault.Foreground(tcell.ColorGold)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorOrange)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleMessage = tcell.StyleDefault.Foreground(tcell.ColorLightGray)
)

// view is the terminal client: one traveler, one screen.
type view struct {
	screen   tcell.Screen
	traveler *world.Traveler
	scripts  *scripting.Engine
	store    *save.Store
	log      *zap.Logger

	last    movement.Result
	message string
	// Save point the player is standing on, waiting for a confirm.
	prompt *zone.Zone
}

func newView(screen tcell.Screen, atlas *world.Atlas, store *save.Store, scripts bool, log *zap.Logger) *view {
	if log == nil {
		log = zap.NewNop()
	}
	v := &view{screen: screen, store: store, log: log}

	var hooks movement.Hooks = movement.HookFuncs{
		OnSavePrompt: func(z zone.Zone) {
			v.prompt = &z
			v.message = fmt.Sprintf("Save point %q: press y to save", z.Name)
		},
		OnProximity: func(z zone.Zone, near bool) {
			if near {
				v.message = "Near " + z.FlagName()
			}
		},
	}
	if scripts {
		v.scripts = scripting.NewEngine(log)
		hooks = scripting.NewHooks(v.scripts, hooks)
	}

	v.traveler = world.NewTraveler(atlas,
		world.WithHooks(hooks),
		world.WithTransferFunc(func(t world.Transfer) {
			if t.From != "" {
				v.message = fmt.Sprintf("%s -> %s", t.From, t.To)
			}
		}),
		world.WithLogger(log),
	)
	if v.scripts != nil {
		v.scripts.SetTeleporter(v.traveler)
	}
	return v
}

// Close releases the script engine.
func (v *view) Close() {
	if v.scripts != nil {
		v.scripts.Close()
	}
}

// Run draws and handles keys until the player quits.
func (v *view) Run() {
	for {
		v.draw()
		v.screen.Show()

		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		case nil:
			return
		}
	}
}

// handleKey applies one key press and reports whether to quit.
func (v *view) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.step(movement.Up)
	case tcell.KeyDown:
		v.step(movement.Down)
	case tcell.KeyLeft:
		v.step(movement.Left)
	case tcell.KeyRight:
		v.step(movement.Right)
	case tcell.KeyEnter:
		v.confirm()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'w':
			v.step(movement.Up)
		case 's':
			v.step(movement.Down)
		case 'a':
			v.step(movement.Left)
		case 'd':
			v.step(movement.Right)
		case 'y':
			v.confirm()
		}
	}
	return false
}

func (v *view) step(d movement.Direction) {
	v.prompt = nil
	v.message = ""
	v.last = v.traveler.Step(d)
}

// confirm saves the game when a save prompt is open.
func (v *view) confirm() {
	if v.prompt == nil {
		return
	}
	z := v.prompt
	v.prompt = nil
	if v.store == nil {
		v.message = "Save data is unavailable"
		return
	}

	engine := v.traveler.Engine()
	pos := engine.Position()
	g := save.Game{Map: v.traveler.MapName(), X: pos.X, Y: pos.Y, Facing: engine.Facing()}
	if v.scripts != nil {
		g.Flags = v.scripts.Flags()
	}
	if err := v.store.Save(g); err != nil {
		v.log.Warn("save failed", zap.String("zone", z.Name), zap.Error(err))
		v.message = "Could not save: " + err.Error()
		return
	}
	v.message = "Saved at " + z.Name
}

func (v *view) draw() {
	v.screen.Clear()
	engine := v.traveler.Engine()
	if engine == nil {
		return
	}

	cfg := engine.Config()
	cols := int(cfg.WorldWidth / cfg.CellSize)
	rows := int(cfg.WorldHeight / cfg.CellSize)
	player := engine.Tile()

	for ty := 0; ty < rows; ty++ {
		for tx := 0; tx < cols; tx++ {
			t := gamemath.Tile{X: tx, Y: ty}
			glyph, style := v.tileGlyph(engine, t)
			if t == player {
				glyph, style = facingGlyphs[engine.Facing()], stylePlayer
			}
			for c := 0; c < tileColumns; c++ {
				v.screen.SetContent(tx*tileColumns+c, ty, glyph, nil, style)
			}
		}
	}

	v.drawText(0, rows, styleStatus, v.statusLine())
	v.drawText(0, rows+1, styleMessage, v.message)
}

// tileGlyph picks a tile's character: collision shape first, then zone,
// then floor.
func (v *view) tileGlyph(engine *movement.Engine, t gamemath.Tile) (rune, tcell.Style) {
	if shapes := engine.Index().At(t); len(shapes) > 0 {
		glyph := shapeGlyphs[shapes[0]]
		for _, s := range shapes {
			if s == collision.ShapeFull {
				glyph = shapeGlyphs[s]
			}
		}
		return glyph, styleRegion
	}
	if zones := engine.Zones(); zones != nil {
		for _, z := range zones.Zones() {
			for _, zt := range z.Tiles {
				if zt == t {
					return zoneGlyphs[z.Kind], styleZone
				}
			}
		}
	}
	return '.', styleFloor
}

func (v *view) statusLine() string {
	engine := v.traveler.Engine()
	pos := engine.Position()
	t := engine.Tile()
	line := fmt.Sprintf("%s  pos %.1f,%.1f  tile %d,%d  facing %s",
		v.traveler.MapName(), pos.X, pos.Y, t.X, t.Y, engine.Facing())
	if v.last.Blocked {
		line += "  blocked"
	}
	return line
}

func (v *view) drawText(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
