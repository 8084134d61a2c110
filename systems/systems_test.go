package systems

import (
	"strings"
	"testing"

	"github.com/automoto/farmstead/assets"
	"github.com/automoto/farmstead/components"
	cfg "github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/save"
	"github.com/automoto/farmstead/shared/gamemath"
	"github.com/automoto/farmstead/shared/movement"
	"github.com/automoto/farmstead/shared/world"
	"github.com/automoto/farmstead/systems/factory"
	"github.com/automoto/farmstead/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type memItems map[string][]byte

func (m memItems) LoadItem(key string) ([]byte, error) { return m[key], nil }

func (m memItems) SaveItem(key string, data []byte) error {
	m[key] = data
	return nil
}

// newTestWorld builds a scene the way the world scene does, standing on the
// farm's default spawn.
func newTestWorld(t *testing.T) *ecs.ECS {
	t.Helper()
	atlas, err := world.LoadAtlas(assets.Maps(), assets.MapsDir, world.Defaults{
		Speed: 2, BoxWidth: 13, BoxHeight: 13,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	e := ecs.NewECS(donburi.NewWorld())
	factory.CreateLevel(e, atlas)
	factory.CreateCamera(e)
	factory.CreateFade(e)
	traveler := world.NewTraveler(atlas,
		world.WithHooks(NewZoneHooks(e)),
		world.WithTransferFunc(NewTransferHandler(e)),
	)
	factory.CreatePlayer(e, traveler)
	if err := traveler.Enter("farm", "default"); err != nil {
		t.Fatal(err)
	}
	return e
}

func playerData(e *ecs.ECS) *components.PlayerData {
	entry, _ := tags.Player.First(e.World)
	return components.Player.Get(entry)
}

func useTestStore(t *testing.T, s *save.Store) {
	t.Helper()
	prev := store
	UseStore(s)
	t.Cleanup(func() { UseStore(prev) })
}

func TestCameraTarget(t *testing.T) {
	box := gamemath.Rect{W: 13, H: 13}
	farm := gamemath.Vec{X: 640, Y: 480}

	tests := []struct {
		name   string
		pos    gamemath.Vec
		world  gamemath.Vec
		scale  float64
		wantTX float64
		wantTY float64
	}{
		{"centred", gamemath.Vec{X: 300, Y: 260}, farm, 2, 320 - 306.5*2, 180 - 266.5*2},
		{"top-left corner clamps", gamemath.Vec{X: 0, Y: 0}, farm, 2, 0, 0},
		{"bottom-right corner clamps", gamemath.Vec{X: 627, Y: 467}, farm, 2, 640 - 1280, 360 - 960},
		{"small map is centred", gamemath.Vec{X: 10, Y: 10}, gamemath.Vec{X: 240, Y: 160}, 1, 200, 100},
		{"no map size skips clamping", gamemath.Vec{X: 0, Y: 0}, gamemath.Vec{}, 1, 320 - 6.5, 180 - 6.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CameraTarget(tt.pos, box, tt.world, tt.scale)
			if got.TranslateX != tt.wantTX || got.TranslateY != tt.wantTY || got.Scale != tt.scale {
				t.Errorf("CameraTarget = %+v, want translate (%v, %v)", got, tt.wantTX, tt.wantTY)
			}
		})
	}
}

func TestFacingMarker(t *testing.T) {
	box := gamemath.Rect{X: 100, Y: 100, W: 10, H: 10}
	if _, ok := FacingMarker(box, movement.FacingStand); ok {
		t.Error("standing has a marker")
	}

	tests := []struct {
		facing movement.Facing
		want   gamemath.Rect
	}{
		{movement.FacingUp, gamemath.Rect{X: 103.5, Y: 100, W: 3, H: 3}},
		{movement.FacingDown, gamemath.Rect{X: 103.5, Y: 107, W: 3, H: 3}},
		{movement.FacingLeft, gamemath.Rect{X: 100, Y: 103.5, W: 3, H: 3}},
		{movement.FacingRight, gamemath.Rect{X: 107, Y: 103.5, W: 3, H: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.facing.String(), func(t *testing.T) {
			got, ok := FacingMarker(box, tt.facing)
			if !ok || got != tt.want {
				t.Errorf("FacingMarker = %+v, %v; want %+v", got, ok, tt.want)
			}
		})
	}
}

func TestHUDLines(t *testing.T) {
	e := newTestWorld(t)
	lines := HUDLines("farm", playerData(e).Engine())
	want := []string{"farm", "tile 7,6  stand", "near near-well"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("HUDLines = %q, want %q", lines, want)
	}
}

func TestMenuOptions(t *testing.T) {
	if got := MenuOptions(false); len(got) != 2 || got[0] != components.MainMenuNewGame {
		t.Errorf("without save = %v", got)
	}
	if got := MenuOptions(true); len(got) != 3 || got[0] != components.MainMenuContinue {
		t.Errorf("with save = %v", got)
	}
}

func TestCycleDebugOverlay(t *testing.T) {
	var s components.SettingsData
	steps := []components.SettingsData{
		{ShowCollision: true},
		{ShowCollision: true, ShowZones: true, ShowGrid: true},
		{},
	}
	for i, want := range steps {
		cycleDebugOverlay(&s)
		if s != want {
			t.Errorf("step %d = %+v, want %+v", i, s, want)
		}
	}
}

func TestApplyMoveActions(t *testing.T) {
	e := newTestWorld(t)
	engine := playerData(e).Engine()
	var input components.InputData

	frame := func(actions ...cfg.ActionID) {
		input.Previous = input.Current
		input.Current = [cfg.ActionCount]bool{}
		for _, a := range actions {
			input.Current[a] = true
		}
		applyMoveActions(&input, engine)
	}

	frame(cfg.ActionMoveUp)
	if held := engine.Held(); len(held) != 1 || held[0] != movement.Up {
		t.Fatalf("after press held = %v", held)
	}
	frame(cfg.ActionMoveUp, cfg.ActionMoveLeft)
	if held := engine.Held(); len(held) != 2 {
		t.Fatalf("after second press held = %v", held)
	}
	frame(cfg.ActionMoveLeft)
	if held := engine.Held(); len(held) != 1 || held[0] != movement.Left {
		t.Fatalf("after release held = %v", held)
	}

	// A direction still down after everything was released is picked up again.
	engine.ReleaseAll()
	frame(cfg.ActionMoveLeft)
	if held := engine.Held(); len(held) != 1 || held[0] != movement.Left {
		t.Errorf("held through release = %v", held)
	}
}

func TestSavePrompt(t *testing.T) {
	e := newTestWorld(t)
	s := save.New(memItems{}, nil)
	useTestStore(t, s)

	player := playerData(e)
	player.Engine().Press(movement.Up)
	for i := 0; i < 60 && !IsSavePromptOpen(e); i++ {
		UpdatePlayer(e)
	}
	if !IsSavePromptOpen(e) {
		t.Fatalf("walked to %v without reaching the mailbox", player.Engine().Position())
	}
	if z := GetOrCreateSavePrompt(e).Zone.Name; z != "mailbox" {
		t.Errorf("prompt zone = %q", z)
	}
	if CanMove(e) {
		t.Error("CanMove with the prompt open")
	}

	UpdatePlayerInput(e)
	if held := player.Engine().Held(); len(held) != 0 {
		t.Errorf("held while prompt open = %v", held)
	}
	ran := false
	WithGameplayChecks(func(*ecs.ECS) { ran = true })(e)
	if ran {
		t.Error("gameplay system ran under the prompt")
	}

	ConfirmSave(e)
	if IsSavePromptOpen(e) {
		t.Error("prompt still open after saving")
	}
	g, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	pos := player.Engine().Position()
	if g.Map != "farm" || g.X != pos.X || g.Y != pos.Y || g.Facing != movement.FacingUp {
		t.Errorf("saved %+v, player at %v", g, pos)
	}
	if msg := getOrCreateMessageState(e).Text; msg != "Game saved" {
		t.Errorf("message = %q", msg)
	}
}

func TestSavePromptWithoutStore(t *testing.T) {
	e := newTestWorld(t)
	useTestStore(t, nil)

	OpenSavePrompt(e, GetOrCreateSavePrompt(e).Zone)
	ConfirmSave(e)
	prompt := GetOrCreateSavePrompt(e)
	if !prompt.IsOpen || !strings.HasPrefix(prompt.Result, "Could not save") {
		t.Errorf("prompt = %+v", prompt)
	}

	CloseSavePrompt(e)
	if IsSavePromptOpen(e) || prompt.Result != "" {
		t.Errorf("after cancel prompt = %+v", prompt)
	}
}

func TestTransferFadesAndSnaps(t *testing.T) {
	e := newTestWorld(t)
	levelEntry, _ := components.Level.First(e.World)
	level := components.Level.Get(levelEntry)
	if level.Name != "farm" || level.Visits != 0 || IsFading(e) {
		t.Fatalf("after enter level=%s visits=%d fading=%v", level.Name, level.Visits, IsFading(e))
	}

	UpdateCamera(e)
	if err := playerData(e).Traveler.TeleportTo("house", 173, 160); err != nil {
		t.Fatal(err)
	}
	if level.Name != "house" || level.Current.Name != "house" || level.Visits != 1 {
		t.Errorf("after switch level=%s visits=%d", level.Name, level.Visits)
	}
	if !IsFading(e) || CanMove(e) {
		t.Error("no fade after a map switch")
	}
	camEntry, _ := components.Camera.First(e.World)
	if !components.Camera.Get(camEntry).Snap {
		t.Error("camera not snapped")
	}

	for i := 0; i < cfg.C.TPS*2 && IsFading(e); i++ {
		UpdateFade(e)
	}
	if IsFading(e) || !CanMove(e) {
		t.Error("fade never finished")
	}
}

func TestSetZoom(t *testing.T) {
	e := newTestWorld(t)
	SetZoom(e, cfg.Camera.MaxZoom+10)
	if z := cameraZoom(e); z != cfg.Camera.MaxZoom {
		t.Errorf("zoom = %v, want clamp to %v", z, cfg.Camera.MaxZoom)
	}

	for i := 0; i < cfg.C.TPS; i++ {
		UpdateCamera(e)
	}
	camEntry, _ := components.Camera.First(e.World)
	camera := components.Camera.Get(camEntry)
	if camera.ZoomTween != nil || camera.Transform.Scale != cfg.Camera.MaxZoom {
		t.Errorf("after tween scale = %v, tween running = %v", camera.Transform.Scale, camera.ZoomTween != nil)
	}
}

type fakeSceneChanger struct {
	scene interface{}
}

func (f *fakeSceneChanger) ChangeScene(scene interface{}) { f.scene = scene }

func TestPauseMenu(t *testing.T) {
	e := newTestWorld(t)
	sc := &fakeSceneChanger{}
	left := false
	update := NewUpdatePause(sc, func() interface{} { return "menu" }, func() { left = true })
	input := getOrCreateInput(e)

	frame := func(actions ...cfg.ActionID) {
		input.Previous = input.Current
		input.Current = [cfg.ActionCount]bool{}
		for _, a := range actions {
			input.Current[a] = true
		}
		update(e)
	}

	frame(cfg.ActionCancel)
	if !IsPaused(e) || CanMove(e) {
		t.Fatal("Esc did not pause")
	}
	frame()
	frame(cfg.ActionCancel)
	if IsPaused(e) {
		t.Fatal("Esc did not resume")
	}

	// The save dialog keeps Esc for itself.
	OpenSavePrompt(e, GetOrCreateSavePrompt(e).Zone)
	frame()
	frame(cfg.ActionCancel)
	if IsPaused(e) {
		t.Error("paused over the save dialog")
	}
	CloseSavePrompt(e)

	frame()
	frame(cfg.ActionCancel)
	frame(cfg.ActionMoveDown)
	frame()
	frame(cfg.ActionMoveDown)
	if p := GetOrCreatePause(e); p.SelectedOption != components.MenuMainMenu {
		t.Fatalf("selected = %v", p.SelectedOption)
	}
	frame(cfg.ActionConfirm)
	if sc.scene != "menu" || !left {
		t.Errorf("scene = %v, left = %v", sc.scene, left)
	}
}

func TestSettingsMenu(t *testing.T) {
	e := newTestWorld(t)
	items := memItems{}
	s := save.New(items, nil)
	useTestStore(t, s)

	input := getOrCreateInput(e)
	frame := func(actions ...cfg.ActionID) {
		input.Previous = input.Current
		input.Current = [cfg.ActionCount]bool{}
		for _, a := range actions {
			input.Current[a] = true
		}
		UpdateSettingsMenu(e)
		input.Previous = input.Current
		input.Current = [cfg.ActionCount]bool{}
	}

	start := cameraZoom(e)
	frame(cfg.ActionMoveRight)
	if got := cameraZoom(e); got != start {
		t.Fatalf("closed menu changed zoom to %v", got)
	}

	OpenSettings(e)
	if !IsSettingsOpen(e) {
		t.Fatal("settings not open")
	}
	frame(cfg.ActionMoveRight)
	if got, want := cameraZoom(e), cfg.SettingsMenu.NextZoom(start); got != want {
		t.Errorf("zoom after right = %v, want %v", got, want)
	}
	frame(cfg.ActionMoveLeft)
	frame(cfg.ActionMoveLeft)
	if got, want := cameraZoom(e), cfg.SettingsMenu.PrevZoom(start); got != want {
		t.Errorf("zoom after two lefts = %v, want %v", got, want)
	}

	frame(cfg.ActionMoveDown)
	menu := GetOrCreateSettingsMenu(e)
	if menu.SelectedOption != components.SettingsOptOverlay {
		t.Fatalf("selected = %v", menu.SelectedOption)
	}
	frame(cfg.ActionConfirm)
	if _, v := getOptionDisplay(e, menu, menu.SelectedOption); v != "Collision" {
		t.Errorf("overlay = %q", v)
	}

	// Up from the top wraps to Back.
	frame(cfg.ActionMoveUp)
	frame(cfg.ActionMoveUp)
	if menu.SelectedOption != components.SettingsOptBack {
		t.Fatalf("selected = %v", menu.SelectedOption)
	}
	frame(cfg.ActionMoveUp)
	frame(cfg.ActionConfirm)
	if !menu.ShowingControls {
		t.Fatal("controls screen not shown")
	}
	frame(cfg.ActionCancel)
	if menu.ShowingControls || !IsSettingsOpen(e) {
		t.Fatal("Esc should leave the controls screen only")
	}

	frame(cfg.ActionCancel)
	if IsSettingsOpen(e) {
		t.Fatal("Esc did not close settings")
	}
	saved, err := s.LoadSettings()
	if err != nil || saved == nil {
		t.Fatalf("LoadSettings = %v, %v", saved, err)
	}
	if saved.Overlay != save.OverlayCollision || saved.Zoom != cfg.SettingsMenu.PrevZoom(start) {
		t.Errorf("saved = %+v", saved)
	}
}

func TestPauseOpensSettings(t *testing.T) {
	e := newTestWorld(t)
	update := NewUpdatePause(&fakeSceneChanger{}, func() interface{} { return nil }, func() {})
	input := getOrCreateInput(e)
	frame := func(actions ...cfg.ActionID) {
		input.Previous = input.Current
		input.Current = [cfg.ActionCount]bool{}
		for _, a := range actions {
			input.Current[a] = true
		}
		update(e)
		UpdateSettingsMenu(e)
	}

	frame(cfg.ActionCancel)
	frame()
	frame(cfg.ActionMoveDown)
	frame()
	frame(cfg.ActionConfirm)
	if !IsSettingsOpen(e) {
		t.Fatal("Settings option did not open the menu")
	}
	frame()
	frame(cfg.ActionCancel)
	if IsSettingsOpen(e) || !IsPaused(e) {
		t.Errorf("settings open = %v, paused = %v", IsSettingsOpen(e), IsPaused(e))
	}
}

func TestOverlayStageSurvivesRestart(t *testing.T) {
	s := save.New(memItems{}, nil)
	useTestStore(t, s)

	e := newTestWorld(t)
	settings := GetOrCreateSettings(e)
	settings.ShowCollision, settings.ShowZones, settings.ShowGrid = false, false, false
	cycleDebugOverlay(settings)
	cycleDebugOverlay(settings)
	SaveCurrentSettings(e)

	restarted := newTestWorld(t)
	ApplySavedSettings(restarted, LoadSettings())
	got := GetOrCreateSettings(restarted)
	if !got.ShowCollision || !got.ShowZones || !got.ShowGrid {
		t.Errorf("overlay after restart = %+v, want all", *got)
	}
}
