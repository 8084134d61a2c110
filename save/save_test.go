package save

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/automoto/farmstead/shared/movement"
)

type memStore struct {
	items   map[string][]byte
	loadErr error
}

func newMemStore() *memStore {
	return &memStore{items: map[string][]byte{}}
}

func (m *memStore) LoadItem(key string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.items[key], nil
}

func (m *memStore) SaveItem(key string, data []byte) error {
	m.items[key] = data
	return nil
}

func TestSaveAndLoad(t *testing.T) {
	mem := newMemStore()
	s := New(mem, nil)
	s.now = func() time.Time { return time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC) }

	if s.Has() {
		t.Fatal("empty store reports a save")
	}
	if _, err := s.Load(); !errors.Is(err, ErrNoSave) {
		t.Fatalf("Load on empty store = %v", err)
	}

	in := Game{Map: "farm", X: 119.5, Y: 10.25, Facing: movement.FacingLeft, Flags: []string{"met_rosa"}}
	if err := s.Save(in); err != nil {
		t.Fatal(err)
	}
	if !s.Has() {
		t.Fatal("Has = false after Save")
	}

	out, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if out.Map != in.Map || out.X != in.X || out.Y != in.Y || out.Facing != in.Facing {
		t.Errorf("loaded %+v, saved %+v", out, in)
	}
	if len(out.Flags) != 1 || out.Flags[0] != "met_rosa" {
		t.Errorf("flags = %v", out.Flags)
	}
	if !out.SavedAt.Equal(s.now()) {
		t.Errorf("SavedAt = %v", out.SavedAt)
	}
}

func TestFacingStoredByName(t *testing.T) {
	mem := newMemStore()
	s := New(mem, nil)
	if err := s.Save(Game{Map: "barn", Facing: movement.FacingUp}); err != nil {
		t.Fatal(err)
	}
	raw := string(mem.items[progressKey])
	if want := `"facing":"up"`; !strings.Contains(raw, want) {
		t.Errorf("payload %s missing %s", raw, want)
	}
}

func TestClear(t *testing.T) {
	s := New(newMemStore(), nil)
	if err := s.Save(Game{Map: "farm"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); !errors.Is(err, ErrNoSave) {
		t.Errorf("Load after Clear = %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "{not json"},
		{"no map", `{"x": 1, "y": 2}`},
		{"bad facing", `{"map": "farm", "facing": "sideways"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := newMemStore()
			mem.items[progressKey] = []byte(tt.raw)
			_, err := New(mem, nil).Load()
			if err == nil || errors.Is(err, ErrNoSave) {
				t.Errorf("Load = %v, want a parse error", err)
			}
		})
	}

	mem := newMemStore()
	mem.loadErr = errors.New("disk gone")
	if _, err := New(mem, nil).Load(); err == nil || errors.Is(err, ErrNoSave) {
		t.Errorf("Load with store error = %v", err)
	}
}

func TestSettings(t *testing.T) {
	s := New(newMemStore(), nil)
	got, err := s.LoadSettings()
	if err != nil || got != nil {
		t.Fatalf("LoadSettings on empty store = %v, %v", got, err)
	}
	want := Settings{Fullscreen: true, Zoom: 2, Overlay: OverlayAll}
	if err := s.SaveSettings(want); err != nil {
		t.Fatal(err)
	}
	got, err = s.LoadSettings()
	if err != nil || got == nil || *got != want {
		t.Errorf("LoadSettings = %+v, %v", got, err)
	}
}

func TestOverlayStage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"all", `{"overlay": "all"}`, OverlayAll},
		{"collision", `{"overlay": "collision"}`, OverlayCollision},
		{"older save", `{"showCollision": true}`, OverlayCollision},
		{"nothing", `{}`, OverlayOff},
		{"unknown stage", `{"overlay": "rainbow"}`, OverlayOff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := newMemStore()
			mem.items[settingsKey] = []byte(tt.raw)
			got, err := New(mem, nil).LoadSettings()
			if err != nil {
				t.Fatal(err)
			}
			if stage := got.OverlayStage(); stage != tt.want {
				t.Errorf("OverlayStage = %q, want %q", stage, tt.want)
			}
		})
	}
}
