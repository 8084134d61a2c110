// Package save persists the player's map, position and facing, plus client
// settings, through gdata. Position and facing are stored verbatim; the
// engine decides nothing about them here.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/automoto/farmstead/shared/movement"
	"github.com/quasilyte/gdata"
	"go.uber.org/zap"
)

// ErrNoSave is returned by Load when no game has been saved yet.
var ErrNoSave = errors.New("no saved game")

// AppName is the gdata application key shared by every client.
const AppName = "farmstead"

const (
	progressKey = "progress"
	settingsKey = "settings"
)

// ItemStore is the subset of *gdata.Manager the store needs.
type ItemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// Game is one saved game.
type Game struct {
	Map     string          `json:"map"`
	X       float64         `json:"x"`
	Y       float64         `json:"y"`
	Facing  movement.Facing `json:"facing"`
	Flags   []string        `json:"flags,omitempty"`
	SavedAt time.Time       `json:"savedAt"`
}

// Debug overlay stages.
const (
	OverlayOff       = "off"
	OverlayCollision = "collision"
	OverlayAll       = "all"
)

// Settings are the client options that survive restarts.
type Settings struct {
	Fullscreen bool    `json:"fullscreen"`
	Zoom       float64 `json:"zoom"`
	Overlay    string  `json:"overlay,omitempty"`

	// ShowCollision is only read from saves written before Overlay.
	ShowCollision bool `json:"showCollision,omitempty"`
}

// OverlayStage returns the saved overlay stage.
func (s Settings) OverlayStage() string {
	switch s.Overlay {
	case OverlayOff, OverlayCollision, OverlayAll:
		return s.Overlay
	}
	if s.ShowCollision {
		return OverlayCollision
	}
	return OverlayOff
}

// Store reads and writes save data.
type Store struct {
	items ItemStore
	log   *zap.Logger
	now   func() time.Time
}

// Open opens the gdata store for appName.
func Open(appName string, log *zap.Logger) (*Store, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open save data: %w", err)
	}
	return New(m, log), nil
}

// New wraps any ItemStore.
func New(items ItemStore, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{items: items, log: log, now: time.Now}
}

// Load returns the saved game, or ErrNoSave.
func (s *Store) Load() (*Game, error) {
	data, err := s.items.LoadItem(progressKey)
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoSave
	}

	var g Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse saved game: %w", err)
	}
	if g.Map == "" {
		return nil, fmt.Errorf("parse saved game: no map name")
	}
	return &g, nil
}

// Save writes g, stamping SavedAt.
func (s *Store) Save(g Game) error {
	g.SavedAt = s.now().UTC()
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("serialize game: %w", err)
	}
	if err := s.items.SaveItem(progressKey, data); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	s.log.Info("game saved", zap.String("map", g.Map),
		zap.Float64("x", g.X), zap.Float64("y", g.Y), zap.Stringer("facing", g.Facing))
	return nil
}

// Has reports whether a saved game exists.
func (s *Store) Has() bool {
	data, err := s.items.LoadItem(progressKey)
	return err == nil && len(data) > 0
}

// Clear removes the saved game.
func (s *Store) Clear() error {
	if err := s.items.SaveItem(progressKey, nil); err != nil {
		return fmt.Errorf("clear game: %w", err)
	}
	return nil
}

// LoadSettings returns the saved settings, or nil when none were saved.
func (s *Store) LoadSettings() (*Settings, error) {
	data, err := s.items.LoadItem(settingsKey)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var st Settings
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return &st, nil
}

// SaveSettings writes st.
func (s *Store) SaveSettings(st Settings) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}
	if err := s.items.SaveItem(settingsKey, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
