package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// EnvPath names the environment variable that points at a TOML config file.
const EnvPath = "FARMSTEAD_CONFIG"

// DefaultPath is read when neither a flag nor EnvPath names a file.
const DefaultPath = "farmstead.toml"

// File is the on-disk shape of the config. Sections left out of the file
// keep their built-in defaults.
type File struct {
	Window   Config         `toml:"window"`
	Movement MovementConfig `toml:"movement"`
	Camera   CameraConfig   `toml:"camera"`
	World    WorldConfig    `toml:"world"`
	Fade     FadeConfig     `toml:"fade"`
	HUD      HUDConfig      `toml:"hud"`
	Debug    DebugConfig    `toml:"debug"`
	Logging  LoggingConfig  `toml:"logging"`
}

// Current snapshots the global configuration.
func Current() *File {
	return &File{
		Window:   *C,
		Movement: Movement,
		Camera:   Camera,
		World:    World,
		Fade:     Fade,
		HUD:      HUD,
		Debug:    Debug,
		Logging:  Logging,
	}
}

// Load reads path on top of the current globals and validates the result.
// The globals are not touched; call Apply for that.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes raw TOML on top of the current globals.
func Parse(data []byte, name string) (*File, error) {
	cfg := Current()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

// Validate rejects values the game cannot start with.
func (f *File) Validate() error {
	switch {
	case f.Window.Width <= 0 || f.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", f.Window.Width, f.Window.Height)
	case f.Window.TPS <= 0:
		return fmt.Errorf("tps %d must be positive", f.Window.TPS)
	case f.Movement.Speed <= 0 || f.Movement.StepSpeed <= 0:
		return errors.New("movement speeds must be positive")
	case f.Movement.BoxWidth <= 0 || f.Movement.BoxHeight <= 0:
		return errors.New("movement box must be positive")
	case f.Camera.MinZoom <= 0 || f.Camera.MaxZoom < f.Camera.MinZoom:
		return fmt.Errorf("zoom range [%g, %g] is invalid", f.Camera.MinZoom, f.Camera.MaxZoom)
	case f.Camera.Zoom < f.Camera.MinZoom || f.Camera.Zoom > f.Camera.MaxZoom:
		return fmt.Errorf("zoom %g outside [%g, %g]", f.Camera.Zoom, f.Camera.MinZoom, f.Camera.MaxZoom)
	case f.World.StartMap == "":
		return errors.New("world.start_map is empty")
	}
	return nil
}

// Apply copies f into the globals.
func (f *File) Apply() {
	*C = f.Window
	Movement = f.Movement
	Camera = f.Camera
	World = f.World
	Fade = f.Fade
	HUD = f.HUD
	Debug = f.Debug
	Logging = f.Logging
}

// LoadAndApply resolves the config path from path, then EnvPath, then
// DefaultPath, and applies it. A missing DefaultPath is not an error.
// It returns the path that was read, or "" when defaults were kept.
func LoadAndApply(path string) (string, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		path = DefaultPath
		explicit = false
	}

	cfg, err := Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	cfg.Apply()
	return path, nil
}
