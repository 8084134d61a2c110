package config

import "image/color"

// Render layers, passed to donburi as ecs.LayerID.
const (
	Default = iota
	LayerHUD
)

// Config holds the window configuration
type Config struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	TPS    int    `toml:"tps"`
}

// MovementConfig holds the defaults a map file may leave out
type MovementConfig struct {
	// Pixels per tick while a direction is held (desktop client)
	Speed float64 `toml:"speed"`
	// Pixels per key press (terminal client)
	StepSpeed float64 `toml:"step_speed"`

	BoxWidth  float64 `toml:"box_width"`
	BoxHeight float64 `toml:"box_height"`
}

// CameraConfig contains camera behavior configuration
type CameraConfig struct {
	Zoom            float64 `toml:"zoom"` // World pixels to screen pixels
	MinZoom         float64 `toml:"min_zoom"`
	MaxZoom         float64 `toml:"max_zoom"`
	ZoomStep        float64 `toml:"zoom_step"`        // Added or removed per zoom key press
	FollowSmoothing float64 `toml:"follow_smoothing"` // How fast camera follows player (0.0-1.0)
	ClampToMap      bool    `toml:"clamp_to_map"`     // Keep the visible area inside the map
	ZoomTweenSecs   float32 `toml:"zoom_tween_secs"`
}

// WorldConfig says where maps live and where a new game starts
type WorldConfig struct {
	MapsDir    string `toml:"maps_dir"`
	StartMap   string `toml:"start_map"`
	StartSpawn string `toml:"start_spawn"`
	// Lua zone scripts run when true
	Scripts bool `toml:"scripts"`
}

// FadeConfig controls the screen fade on map switches
type FadeConfig struct {
	Seconds float32    `toml:"seconds"`
	Color   color.RGBA `toml:"-"`
}

// HUDConfig contains HUD layout and colors
type HUDConfig struct {
	FontSize      float64    `toml:"font_size"`
	Margin        float64    `toml:"margin"`
	TextColor     color.RGBA `toml:"-"`
	PanelColor    color.RGBA `toml:"-"`
	PlayerColor   color.RGBA `toml:"-"`
	FacingColor   color.RGBA `toml:"-"`
	GridColor     color.RGBA `toml:"-"`
	RegionColor   color.RGBA `toml:"-"`
	FloorColor    color.RGBA `toml:"-"`
	BlockedFlash  int        `toml:"blocked_flash"` // Frames the player tints after a blocked move
	BlockedColor  color.RGBA `toml:"-"`
	PromptWidth   int        `toml:"prompt_width"`
	PromptPadding int        `toml:"prompt_padding"`

	// Overlay fill per zone kind name
	ZoneColors map[string]color.RGBA `toml:"-"`
}

// PauseConfig contains pause menu configuration values
type PauseConfig struct {
	OverlayColor      color.RGBA
	TextColorNormal   color.RGBA
	TextColorSelected color.RGBA
	MenuItemHeight    float64
	MenuItemGap       float64
	MenuOptions       []string
}

// DebugConfig contains debug overlays and command-line toggles
type DebugConfig struct {
	ShowCollision bool `toml:"show_collision"`
	ShowZones     bool `toml:"show_zones"`
	ShowGrid      bool `toml:"show_grid"`
}

// LoggingConfig selects the zap encoder and level
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	Output string `toml:"output"` // File path; empty means stderr
}

// Global configuration instances
var C *Config
var Movement MovementConfig
var Camera CameraConfig
var World WorldConfig
var Fade FadeConfig
var HUD HUDConfig
var Pause PauseConfig
var Debug DebugConfig
var Logging LoggingConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black        = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange       = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	BrightOrange = color.RGBA{R: 255, G: 180, B: 50, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	LightRed     = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	Green        = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	LightGreen   = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	Grass        = color.RGBA{R: 86, G: 130, B: 60, A: 255}
	Blue         = color.RGBA{R: 0, G: 100, B: 255, A: 255}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	Purple       = color.RGBA{R: 128, G: 0, B: 255, A: 255}
	Magenta      = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	Translucent  = color.RGBA{R: 255, G: 255, B: 255, A: 40}
)

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
		Title:  "Farmstead",
		TPS:    60,
	}

	Movement = MovementConfig{
		Speed:     2.0,
		StepSpeed: 20.0,
		BoxWidth:  13,
		BoxHeight: 13,
	}

	Camera = CameraConfig{
		Zoom:            2.0,
		MinZoom:         1.0,
		MaxZoom:         4.0,
		ZoomStep:        0.5,
		FollowSmoothing: 0.1,
		ClampToMap:      true,
		ZoomTweenSecs:   0.25,
	}

	World = WorldConfig{
		MapsDir:    "maps",
		StartMap:   "farm",
		StartSpawn: "default",
		Scripts:    true,
	}

	Fade = FadeConfig{
		Seconds: 0.35,
		Color:   Black,
	}

	HUD = HUDConfig{
		FontSize:    12,
		Margin:      6,
		TextColor:   White,
		PanelColor:  BlackOverlay,
		PlayerColor: BrightOrange,
		FacingColor: Yellow,
		GridColor:   Translucent,
		RegionColor: color.RGBA{R: 90, G: 60, B: 40, A: 255},
		ZoneColors: map[string]color.RGBA{
			"teleport":  color.RGBA{R: 100, G: 180, B: 255, A: 120},
			"exit":      color.RGBA{R: 255, G: 60, B: 60, A: 120},
			"save":      color.RGBA{R: 255, G: 255, B: 0, A: 120},
			"proximity": color.RGBA{R: 100, G: 255, B: 100, A: 60},
		},
		FloorColor:    Grass,
		BlockedFlash:  6,
		BlockedColor:  LightRed,
		PromptWidth:   260,
		PromptPadding: 10,
	}

	Pause = PauseConfig{
		OverlayColor:      BlackOverlay,
		TextColorNormal:   White,
		TextColorSelected: BrightOrange,
		MenuItemHeight:    24,
		MenuItemGap:       12,
		MenuOptions:       []string{"Resume", "Settings", "Main Menu", "Exit"},
	}

	Debug = DebugConfig{}

	Logging = LoggingConfig{
		Level:  "info",
		Format: "console",
	}
}
