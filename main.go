package main

import (
	"flag"
	"image"
	"log"

	"github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/fonts"
	"github.com/automoto/farmstead/scenes"
	"github.com/automoto/farmstead/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame() *Game {
	g := &Game{
		bounds: image.Rectangle{},
	}
	g.scene = scenes.NewMenuScene(g)
	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	debug := flag.Bool("debug", false, "start with the collision overlay on")
	flag.Parse()

	loaded, err := config.LoadAndApply(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *debug {
		config.Debug.ShowCollision = true
	}

	logger, err := config.NewLogger(config.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	systems.SetLogger(logger)
	if loaded != "" {
		logger.Info("config loaded", zap.String("path", loaded))
	}

	if err := fonts.LoadDefaults(config.HUD.FontSize); err != nil {
		logger.Fatal("load fonts", zap.Error(err))
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)
	ebiten.SetTPS(config.C.TPS)

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		logger.Warn("running without save data", zap.Error(err))
	}
	systems.ApplySavedSettingsGlobal(systems.LoadSettings())

	if err := ebiten.RunGame(NewGame()); err != nil {
		logger.Fatal("game exited", zap.Error(err))
	}
}
