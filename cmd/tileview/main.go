// Command tileview walks the farm maps in a terminal. Every key press moves
// the player one step.
package main

import (
	"flag"
	"log"

	"github.com/automoto/farmstead/assets"
	"github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/save"
	"github.com/automoto/farmstead/shared/leveldata"
	"github.com/automoto/farmstead/shared/world"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	mapsDir := flag.String("maps", "", "directory of map files (default: embedded maps)")
	start := flag.String("map", "", "map to start on (default from config)")
	spawn := flag.String("spawn", leveldata.DefaultSpawn, "spawn point on the start map")
	persist := flag.Bool("save", true, "write save points to the game's save data")
	logPath := flag.String("log", "", "write logs to this file (default: no logs)")
	flag.Parse()

	if _, err := config.LoadAndApply(*configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	// The terminal owns stdout and stderr, so logs only go to a file.
	logger := zap.NewNop()
	if *logPath != "" {
		config.Logging.Output = *logPath
		l, err := config.NewLogger(config.Logging)
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		logger = l
	}
	defer func() { _ = logger.Sync() }()

	dir := *mapsDir
	if dir == "" {
		dir = config.World.MapsDir
	}
	atlas, err := assets.LoadAtlas(dir, world.Defaults{
		Speed:     config.Movement.StepSpeed,
		BoxWidth:  config.Movement.BoxWidth,
		BoxHeight: config.Movement.BoxHeight,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to load maps: %v", err)
	}

	var store *save.Store
	if *persist {
		if store, err = save.Open(save.AppName, logger); err != nil {
			logger.Warn("running without save data", zap.Error(err))
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init terminal: %v", err)
	}
	defer screen.Fini()

	v := newView(screen, atlas, store, config.World.Scripts, logger)
	defer v.Close()

	startMap := *start
	if startMap == "" {
		startMap = config.World.StartMap
	}
	if err := v.traveler.Enter(startMap, *spawn); err != nil {
		screen.Fini()
		log.Fatalf("Failed to enter %s: %v", startMap, err)
	}

	v.Run()
}
