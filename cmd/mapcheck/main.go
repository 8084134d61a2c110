// Command mapcheck loads every map, builds the collision indexes and reports
// duplicate regions, zone counts and blocked arrival points. With -convert it
// prints a TMX map as YAML instead.
package main

import (
	"flag"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/automoto/farmstead/assets"
	"github.com/automoto/farmstead/config"
	"github.com/automoto/farmstead/shared/leveldata"
	"github.com/automoto/farmstead/shared/world"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	mapsDir := flag.String("maps", "", "directory of map files (default: embedded maps)")
	convert := flag.String("convert", "", "print this TMX file as YAML and exit")
	flag.Parse()

	if _, err := config.LoadAndApply(*configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := config.NewLogger(config.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if *convert != "" {
		dir, file := filepath.Split(*convert)
		if dir == "" {
			dir = "."
		}
		if err := convertTMX(os.DirFS(dir), file, os.Stdout); err != nil {
			logger.Fatal("convert", zap.String("file", *convert), zap.Error(err))
		}
		return
	}

	fsys, root := assets.MapSource(config.World.MapsDir)
	if *mapsDir != "" {
		fsys, root = os.DirFS(*mapsDir), "."
	}

	problems, err := check(os.Stdout, fsys, root, logger)
	if err != nil {
		logger.Fatal("load maps", zap.Error(err))
	}
	if problems > 0 {
		logger.Error("map check failed", zap.Int("problems", problems))
		os.Exit(1)
	}
}

// check loads every map under root and reports on them. Maps that cannot host
// an engine fail the load.
func check(w io.Writer, fsys fs.FS, root string, logger *zap.Logger) (int, error) {
	atlas, err := world.LoadAtlas(fsys, root, world.Defaults{
		Speed:     config.Movement.Speed,
		BoxWidth:  config.Movement.BoxWidth,
		BoxHeight: config.Movement.BoxHeight,
	}, logger)
	if err != nil {
		return 0, err
	}
	return report(w, atlas), nil
}

func convertTMX(fsys fs.FS, p string, w io.Writer) error {
	m, err := leveldata.LoadTMX(fsys, p)
	if err != nil {
		return err
	}
	out, err := leveldata.MarshalYAML(m)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
