package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/automoto/farmstead/shared/world"
	"go.uber.org/zap"
)

// MapsDir is the directory inside the embedded filesystem holding the maps.
const MapsDir = "maps"

//go:embed all:maps
var mapFS embed.FS

// Maps returns the embedded map filesystem.
func Maps() fs.FS {
	return mapFS
}

// MapSource picks the map filesystem: dir on disk when it exists, otherwise
// the embedded maps. The returned directory is relative to the filesystem.
func MapSource(dir string) (fs.FS, string) {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return os.DirFS(dir), "."
		}
	}
	return mapFS, MapsDir
}

// LoadAtlas loads every map from dir (or the embedded maps) and builds the
// collision indexes.
func LoadAtlas(dir string, defaults world.Defaults, log *zap.Logger) (*world.Atlas, error) {
	fsys, root := MapSource(dir)
	atlas, err := world.LoadAtlas(fsys, root, defaults, log)
	if err != nil {
		return nil, fmt.Errorf("load maps: %w", err)
	}
	return atlas, nil
}
