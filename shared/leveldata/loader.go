package leveldata

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
)

// LoadMap loads a single map, choosing the parser by extension.
func LoadMap(fsys fs.FS, p string) (*MapData, error) {
	switch path.Ext(p) {
	case ".tmx":
		return LoadTMX(fsys, p)
	case ".yaml", ".yml":
		return LoadYAML(fsys, p)
	}
	return nil, fmt.Errorf("load map %s: unsupported format", p)
}

// LoadAllMaps discovers every .tmx, .yaml and .yml file in dir within fsys,
// loads each, and returns them keyed by map name plus a sorted list of names.
func LoadAllMaps(fsys fs.FS, dir string) (map[string]*MapData, []string, error) {
	var matches []string
	for _, ext := range []string{"*.tmx", "*.yaml", "*.yml"} {
		pattern := path.Join(dir, ext)
		found, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		matches = append(matches, found...)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no map files found in %s", dir)
	}

	maps := make(map[string]*MapData, len(matches))
	names := make([]string, 0, len(matches))

	for _, p := range matches {
		data, err := LoadMap(fsys, p)
		if err != nil {
			return nil, nil, err
		}
		if _, dup := maps[data.Name]; dup {
			return nil, nil, fmt.Errorf("load %s: map name %q already used", p, data.Name)
		}
		maps[data.Name] = data
		names = append(names, data.Name)
	}

	sort.Strings(names)
	return maps, names, nil
}
