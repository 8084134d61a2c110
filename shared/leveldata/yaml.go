package leveldata

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML map definition. A missing name falls back to
// fallbackName.
func ParseYAML(raw []byte, fallbackName string) (*MapData, error) {
	var m MapData
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse map %s: %w", fallbackName, err)
	}
	if m.Name == "" {
		m.Name = fallbackName
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadYAML reads and decodes a YAML map file from fsys.
func LoadYAML(fsys fs.FS, p string) (*MapData, error) {
	raw, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, fmt.Errorf("read map %s: %w", p, err)
	}
	return ParseYAML(raw, stem(p))
}

// MarshalYAML encodes m in the same layout ParseYAML reads. Used by mapcheck
// to convert TMX maps.
func MarshalYAML(m *MapData) ([]byte, error) {
	return yaml.Marshal(m)
}

func stem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
