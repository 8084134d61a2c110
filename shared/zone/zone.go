// Package zone holds the interactive, non-blocking areas of a map: teleports,
// exits, save points and proximity triggers. They are evaluated after a move
// has been committed and never take part in collision.
package zone

import (
	"errors"
	"fmt"
	"strings"

	"github.com/automoto/farmstead/shared/gamemath"
)

// ErrUnknownKind is returned for zone kinds outside the supported set.
var ErrUnknownKind = errors.New("unknown zone kind")

// Kind is the trigger behaviour of a zone.
type Kind uint8

const (
	KindTeleport Kind = iota
	KindExit
	KindSave
	KindProximity
	kindCount // sentinel
)

// Resolv tags, one per kind.
const (
	TagTeleport  = "teleport"
	TagExit      = "exit"
	TagSave      = "save"
	TagProximity = "proximity"
)

var kindTags = [kindCount]string{
	KindTeleport:  TagTeleport,
	KindExit:      TagExit,
	KindSave:      TagSave,
	KindProximity: TagProximity,
}

func (k Kind) String() string {
	if k < kindCount {
		return kindTags[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Tag returns the resolv tag objects of this kind are registered with.
func (k Kind) Tag() string {
	return k.String()
}

// ParseKind converts a map-data kind name.
func ParseKind(name string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for k, tag := range kindTags {
		if key == tag {
			return Kind(k), nil
		}
	}
	switch key {
	case "teleports", "door", "warp":
		return KindTeleport, nil
	case "exits":
		return KindExit, nil
	case "savepoint", "save-point", "savepoints":
		return KindSave, nil
	case "near":
		return KindProximity, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k >= kindCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Target is a teleport destination. An empty Map means the current map.
type Target struct {
	Map string  `yaml:"map,omitempty" json:"map,omitempty"`
	X   float64 `yaml:"x" json:"x"`
	Y   float64 `yaml:"y" json:"y"`
}

// Zone is a tile-keyed trigger.
type Zone struct {
	Name  string          `yaml:"name" json:"name"`
	Kind  Kind            `yaml:"kind" json:"kind"`
	Tiles []gamemath.Tile `yaml:"tiles" json:"tiles"`

	// Radius widens a proximity zone by this many tiles in every direction.
	Radius int `yaml:"radius,omitempty" json:"radius,omitempty"`

	Target Target `yaml:"target,omitempty" json:"target,omitempty"`

	// Flag names the proximity flag; defaults to Name.
	Flag string `yaml:"flag,omitempty" json:"flag,omitempty"`

	// Script is optional Lua source run when the zone fires.
	Script string `yaml:"script,omitempty" json:"script,omitempty"`
}

// FlagName returns the proximity flag this zone drives.
func (z Zone) FlagName() string {
	if z.Flag != "" {
		return z.Flag
	}
	return z.Name
}
