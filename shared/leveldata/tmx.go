package leveldata

import (
	"fmt"
	"io/fs"
	"math"

	"github.com/automoto/farmstead/shared/collision"
	"github.com/automoto/farmstead/shared/gamemath"
	"github.com/automoto/farmstead/shared/zone"
	"github.com/lafriks/go-tiled"
)

// Tiled layer and object group names.
const (
	CollisionLayer   = "collision"
	GroupTeleports   = "Teleports"
	GroupExits       = "Exits"
	GroupSavePoints  = "SavePoints"
	GroupProximity   = "Proximity"
	GroupPlayerSpawn = "PlayerSpawn"
)

var groupKinds = map[string]zone.Kind{
	GroupTeleports:  zone.KindTeleport,
	GroupExits:      zone.KindExit,
	GroupSavePoints: zone.KindSave,
	GroupProximity:  zone.KindProximity,
}

// LoadTMX parses a Tiled map. Collision comes from the "collision" tile layer:
// every non-empty tile is a region whose shape is the tileset tile's "shape"
// property (full when unset). Zones and spawns come from object groups. It
// takes an fs.FS so callers can pass embed.FS or os.DirFS.
func LoadTMX(fsys fs.FS, tmxPath string) (*MapData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth != levelMap.TileHeight {
		return nil, fmt.Errorf("load TMX %s: tiles must be square, got %dx%d", tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	cell := float64(levelMap.TileWidth)
	data := &MapData{
		Name:     stem(tmxPath),
		CellSize: cell,
		Width:    float64(levelMap.Width * levelMap.TileWidth),
		Height:   float64(levelMap.Height * levelMap.TileHeight),
	}

	if props := levelMap.Properties; props != nil {
		if name := props.GetString("name"); name != "" {
			data.Name = name
		}
		data.Parent = props.GetString("parent")
		data.Speed = props.GetFloat("speed")
		data.BoxWidth = props.GetFloat("boxWidth")
		data.BoxHeight = props.GetFloat("boxHeight")
	}

	for _, layer := range levelMap.Layers {
		if layer.Name != CollisionLayer {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}

				var shapeName string
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					shapeName = tilesetTile.Properties.GetString("shape")
				}
				shape, err := collision.ParseShape(shapeName)
				if err != nil {
					return nil, fmt.Errorf("load TMX %s: tile (%d, %d): %w", tmxPath, x, y, err)
				}

				data.Regions = append(data.Regions, collision.Region{TileX: x, TileY: y, Shape: shape})
			}
		}
		break
	}

	for _, og := range levelMap.ObjectGroups {
		if og.Name == GroupPlayerSpawn {
			for _, o := range og.Objects {
				name := o.Name
				if name == "" {
					name = DefaultSpawn
				}
				data.Spawns = append(data.Spawns, SpawnPoint{Name: name, X: o.X, Y: o.Y})
			}
			continue
		}

		kind, ok := groupKinds[og.Name]
		if !ok {
			continue
		}
		for _, o := range og.Objects {
			z := zone.Zone{
				Name:   o.Name,
				Kind:   kind,
				Tiles:  objectTiles(o.X, o.Y, o.Width, o.Height, cell),
				Flag:   o.Properties.GetString("flag"),
				Script: o.Properties.GetString("script"),
			}
			if z.Name == "" {
				z.Name = fmt.Sprintf("%s-%d", kind, o.ID)
			}
			switch kind {
			case zone.KindTeleport:
				z.Target = zone.Target{
					Map: o.Properties.GetString("targetMap"),
					X:   o.Properties.GetFloat("targetX"),
					Y:   o.Properties.GetFloat("targetY"),
				}
			case zone.KindProximity:
				z.Radius = o.Properties.GetInt("radius")
			}
			data.Zones = append(data.Zones, z)
		}
	}

	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	return data, nil
}

// objectTiles lists the tiles a Tiled object covers. Point objects cover the
// single tile they sit in.
func objectTiles(x, y, w, h, cell float64) []gamemath.Tile {
	minT := gamemath.ToTile(x, y, cell)
	if w <= 0 || h <= 0 {
		return []gamemath.Tile{minT}
	}
	maxX := int(math.Ceil((x+w)/cell)) - 1
	maxY := int(math.Ceil((y+h)/cell)) - 1

	var tiles []gamemath.Tile
	for ty := minT.Y; ty <= maxY; ty++ {
		for tx := minT.X; tx <= maxX; tx++ {
			tiles = append(tiles, gamemath.Tile{X: tx, Y: ty})
		}
	}
	return tiles
}
