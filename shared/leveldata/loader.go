package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Object group names read from arena files.
const (
	GroupPlayField   = "PlayField"
	GroupSpawnBand   = "SpawnBand"
	GroupPlayerSpawn = "PlayerSpawn"
)

// LoadArena parses a TMX file and returns its arena layout. It takes an fs.FS
// so callers can pass embed.FS (client) or fstest.MapFS (tests).
//
// A missing PlayField defaults to the whole map. A missing SpawnBand defaults
// to the upper half of the play-field.
func LoadArena(fsys fs.FS, tmxPath string) (*ArenaLayout, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	layout := &ArenaLayout{
		Name:      strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		MapWidth:  levelMap.Width * levelMap.TileWidth,
		MapHeight: levelMap.Height * levelMap.TileHeight,
	}
	layout.PlayField = Area{W: float64(layout.MapWidth), H: float64(layout.MapHeight)}

	var haveBand, haveSpawn bool
	for _, og := range levelMap.ObjectGroups {
		if len(og.Objects) == 0 {
			continue
		}
		o := og.Objects[0]
		switch og.Name {
		case GroupPlayField:
			layout.PlayField = Area{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
		case GroupSpawnBand:
			layout.SpawnBand = Area{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
			layout.SpawnMargin = float64(o.Properties.GetInt("margin"))
			haveBand = true
		case GroupPlayerSpawn:
			layout.PlayerSpawn = SpawnPoint{X: o.X, Y: o.Y}
			haveSpawn = true
		}
	}

	if layout.PlayField.W <= 0 || layout.PlayField.H <= 0 {
		return nil, fmt.Errorf("arena %s has an empty play-field", tmxPath)
	}
	if !haveBand {
		layout.SpawnBand = Area{
			X: layout.PlayField.X,
			Y: layout.PlayField.Y,
			W: layout.PlayField.W,
			H: layout.PlayField.H / 2,
		}
	}
	if !haveSpawn {
		layout.PlayerSpawn = SpawnPoint{
			X: layout.PlayField.X + layout.PlayField.W/2,
			Y: layout.PlayField.Y + layout.PlayField.H*0.875,
		}
	}

	return layout, nil
}

// LoadAllArenas discovers all .tmx files in dir within fsys, loads each, and
// returns a map keyed by stem name plus a sorted list of names.
func LoadAllArenas(fsys fs.FS, dir string) (map[string]*ArenaLayout, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	arenas := make(map[string]*ArenaLayout, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		layout, err := LoadArena(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		arenas[layout.Name] = layout
		names = append(names, layout.Name)
	}

	sort.Strings(names)
	return arenas, names, nil
}
