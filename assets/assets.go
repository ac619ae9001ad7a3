package assets

import (
	"embed"
	"fmt"
	"log"

	"github.com/envtester/chaos-invaders/shared/leveldata"
)

var (
	//go:embed all:levels
	assetFS embed.FS
)

// DefaultArena is loaded when no arena is requested.
const DefaultArena = "arena"

// LevelLoader caches parsed arena layouts from the embedded levels directory.
type LevelLoader struct {
	arenas map[string]*leveldata.ArenaLayout
	names  []string
}

func NewLevelLoader() *LevelLoader {
	return &LevelLoader{}
}

// Load parses every embedded arena once.
func (l *LevelLoader) Load() error {
	if l.arenas != nil {
		return nil
	}
	arenas, names, err := leveldata.LoadAllArenas(assetFS, "levels")
	if err != nil {
		return err
	}
	l.arenas = arenas
	l.names = names
	log.Printf("[assets] loaded %d arena(s): %v", len(names), names)
	return nil
}

// Names returns the sorted arena names.
func (l *LevelLoader) Names() []string {
	return l.names
}

// Arena returns the named layout.
func (l *LevelLoader) Arena(name string) (*leveldata.ArenaLayout, error) {
	if err := l.Load(); err != nil {
		return nil, err
	}
	layout, ok := l.arenas[name]
	if !ok {
		return nil, fmt.Errorf("unknown arena %q (have %v)", name, l.names)
	}
	return layout, nil
}

// MustLoadArena is Arena for startup code that cannot continue without one.
func (l *LevelLoader) MustLoadArena(name string) *leveldata.ArenaLayout {
	layout, err := l.Arena(name)
	if err != nil {
		log.Fatalf("failed to load arena: %v", err)
	}
	return layout
}
