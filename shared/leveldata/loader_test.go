package leveldata

import (
	"testing"
	"testing/fstest"
)

const testArena = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="16" height="12" tilewidth="50" tileheight="50" infinite="0" nextlayerid="4" nextobjectid="4">
 <objectgroup id="1" name="PlayField">
  <object id="1" x="0" y="0" width="800" height="600"/>
 </objectgroup>
 <objectgroup id="2" name="SpawnBand">
  <object id="2" x="50" y="50" width="700" height="250">
   <properties>
    <property name="margin" type="int" value="10"/>
   </properties>
  </object>
 </objectgroup>
 <objectgroup id="3" name="PlayerSpawn">
  <object id="3" x="375" y="525">
   <point/>
  </object>
 </objectgroup>
</map>`

const bareArena = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="8" height="6" tilewidth="50" tileheight="50" infinite="0" nextlayerid="1" nextobjectid="1">
</map>`

func TestLoadArena(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/arena.tmx": {Data: []byte(testArena)},
	}

	layout, err := LoadArena(fsys, "levels/arena.tmx")
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}

	if layout.Name != "arena" {
		t.Errorf("Expected name arena, got %q", layout.Name)
	}
	if layout.MapWidth != 800 || layout.MapHeight != 600 {
		t.Errorf("Expected 800x600 map, got %dx%d", layout.MapWidth, layout.MapHeight)
	}
	if want := (Area{X: 0, Y: 0, W: 800, H: 600}); layout.PlayField != want {
		t.Errorf("Expected play-field %+v, got %+v", want, layout.PlayField)
	}
	if want := (Area{X: 50, Y: 50, W: 700, H: 250}); layout.SpawnBand != want {
		t.Errorf("Expected spawn band %+v, got %+v", want, layout.SpawnBand)
	}
	if layout.SpawnMargin != 10 {
		t.Errorf("Expected margin 10, got %v", layout.SpawnMargin)
	}
	if layout.PlayerSpawn.X != 375 || layout.PlayerSpawn.Y != 525 {
		t.Errorf("Expected player spawn (375, 525), got (%v, %v)", layout.PlayerSpawn.X, layout.PlayerSpawn.Y)
	}
}

func TestLoadArenaDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/bare.tmx": {Data: []byte(bareArena)},
	}

	layout, err := LoadArena(fsys, "levels/bare.tmx")
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}
	if want := (Area{W: 400, H: 300}); layout.PlayField != want {
		t.Errorf("Expected play-field %+v, got %+v", want, layout.PlayField)
	}
	if want := (Area{W: 400, H: 150}); layout.SpawnBand != want {
		t.Errorf("Expected spawn band %+v, got %+v", want, layout.SpawnBand)
	}
	if layout.PlayerSpawn.X != 200 {
		t.Errorf("Expected centered player spawn, got x=%v", layout.PlayerSpawn.X)
	}
}

func TestLoadArenaMissingFile(t *testing.T) {
	if _, err := LoadArena(fstest.MapFS{}, "levels/none.tmx"); err == nil {
		t.Error("Expected error for missing arena file")
	}
}

func TestLoadAllArenas(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/b.tmx": {Data: []byte(testArena)},
		"levels/a.tmx": {Data: []byte(bareArena)},
	}

	arenas, names, err := LoadAllArenas(fsys, "levels")
	if err != nil {
		t.Fatalf("LoadAllArenas: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Expected sorted names [a b], got %v", names)
	}
	if arenas["b"].SpawnMargin != 10 {
		t.Errorf("Expected arena b margin 10, got %v", arenas["b"].SpawnMargin)
	}

	if _, _, err := LoadAllArenas(fstest.MapFS{}, "levels"); err == nil {
		t.Error("Expected error when no arenas exist")
	}
}
