package data

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/alexeagleson/goblin-boys/internal/domain"
)

func TestLoad_Embedded(t *testing.T) {
	tables, err := Load()
	if err != nil {
		t.Fatalf("load embedded tables: %v", err)
	}

	tests := []struct {
		name          string
		width, height int
		floor         domain.SpriteTexture
	}{
		{"sewer", 47, 15, domain.TextureFloorConcrete},
		{"grass", 27, 10, domain.TextureFloorGrass},
	}
	if len(tables.Maps) != len(tests) {
		t.Fatalf("got %d maps, want %d", len(tables.Maps), len(tests))
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tables.Maps[i]
			if m.Name != tt.name {
				t.Fatalf("map %d is %q, want %q", i, m.Name, tt.name)
			}
			rows := m.Rows()
			if len(rows) != tt.height || len(rows[0]) != tt.width {
				t.Errorf("size %dx%d, want %dx%d", len(rows[0]), len(rows), tt.width, tt.height)
			}
			if m.Floor != tt.floor {
				t.Errorf("floor %s, want %s", m.Floor, tt.floor)
			}
		})
	}

	if !tables.Maps[1].Enemies || tables.Maps[0].Enemies {
		t.Error("enemies belong to the grass map only")
	}
	if tables.Maps[0].Legend["q"].WarpTo != "grass" || tables.Maps[1].Legend["t"].WarpTo != "sewer" {
		t.Error("warp cells must link the two maps")
	}
}

func TestTables_Lookups(t *testing.T) {
	tables, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	for _, appearance := range []string{"ghost_boy", "kidzilla", "sewer_kid", "boney_boy", "ant_boy"} {
		if _, ok := tables.Players[appearance]; !ok {
			t.Errorf("missing appearance %q", appearance)
		}
	}
	if got := tables.Player("no_such_look"); got.Texture != tables.Players[tables.DefaultAppearance].Texture {
		t.Error("unknown appearance should fall back to the default")
	}

	rat, ok := tables.Enemy(domain.EnemyRat)
	if !ok || rat.Name != "Rat" {
		t.Errorf("rat config = %+v, %v", rat, ok)
	}
	if _, ok := tables.Enemy(domain.EnemyUnknown); ok {
		t.Error("unknown enemy kind must not resolve")
	}

	if idx, ok := tables.MapIndex("grass"); !ok || idx != 1 {
		t.Errorf("MapIndex(grass) = %d, %v", idx, ok)
	}
	if len(tables.Dialogue["sewer_kid"]) == 0 {
		t.Error("sewer kid has nothing to say")
	}
}

func TestLoadFS_ValidationErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"maps.yaml": {Data: []byte(`
maps:
  - name: broken
    floor: floor_grass
    layout: |
      #####
      #.?.#
      ####
    legend:
      "#": { texture: wall_brick, blocks_movement: true, blocks_light: true }
      ".": { texture: empty }
      "ab": { texture: empty }
      "n": { name: Nobody, texture: npc_person_frames_2, dialogue: missing, warp_to: nowhere }
`)},
		"players.yaml":  {Data: []byte("default: ghost\nplayers: {}\n")},
		"enemies.yaml":  {Data: []byte("enemies: {}\n")},
		"dialogue.yaml": {Data: []byte("dialogue: {}\n")},
	}

	_, err := LoadFS(fsys)
	if err == nil {
		t.Fatal("expected validation errors")
	}

	for _, want := range []string{
		`unrecognized character '?'`,
		`row 2 has 4 cells`,
		`legend key "ab"`,
		`unknown dialogue "missing"`,
		`unknown map "nowhere"`,
		`default appearance "ghost"`,
		`enemy "rat" is missing`,
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error does not mention %q:\n%v", want, err)
		}
	}
}

func TestLoadFS_UnknownField(t *testing.T) {
	fsys := fstest.MapFS{
		"maps.yaml": {Data: []byte("maps: []\nextra: true\n")},
	}
	_, err := LoadFS(fsys)
	if err == nil || !strings.Contains(err.Error(), "maps.yaml") {
		t.Fatalf("expected decode error for unknown field, got %v", err)
	}
}
