package dungeon

import (
	"testing"

	"github.com/alexeagleson/goblin-boys/internal/data"
	"github.com/alexeagleson/goblin-boys/internal/domain"
)

func testMapData() data.MapData {
	return data.MapData{
		Name:  "test",
		Floor: domain.TextureFloorGrass,
		Layout: `
######
#.m.t#
#..w.#
######
`,
		Legend: map[string]data.LegendEntry{
			"#": {Name: "Wall", Texture: domain.TextureWallBrick, BlocksMovement: true, BlocksLight: true},
			".": {Texture: domain.TextureEmpty},
			"m": {Name: "Sewer Kid", Texture: "npc_sewer_kid_frames_6", BlocksMovement: true, Dialogue: "sewer_kid"},
			"t": {Name: "Teevee", Texture: domain.TextureWarp, WarpTo: "other"},
			"w": {Name: "Water", Texture: "object_water", BlocksMovement: true},
		},
	}
}

func TestParseLayout(t *testing.T) {
	layout, err := ParseLayout(testMapData())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if layout.Width != 6 || layout.Height != 4 {
		t.Fatalf("size %dx%d, want 6x4", layout.Width, layout.Height)
	}

	// 16 стен + NPC + переход + вода
	if len(layout.Cells) != 19 {
		t.Errorf("got %d seeded cells, want 19", len(layout.Cells))
	}
	for _, c := range layout.Cells {
		if c.Entry.IsEmpty() {
			t.Errorf("empty cell %v was seeded", c.Pos)
		}
	}
}

func TestParseLayout_Errors(t *testing.T) {
	tests := []struct {
		name   string
		layout string
	}{
		{"unknown character", "###\n#?#\n###"},
		{"ragged row", "###\n#.\n###"},
		{"empty", "\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testMapData()
			m.Layout = tt.layout
			if _, err := ParseLayout(m); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLevelBuilder_Build(t *testing.T) {
	layout, err := ParseLayout(testMapData())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	dialogue := map[string][]string{"sewer_kid": {"hello"}}
	warps := func(name string) (domain.MapID, bool) {
		if name == "other" {
			return 7, true
		}
		return 0, false
	}

	m, entities := NewLevel(layout).WithDialogue(dialogue).WithWarps(warps).Build(3)
	if m.ID != 3 || m.Width != 6 || m.Height != 4 || m.Floor != domain.TextureFloorGrass {
		t.Errorf("unexpected map %+v", m)
	}

	var kid, warp, water *domain.Entity
	for _, e := range entities {
		if !e.IsOn(3) {
			t.Fatalf("%s is not on map 3", e.Name)
		}
		switch e.Name {
		case "Sewer Kid":
			kid = e
		case "Teevee":
			warp = e
		case "Water":
			water = e
		}
	}

	if kid == nil || kid.Dialogue == nil || kid.Dialogue.Lines[0] != "hello" {
		t.Error("sewer kid should speak")
	}
	if kid != nil && !kid.IsAt(3, domain.Position{X: 2, Y: 1}) {
		t.Errorf("sewer kid at %v", kid.Pos)
	}
	if warp == nil || warp.WarpTo != 7 || warp.BlocksMovement {
		t.Error("teevee should be a walkable warp to map 7")
	}
	if water == nil || !water.BlocksMovement || water.BlocksLight {
		t.Error("water blocks movement only")
	}
}

func TestCreatePlayerAndEnemy(t *testing.T) {
	pos := domain.MapPosition{Pos: domain.Position{X: 2, Y: 2}, MapID: 1}
	cfg := data.PlayerConfig{
		Visibility: 8, BlocksMovement: true, Texture: "pc_kid_zilla",
		Hp: domain.HpComponent{Current: 20, Max: 20}, CombatStats: domain.CombatStats{Attack: 5, Defense: 2},
		MoveTime: 0.25, AttackTime: 0.5,
	}

	p1 := CreatePlayer(4, "Player 4", cfg, pos)
	p2 := CreatePlayer(5, "Player 5", cfg, pos)
	p1.Hp.Current = 1
	p1.Pos.Pos.X = 9
	if p2.Hp.Current != 20 || p2.Pos.Pos.X != 2 {
		t.Error("players must not share components")
	}
	if p1.User == nil || p1.User.ID != 4 || p1.Eyes.Radius != 8 || p1.Cooldown.MoveTime != 0.25 {
		t.Errorf("unexpected player %+v", p1)
	}

	enemy := CreateEnemy(domain.EnemyRat, data.EnemyConfig{
		Name: "Rat", Visibility: 6, BlocksMovement: true, Paths: true,
		Hp: domain.HpComponent{Current: 5, Max: 5}, MoveTime: 0.5, AttackTime: 0.8,
	}, pos)
	if enemy.Enemy.Kind != domain.EnemyRat || enemy.AI == nil || !enemy.AI.Paths {
		t.Errorf("unexpected enemy %+v", enemy)
	}
}
