package systems

import (
	"math/rand"
	"testing"

	"github.com/alexeagleson/goblin-boys/internal/domain"
)

func TestCalculateDamage(t *testing.T) {
	tests := []struct {
		name                   string
		attack, defense, bonus int
		want                   int
	}{
		{"attack above defense", 5, 2, 0, 3},
		{"bonus adds", 5, 2, 2, 5},
		{"defense absorbs everything", 1, 10, 0, 1},
		{"equal stats", 3, 3, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateDamage(tt.attack, tt.defense, tt.bonus); got != tt.want {
				t.Errorf("CalculateDamage(%d, %d, %d) = %d, want %d", tt.attack, tt.defense, tt.bonus, got, tt.want)
			}
		})
	}
}

func TestApplyAttack(t *testing.T) {
	attacker := &domain.Entity{
		Name:   "Rat",
		Combat: &domain.CombatStats{Attack: 5, Defense: 1},
	}
	target := &domain.Entity{
		Name:   "Sewer Kid",
		Hp:     &domain.HpComponent{Current: 10, Max: 10},
		Combat: &domain.CombatStats{Attack: 3, Defense: 2},
	}

	res := ApplyAttack(attacker, target, FixedBonus(0))
	if res.Damage != 3 {
		t.Errorf("damage = %d, want 3", res.Damage)
	}
	if target.Hp.Current != 7 || res.HpAfter != 7 || res.HpBefore != 10 {
		t.Errorf("hp after = %d (result %d/%d), want 7", target.Hp.Current, res.HpBefore, res.HpAfter)
	}
	if res.Died {
		t.Error("target should survive")
	}

	// Добивание: здоровье может уйти ниже нуля
	attacker.Combat.Attack = 100
	res = ApplyAttack(attacker, target, FixedBonus(0))
	if !res.Died {
		t.Error("target should die")
	}
	if target.Hp.Current > 0 {
		t.Errorf("expected non-positive hp, got %d", target.Hp.Current)
	}
}

func TestApplyAttack_NoCombatStats(t *testing.T) {
	attacker := &domain.Entity{Name: "Ghost"}
	target := &domain.Entity{Name: "Slime", Hp: &domain.HpComponent{Current: 4, Max: 4}}

	res := ApplyAttack(attacker, target, FixedBonus(0))
	if res.Damage != 1 {
		t.Errorf("minimum damage should be 1, got %d", res.Damage)
	}
}

func TestRandomBonus_Range(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	roller := RandomBonus(rng, 2)
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		b := roller.Roll()
		if b < 0 || b > 2 {
			t.Fatalf("bonus %d out of range", b)
		}
		seen[b] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected all bonuses 0..2 to appear, got %v", seen)
	}

	if got := RandomBonus(rng, 0).Roll(); got != 0 {
		t.Errorf("zero max bonus rolled %d", got)
	}
}

func TestConsume(t *testing.T) {
	tests := []struct {
		name     string
		cur, max int
		want     int
	}{
		{"full heal amount", 5, 20, 10},
		{"capped by missing hp", 17, 20, 3},
		{"already full", 20, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eater := &domain.Entity{Hp: &domain.HpComponent{Current: tt.cur, Max: tt.max}}
			if got := Consume(eater); got != tt.want {
				t.Errorf("healed %d, want %d", got, tt.want)
			}
			if eater.Hp.Current > eater.Hp.Max {
				t.Error("hp exceeds max")
			}
		})
	}
}

func TestCreateBones(t *testing.T) {
	dead := &domain.Entity{
		Name: "Rat",
		Pos:  &domain.MapPosition{Pos: domain.Position{X: 3, Y: 4}, MapID: 2},
	}
	bones := CreateBones(dead)
	if bones == nil {
		t.Fatal("expected bones")
	}
	if !bones.Bones || bones.BlocksMovement {
		t.Error("bones must be a non-blocking bones entity")
	}
	if !bones.IsAt(2, domain.Position{X: 3, Y: 4}) {
		t.Errorf("bones at %v, want map 2 (3, 4)", bones.Pos)
	}
	if bones.Texture() != domain.TextureBones {
		t.Errorf("texture = %s", bones.Texture())
	}

	// Позиция копируется, а не разделяется
	dead.Pos.Pos.X = 9
	if bones.Pos.Pos.X != 3 {
		t.Error("bones share position with the dead entity")
	}

	if CreateBones(&domain.Entity{Name: "Nowhere"}) != nil {
		t.Error("entity without position leaves no bones")
	}
}
