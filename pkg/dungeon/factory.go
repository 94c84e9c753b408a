package dungeon

import (
	"github.com/alexeagleson/goblin-boys/internal/data"
	"github.com/alexeagleson/goblin-boys/internal/domain"
)

// CreateScenery создает неподвижную сущность из клетки легенды (стена, NPC, объект)
func CreateScenery(entry data.LegendEntry, pos domain.MapPosition) *domain.Entity {
	name := entry.Name
	if name == "" {
		name = string(entry.Texture)
	}
	p := pos
	return &domain.Entity{
		Name:           name,
		Pos:            &p,
		Render:         &domain.RenderComponent{Texture: entry.Texture},
		BlocksMovement: entry.BlocksMovement,
		BlocksLight:    entry.BlocksLight,
	}
}

// CreatePlayer создает сущность игрока из облика
func CreatePlayer(user domain.UserID, name string, cfg data.PlayerConfig, pos domain.MapPosition) *domain.Entity {
	p := pos
	hp := cfg.Hp
	combat := cfg.CombatStats
	return &domain.Entity{
		Name:     name,
		Pos:      &p,
		Render:   &domain.RenderComponent{Texture: cfg.Texture},
		Hp:       &hp,
		Combat:   &combat,
		Cooldown: &domain.Cooldown{MoveTime: cfg.MoveTime, AttackTime: cfg.AttackTime},
		Eyes:     &domain.EyesComponent{Radius: cfg.Visibility},
		User:     &domain.UserComponent{ID: user},

		BlocksMovement: cfg.BlocksMovement,
		BlocksLight:    cfg.BlocksLight,
	}
}

// CreateEnemy создает моба из шаблона
func CreateEnemy(kind domain.EnemyKind, cfg data.EnemyConfig, pos domain.MapPosition) *domain.Entity {
	p := pos
	hp := cfg.Hp
	combat := cfg.CombatStats
	e := &domain.Entity{
		Name:     cfg.Name,
		Pos:      &p,
		Render:   &domain.RenderComponent{Texture: cfg.Texture},
		Hp:       &hp,
		Combat:   &combat,
		Cooldown: &domain.Cooldown{MoveTime: cfg.MoveTime, AttackTime: cfg.AttackTime},
		Eyes:     &domain.EyesComponent{Radius: cfg.Visibility},
		Enemy:    &domain.EnemyComponent{Kind: kind},
		// Без поиска пути моб стоит на месте и только бьет соседей
		AI: &domain.AIComponent{Paths: cfg.Paths},

		BlocksMovement: cfg.BlocksMovement,
	}
	return e
}
