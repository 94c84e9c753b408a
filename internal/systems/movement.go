package systems

import (
	"github.com/alexeagleson/goblin-boys/internal/domain"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	Target    domain.Position
	HasMoved  bool           // Клетка свободна, можно вешать IntendMove
	BlockedBy *domain.Entity // Если врезались в кого-то (речь или атака)
	IsWall    bool           // Если врезались в стену или край карты
}

// CalculateMove вычисляет клетку назначения. Не меняет состояние мира!
// occupants - сущности в целевой клетке (нужны, только если клетка занята).
func CalculateMove(e *domain.Entity, d domain.Delta, m *domain.GameMap, occupants []*domain.Entity) MovementResult {
	target := e.Pos.Pos.Add(d)
	res := MovementResult{Target: target}

	// 1. Проверка границ
	if !m.InBounds(target) {
		res.IsWall = true
		return res
	}

	// 2. Проверка слоя движения
	if !m.Blocked(domain.LayerMovement, target) {
		res.HasMoved = true
		return res
	}

	// 3. Кто стоит в клетке: собеседник важнее противника
	for _, other := range occupants {
		if other.ID == e.ID {
			continue
		}
		if other.Dialogue != nil {
			res.BlockedBy = other
			return res
		}
	}
	for _, other := range occupants {
		if other.ID == e.ID {
			continue
		}
		// Атаковать можно только того, у кого есть тело (боевые статы и здоровье)
		if other.Combat != nil && other.Hp != nil {
			res.BlockedBy = other
			return res
		}
	}

	res.IsWall = true
	return res
}
