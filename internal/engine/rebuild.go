package engine

import "github.com/alexeagleson/goblin-boys/internal/domain"

// rebuildMaps перестраивает инвалидированные карты и досчитывает зрение
// тех, кто сдвинулся на карте без перестройки (например, призрак, не блокирующий клетку).
func (s *GameService) rebuildMaps() {
	rebuilt := make(map[domain.MapID]bool)
	for _, id := range s.World.RebuildInvalidated() {
		rebuilt[id] = true
	}
	for _, id := range s.sighted {
		e := s.World.Entities.Get(id)
		if e == nil || e.Pos == nil || rebuilt[e.Pos.MapID] {
			continue
		}
		s.World.RefreshEyes(e)
	}
}
