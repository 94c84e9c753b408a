package domain

// InvalidationSet - события "занятость карты изменилась" за тик.
// Drain отдает уникальные id в порядке первого появления.
type InvalidationSet struct {
	order  []MapID
	counts map[MapID]int
}

func NewInvalidationSet() *InvalidationSet {
	return &InvalidationSet{counts: make(map[MapID]int)}
}

// Emit регистрирует событие
func (s *InvalidationSet) Emit(id MapID) {
	if s.counts[id] == 0 {
		s.order = append(s.order, id)
	}
	s.counts[id]++
}

// Count - сколько раз за тик было отправлено событие для карты (до дедупликации)
func (s *InvalidationSet) Count(id MapID) int {
	return s.counts[id]
}

// Contains проверяет, была ли карта инвалидирована
func (s *InvalidationSet) Contains(id MapID) bool {
	return s.counts[id] > 0
}

// Drain возвращает уникальные id и очищает набор
func (s *InvalidationSet) Drain() []MapID {
	out := s.order
	s.order = nil
	clear(s.counts)
	return out
}

// Len - количество уникальных карт
func (s *InvalidationSet) Len() int {
	return len(s.order)
}
