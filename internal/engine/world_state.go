package engine

import (
	"fmt"
	"sort"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/internal/systems"
)

// WorldState - все карты, сущности и учет "пользователь -> карта".
// Единственный писатель - игровой цикл.
type WorldState struct {
	maps      map[domain.MapID]*domain.GameMap
	mapOrder  []domain.MapID
	nextMapID domain.MapID

	Entities *domain.Registry

	// users: пользователь -> его сущность
	users map[domain.UserID]domain.EntityID
	// userMaps - CurrentUserMaps: где сейчас находится каждый пользователь
	userMaps map[domain.UserID]domain.MapPosition

	invalid *domain.InvalidationSet
}

func NewWorldState() *WorldState {
	return &WorldState{
		maps:      make(map[domain.MapID]*domain.GameMap),
		nextMapID: domain.PrimaryMapID,
		Entities:  domain.NewRegistry(),
		users:     make(map[domain.UserID]domain.EntityID),
		userMaps:  make(map[domain.UserID]domain.MapPosition),
		invalid:   domain.NewInvalidationSet(),
	}
}

// --- Карты ---

// AllocateMapID выдает следующий id карты. Первый - PrimaryMapID.
func (w *WorldState) AllocateMapID() domain.MapID {
	id := w.nextMapID
	w.nextMapID++
	return id
}

// AddMap регистрирует карту. Повторный id - ошибка программиста.
func (w *WorldState) AddMap(m *domain.GameMap) {
	if _, exists := w.maps[m.ID]; exists {
		panic(fmt.Sprintf("map %d registered twice", m.ID))
	}
	w.maps[m.ID] = m
	w.mapOrder = append(w.mapOrder, m.ID)
}

// Map возвращает карту. Несуществующая карта - нарушение инварианта.
func (w *WorldState) Map(id domain.MapID) *domain.GameMap {
	m, ok := w.maps[id]
	if !ok {
		panic(fmt.Sprintf("map %d does not exist", id))
	}
	return m
}

// HasMap проверяет наличие карты без паники
func (w *WorldState) HasMap(id domain.MapID) bool {
	_, ok := w.maps[id]
	return ok
}

// MapByName ищет карту по имени из таблиц
func (w *WorldState) MapByName(name string) (*domain.GameMap, bool) {
	for _, id := range w.mapOrder {
		if m := w.maps[id]; m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Maps - карты в порядке создания
func (w *WorldState) Maps() []*domain.GameMap {
	out := make([]*domain.GameMap, 0, len(w.mapOrder))
	for _, id := range w.mapOrder {
		out = append(out, w.maps[id])
	}
	return out
}

// --- Сущности ---

// Spawn кладет сущность в мир. Инвалидацию карты выполняет вызывающая стадия.
func (w *WorldState) Spawn(e *domain.Entity) domain.EntityID {
	if e.Pos != nil && !w.HasMap(e.Pos.MapID) {
		panic(fmt.Sprintf("spawn %q on missing map %d", e.Name, e.Pos.MapID))
	}
	id := w.Entities.Spawn(e)
	if e.User != nil {
		w.users[e.User.ID] = id
		if e.Pos != nil {
			w.userMaps[e.User.ID] = *e.Pos
		}
	}
	return id
}

// Despawn удаляет сущность немедленно. Пользователь пропадает из CurrentUserMaps.
func (w *WorldState) Despawn(id domain.EntityID) *domain.Entity {
	e := w.Entities.Get(id)
	if e == nil {
		return nil
	}
	w.Entities.Despawn(id)
	if e.User != nil && w.users[e.User.ID] == id {
		delete(w.users, e.User.ID)
		delete(w.userMaps, e.User.ID)
	}
	return e
}

// SetPosition - единственная точка записи MapPosition после спавна
func (w *WorldState) SetPosition(e *domain.Entity, pos domain.MapPosition) {
	if !w.Map(pos.MapID).InBounds(pos.Pos) {
		panic(fmt.Sprintf("entity %s moved out of bounds to %v on map %d", e.ID, pos.Pos, pos.MapID))
	}
	if e.Pos == nil {
		e.Pos = &domain.MapPosition{}
	}
	*e.Pos = pos
	if e.User != nil {
		w.userMaps[e.User.ID] = pos
	}
}

// UserEntity - сущность пользователя или nil
func (w *WorldState) UserEntity(user domain.UserID) *domain.Entity {
	id, ok := w.users[user]
	if !ok {
		return nil
	}
	return w.Entities.Get(id)
}

// UserMap - текущая позиция пользователя из CurrentUserMaps
func (w *WorldState) UserMap(user domain.UserID) (domain.MapPosition, bool) {
	pos, ok := w.userMaps[user]
	return pos, ok
}

// Users - все пользователи в мире, по возрастанию id
func (w *WorldState) Users() []domain.UserID {
	out := make([]domain.UserID, 0, len(w.userMaps))
	for u := range w.userMaps {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// UsersOn - пользователи на карте, по возрастанию id
func (w *WorldState) UsersOn(mapID domain.MapID) []domain.UserID {
	var out []domain.UserID
	for u, pos := range w.userMaps {
		if pos.MapID == mapID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// OccupantsAt - сущности в клетке
func (w *WorldState) OccupantsAt(mapID domain.MapID, pos domain.Position) []*domain.Entity {
	return w.Entities.At(mapID, pos)
}

// --- Инвалидация ---

// Invalidate отправляет событие "занятость карты изменилась"
func (w *WorldState) Invalidate(mapID domain.MapID) {
	w.Map(mapID)
	w.invalid.Emit(mapID)
}

// Invalidations - события текущего тика (до перестройки)
func (w *WorldState) Invalidations() *domain.InvalidationSet {
	return w.invalid
}

// RebuildInvalidated перестраивает каждую инвалидированную карту ровно один раз
func (w *WorldState) RebuildInvalidated() []domain.MapID {
	ids := w.invalid.Drain()
	for _, id := range ids {
		w.RebuildMap(id)
	}
	return ids
}

// RebuildMap: полный сброс обоих слоев, пересканирование сущностей карты
// и пересчет зрения всех, кто на ней стоит.
func (w *WorldState) RebuildMap(id domain.MapID) {
	m := w.Map(id)
	m.Reset(domain.LayerMovement)
	m.Reset(domain.LayerLight)

	entities := w.Entities.OnMap(id)
	for _, e := range entities {
		if e.BlocksMovement {
			m.SetBlocked(domain.LayerMovement, e.Pos.Pos)
		}
		if e.BlocksLight {
			m.SetBlocked(domain.LayerLight, e.Pos.Pos)
		}
	}
	for _, e := range entities {
		w.RefreshEyes(e)
	}
}

// RefreshEyes пересчитывает снимок видимости сущности целиком
func (w *WorldState) RefreshEyes(e *domain.Entity) {
	if e.Eyes == nil || e.Pos == nil {
		return
	}
	e.Eyes.Visible = systems.ComputeVisibility(w.Map(e.Pos.MapID), e.Pos.Pos, e.Eyes.Radius)
}
