package domain

// Registry - арена сущностей со свободным списком и поколениями.
// Устаревший EntityID никогда не резолвится в новую сущность того же слота.
type Registry struct {
	slots []registrySlot
	free  []uint32
	count int
}

type registrySlot struct {
	generation uint32
	entity     *Entity
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Spawn кладет сущность в арену и проставляет ей ID
func (r *Registry) Spawn(e *Entity) EntityID {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, registrySlot{})
	}
	slot := &r.slots[idx]
	slot.generation++
	slot.entity = e
	e.ID = PackEntityID(slot.generation, idx)
	r.count++
	return e.ID
}

// Get возвращает сущность или nil для удаленной/устаревшей ссылки
func (r *Registry) Get(id EntityID) *Entity {
	idx := id.Index()
	if int(idx) >= len(r.slots) {
		return nil
	}
	slot := r.slots[idx]
	if slot.entity == nil || slot.generation != id.Generation() {
		return nil
	}
	return slot.entity
}

// Despawn удаляет сущность. false, если ее уже нет.
func (r *Registry) Despawn(id EntityID) bool {
	if r.Get(id) == nil {
		return false
	}
	idx := id.Index()
	r.slots[idx].entity = nil
	r.free = append(r.free, idx)
	r.count--
	return true
}

// Each обходит живые сущности по возрастанию индекса слота.
// Сущности, занявшие новые слоты во время обхода, не посещаются.
func (r *Registry) Each(fn func(e *Entity)) {
	n := len(r.slots)
	for i := 0; i < n; i++ {
		if e := r.slots[i].entity; e != nil {
			fn(e)
		}
	}
}

// OnMap - все сущности карты, порядок детерминирован
func (r *Registry) OnMap(mapID MapID) []*Entity {
	var out []*Entity
	r.Each(func(e *Entity) {
		if e.IsOn(mapID) {
			out = append(out, e)
		}
	})
	return out
}

// At - сущности в клетке карты
func (r *Registry) At(mapID MapID, pos Position) []*Entity {
	var out []*Entity
	r.Each(func(e *Entity) {
		if e.IsAt(mapID, pos) {
			out = append(out, e)
		}
	})
	return out
}

// Len - количество живых сущностей
func (r *Registry) Len() int {
	return r.count
}
