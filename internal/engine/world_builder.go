package engine

import (
	"fmt"

	"github.com/alexeagleson/goblin-boys/internal/data"
	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/dungeon"
)

// buildWorld создает все карты из таблиц, их неподвижные сущности
// и сразу перестраивает слои блокировки.
func buildWorld(tables *data.Tables) (*WorldState, error) {
	w := NewWorldState()

	// 1. Сначала раздаем id всем картам, чтобы переходы могли ссылаться вперед
	ids := make(map[string]domain.MapID, len(tables.Maps))
	layouts := make([]*dungeon.Layout, 0, len(tables.Maps))
	for _, md := range tables.Maps {
		layout, err := dungeon.ParseLayout(md)
		if err != nil {
			return nil, fmt.Errorf("build world: %w", err)
		}
		ids[md.Name] = w.AllocateMapID()
		layouts = append(layouts, layout)
	}
	resolve := func(name string) (domain.MapID, bool) {
		id, ok := ids[name]
		return id, ok
	}

	// 2. Строим карты
	for _, layout := range layouts {
		id := ids[layout.Name]
		m, entities := dungeon.NewLevel(layout).
			WithDialogue(tables.Dialogue).
			WithWarps(resolve).
			Build(id)
		w.AddMap(m)
		for _, e := range entities {
			w.Spawn(e)
		}
		w.Invalidate(id)
	}

	// 3. Первая перестройка заполняет сетки
	w.RebuildInvalidated()
	return w, nil
}

// enemyMapID - первая карта, где водятся враги. Без такой карты - основная.
func enemyMapID(tables *data.Tables, w *WorldState) domain.MapID {
	for _, md := range tables.Maps {
		if !md.Enemies {
			continue
		}
		if m, ok := w.MapByName(md.Name); ok {
			return m.ID
		}
	}
	return domain.PrimaryMapID
}
