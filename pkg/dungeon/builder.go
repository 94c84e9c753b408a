package dungeon

import (
	"github.com/alexeagleson/goblin-boys/internal/domain"
)

// WarpResolver переводит имя карты в ее MapID
type WarpResolver func(name string) (domain.MapID, bool)

// LevelBuilder предоставляет fluent API для создания карты из раскладки
type LevelBuilder struct {
	layout   *Layout
	dialogue map[string][]string
	warps    WarpResolver
}

// NewLevel создает новый builder для раскладки
func NewLevel(layout *Layout) *LevelBuilder {
	return &LevelBuilder{layout: layout}
}

// WithDialogue подключает таблицу диалогов для говорящих NPC
func (b *LevelBuilder) WithDialogue(dialogue map[string][]string) *LevelBuilder {
	b.dialogue = dialogue
	return b
}

// WithWarps подключает разрешение переходов между картами
func (b *LevelBuilder) WithWarps(resolve WarpResolver) *LevelBuilder {
	b.warps = resolve
	return b
}

// Build создает пустую сетку и неподвижные сущности карты.
// Слои сетки заполняются позже, при первой перестройке карты.
func (b *LevelBuilder) Build(id domain.MapID) (*domain.GameMap, []*domain.Entity) {
	l := b.layout
	m := domain.NewGameMap(id, l.Name, l.Width, l.Height)
	m.Floor = l.Floor

	entities := make([]*domain.Entity, 0, len(l.Cells))
	for _, cell := range l.Cells {
		e := CreateScenery(cell.Entry, domain.MapPosition{Pos: cell.Pos, MapID: id})

		if key := cell.Entry.Dialogue; key != "" {
			if lines, ok := b.dialogue[key]; ok {
				e.Dialogue = &domain.DialogueComponent{Lines: lines}
			}
		}
		if target := cell.Entry.WarpTo; target != "" && b.warps != nil {
			if mapID, ok := b.warps(target); ok {
				e.WarpTo = mapID
			}
		}
		entities = append(entities, e)
	}

	return m, entities
}
