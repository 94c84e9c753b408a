package dungeon

import (
	"fmt"

	"github.com/alexeagleson/goblin-boys/internal/data"
	"github.com/alexeagleson/goblin-boys/internal/domain"
)

// SeedCell - непустая клетка раскладки
type SeedCell struct {
	Pos   domain.Position
	Entry data.LegendEntry
}

// Layout - разобранная текстовая карта
type Layout struct {
	Name    string
	Width   int
	Height  int
	Floor   domain.SpriteTexture
	Enemies bool
	Cells   []SeedCell // построчно, слева направо
}

// ParseLayout превращает сетку символов в клетки с легендой.
// Пустые клетки (голый пол) в Cells не попадают.
func ParseLayout(m data.MapData) (*Layout, error) {
	rows := m.Rows()
	if len(rows) == 0 {
		return nil, fmt.Errorf("map %q: empty layout", m.Name)
	}

	layout := &Layout{
		Name:    m.Name,
		Width:   len([]rune(rows[0])),
		Height:  len(rows),
		Floor:   m.Floor,
		Enemies: m.Enemies,
	}

	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != layout.Width {
			return nil, fmt.Errorf("map %q: row %d has %d cells, want %d", m.Name, y, len(runes), layout.Width)
		}
		for x, r := range runes {
			entry, ok := m.Legend[string(r)]
			if !ok {
				return nil, fmt.Errorf("map %q: unrecognized character %q at (%d, %d)", m.Name, r, x, y)
			}
			if entry.IsEmpty() {
				continue
			}
			layout.Cells = append(layout.Cells, SeedCell{Pos: domain.Position{X: x, Y: y}, Entry: entry})
		}
	}

	return layout, nil
}
