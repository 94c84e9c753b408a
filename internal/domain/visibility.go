package domain

// VisibilityGrid - снимок видимых клеток для одной зрячей сущности.
// Пересобирается целиком, никогда не разделяется между сущностями.
type VisibilityGrid struct {
	Width  int
	Height int
	Cells  []bool
}

func NewVisibilityGrid(width, height int) *VisibilityGrid {
	return &VisibilityGrid{Width: width, Height: height, Cells: make([]bool, width*height)}
}

// Visible - видна ли позиция. Вне сетки - не видна.
func (g *VisibilityGrid) Visible(p Position) bool {
	if g == nil || p.X < 0 || p.Y < 0 || p.X >= g.Width || p.Y >= g.Height {
		return false
	}
	return g.Cells[p.ToIndex(g.Width)]
}

// Mark помечает клетку видимой
func (g *VisibilityGrid) Mark(p Position) {
	g.Cells[p.ToIndex(g.Width)] = true
}

// Count - число видимых клеток
func (g *VisibilityGrid) Count() int {
	n := 0
	for _, v := range g.Cells {
		if v {
			n++
		}
	}
	return n
}

// Positions - все видимые клетки по возрастанию индекса
func (g *VisibilityGrid) Positions() []Position {
	var out []Position
	for idx, v := range g.Cells {
		if v {
			out = append(out, PositionFromIndex(idx, g.Width))
		}
	}
	return out
}

// Equal - побитовое сравнение снимков
func (g *VisibilityGrid) Equal(other *VisibilityGrid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.Width != other.Width || g.Height != other.Height || len(g.Cells) != len(other.Cells) {
		return false
	}
	for i := range g.Cells {
		if g.Cells[i] != other.Cells[i] {
			return false
		}
	}
	return true
}
