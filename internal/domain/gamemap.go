package domain

import "fmt"

// Layer - слой блокировки SpatialGrid
type Layer uint8

const (
	LayerMovement Layer = iota
	LayerLight
	layerCount
)

func (l Layer) String() string {
	switch l {
	case LayerMovement:
		return "movement"
	case LayerLight:
		return "light"
	}
	return "unknown"
}

// GameMap - одна игровая карта и ее SpatialGrid.
// Индекс клетки: y*Width+x. Периметр заблокирован с момента создания.
type GameMap struct {
	ID     MapID         `json:"id"`
	Name   string        `json:"name"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Floor  SpriteTexture `json:"floor"`

	layers [layerCount][]bool
}

// NewGameMap создает карту с периметром, заблокированным в обоих слоях
func NewGameMap(id MapID, name string, width, height int) *GameMap {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid map dimensions %dx%d for map %d", width, height, id))
	}
	m := &GameMap{ID: id, Name: name, Width: width, Height: height}
	for l := Layer(0); l < layerCount; l++ {
		m.layers[l] = make([]bool, width*height)
		m.Reset(l)
	}
	return m
}

// InBounds проверяет, лежит ли позиция внутри карты
func (m *GameMap) InBounds(p Position) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// IsPerimeter - клетка на краю карты
func (m *GameMap) IsPerimeter(p Position) bool {
	return p.X == 0 || p.Y == 0 || p.X == m.Width-1 || p.Y == m.Height-1
}

// assertInBounds - выход за границы это ошибка программиста, а не рантайма
func (m *GameMap) assertInBounds(p Position) {
	if !m.InBounds(p) {
		panic(fmt.Sprintf("position %v outside map %d bounds (width %d, height %d)", p, m.ID, m.Width, m.Height))
	}
}

// Index линеаризует позицию с проверкой границ
func (m *GameMap) Index(p Position) int {
	m.assertInBounds(p)
	return p.ToIndex(m.Width)
}

// Blocked - заблокирована ли клетка в слое
func (m *GameMap) Blocked(layer Layer, p Position) bool {
	return m.layers[layer][m.Index(p)]
}

// SetBlocked помечает клетку. Вызывается только при перестройке карты.
func (m *GameMap) SetBlocked(layer Layer, p Position) {
	m.layers[layer][m.Index(p)] = true
}

// Reset возвращает слой к статическому шаблону "заблокирован только периметр"
func (m *GameMap) Reset(layer Layer) {
	cells := m.layers[layer]
	for idx := range cells {
		cells[idx] = m.IsPerimeter(PositionFromIndex(idx, m.Width))
	}
}

// Layer отдает слой только для чтения (движкам видимости и пути)
func (m *GameMap) Layer(layer Layer) []bool {
	return m.layers[layer]
}

// Snapshot копирует слой (тесты идемпотентности, debug)
func (m *GameMap) Snapshot(layer Layer) []bool {
	out := make([]bool, len(m.layers[layer]))
	copy(out, m.layers[layer])
	return out
}

// PerimeterPositions - все клетки периметра
func (m *GameMap) PerimeterPositions() []Position {
	var out []Position
	for idx := 0; idx < m.Width*m.Height; idx++ {
		p := PositionFromIndex(idx, m.Width)
		if m.IsPerimeter(p) {
			out = append(out, p)
		}
	}
	return out
}

// UnblockedPositions - клетки, свободные для движения, по возрастанию индекса
func (m *GameMap) UnblockedPositions() []Position {
	var out []Position
	for idx, blocked := range m.layers[LayerMovement] {
		if !blocked {
			out = append(out, PositionFromIndex(idx, m.Width))
		}
	}
	return out
}
