package domain

import "fmt"

// Position - координаты клетки на карте. Значение, без идентичности.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MapPosition - единственное авторитетное местоположение сущности.
type MapPosition struct {
	Pos   Position `json:"pos"`
	MapID MapID    `json:"mapId"`
}

// ToIndex линеаризует позицию: y*width+x
func (p Position) ToIndex(width int) int {
	return p.Y*width + p.X
}

// PositionFromIndex обратное преобразование к ToIndex
func PositionFromIndex(idx, width int) Position {
	return Position{X: idx % width, Y: idx / width}
}

// Add сдвигает позицию на дельту
func (p Position) Add(d Delta) Position {
	return Position{X: p.X + d.Dx, Y: p.Y + d.Dy}
}

// ManhattanTo - расстояние городских кварталов (используется ИИ)
func (p Position) ManhattanTo(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// ChebyshevTo - "королевское" расстояние
func (p Position) ChebyshevTo(other Position) int {
	return max(abs(p.X-other.X), abs(p.Y-other.Y))
}

// DistanceSquaredTo возвращает квадрат расстояния (int) для сравнения без корней
func (p Position) DistanceSquaredTo(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// IsAdjacent возвращает true, если цель в соседней клетке (включая диагональ)
func (p Position) IsAdjacent(other Position) bool {
	d := p.ChebyshevTo(other)
	return d == 1
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Delta - смещение на соседнюю клетку, компоненты в {-1, 0, 1}
type Delta struct {
	Dx int `json:"dx"`
	Dy int `json:"dy"`
}

// Direction - 4 кардинальных + 4 диагональных направления
type Direction uint8

const (
	DirectionNone Direction = iota
	North
	East
	South
	West
	NorthEast
	SouthEast
	SouthWest
	NorthWest
)

var directionDeltas = map[Direction]Delta{
	North:     {Dx: 0, Dy: -1},
	East:      {Dx: 1, Dy: 0},
	South:     {Dx: 0, Dy: 1},
	West:      {Dx: -1, Dy: 0},
	NorthEast: {Dx: 1, Dy: -1},
	SouthEast: {Dx: 1, Dy: 1},
	SouthWest: {Dx: -1, Dy: 1},
	NorthWest: {Dx: -1, Dy: -1},
}

// CardinalDirections в порядке обхода N, E, S, W
var CardinalDirections = []Direction{North, East, South, West}

// AllDirections - кардинальные, затем диагональные
var AllDirections = []Direction{North, East, South, West, NorthEast, SouthEast, SouthWest, NorthWest}

// Delta возвращает смещение направления. Для DirectionNone - нулевое.
func (d Direction) Delta() Delta {
	return directionDeltas[d]
}

// Маппинг клавиш клиента -> направление
var directionStringToDir = map[string]Direction{
	"UP":    North,
	"RIGHT": East,
	"DOWN":  South,
	"LEFT":  West,
}

var directionDirToString = map[Direction]string{
	North:     "UP",
	East:      "RIGHT",
	South:     "DOWN",
	West:      "LEFT",
	NorthEast: "UP_RIGHT",
	SouthEast: "DOWN_RIGHT",
	SouthWest: "DOWN_LEFT",
	NorthWest: "UP_LEFT",
}

func (d Direction) String() string {
	if s, ok := directionDirToString[d]; ok {
		return s
	}
	return "NONE"
}
