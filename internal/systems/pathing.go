package systems

import (
	"container/heap"
	"fmt"

	"github.com/alexeagleson/goblin-boys/internal/domain"
)

// PathOptions - настройки поиска пути
type PathOptions struct {
	// Diagonals - 8 направлений вместо 4
	Diagonals bool
	// AllowBlockedGoal - цель может быть занята (погоня за сущностью, которая сама блокирует клетку)
	AllowBlockedGoal bool
}

// FindPath - A* по слою блокировки движения с единичной стоимостью шага.
// Возвращает индексы шагов без стартовой клетки, последняя - цель.
// Пустой результат: пути нет или from == to. Путь никогда не кэшируется.
func FindPath(from, to domain.Position, blocked []bool, width int, opts PathOptions) []int {
	if width <= 0 || len(blocked)%width != 0 {
		panic(fmt.Sprintf("invalid movement layer: %d cells for width %d", len(blocked), width))
	}
	height := len(blocked) / width
	assertOnLayer(from, width, height)
	assertOnLayer(to, width, height)

	if from == to {
		return nil
	}

	start := from.ToIndex(width)
	goal := to.ToIndex(width)
	if blocked[goal] && !opts.AllowBlockedGoal {
		return nil
	}

	dirs := domain.CardinalDirections
	heuristic := func(p domain.Position) int { return p.ManhattanTo(to) }
	if opts.Diagonals {
		dirs = domain.AllDirections
		heuristic = func(p domain.Position) int { return p.ChebyshevTo(to) }
	}

	cameFrom := make(map[int]int)
	gScore := map[int]int{start: 0}
	open := make(map[int]*pathItem)
	closed := make(map[int]bool)

	pq := make(pathQueue, 0)
	heap.Init(&pq)
	seq := 0

	startItem := &pathItem{Cell: start, Priority: heuristic(from), H: heuristic(from), Seq: seq}
	heap.Push(&pq, startItem)
	open[start] = startItem

	for pq.Len() > 0 {
		current := heap.Pop(&pq).(*pathItem)
		delete(open, current.Cell)

		if current.Cell == goal {
			return reconstructPath(cameFrom, start, goal)
		}
		closed[current.Cell] = true

		pos := domain.PositionFromIndex(current.Cell, width)
		for _, dir := range dirs {
			next := pos.Add(dir.Delta())
			if next.X < 0 || next.Y < 0 || next.X >= width || next.Y >= height {
				continue
			}
			idx := next.ToIndex(width)
			if closed[idx] {
				continue
			}
			if blocked[idx] && idx != goal {
				continue
			}

			tentative := gScore[current.Cell] + 1
			if g, seen := gScore[idx]; seen && tentative >= g {
				continue
			}
			cameFrom[idx] = current.Cell
			gScore[idx] = tentative
			h := heuristic(next)

			if item, ok := open[idx]; ok {
				pq.update(item, tentative+h, h)
				continue
			}
			seq++
			item := &pathItem{Cell: idx, Priority: tentative + h, H: h, Seq: seq}
			heap.Push(&pq, item)
			open[idx] = item
		}
	}

	return nil
}

// FindPathOnMap - FindPath по слою движения карты
func FindPathOnMap(m *domain.GameMap, from, to domain.Position, opts PathOptions) []int {
	return FindPath(from, to, m.Layer(domain.LayerMovement), m.Width, opts)
}

// FirstStep - первая клетка пути или false, если пути нет
func FirstStep(m *domain.GameMap, from, to domain.Position, opts PathOptions) (domain.Position, bool) {
	path := FindPathOnMap(m, from, to, opts)
	if len(path) == 0 {
		return domain.Position{}, false
	}
	return domain.PositionFromIndex(path[0], m.Width), true
}

func reconstructPath(cameFrom map[int]int, start, goal int) []int {
	var path []int
	for cell := goal; cell != start; cell = cameFrom[cell] {
		path = append(path, cell)
	}
	// Разворачиваем: от первого шага к цели
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func assertOnLayer(p domain.Position, width, height int) {
	if p.X < 0 || p.Y < 0 || p.X >= width || p.Y >= height {
		panic(fmt.Sprintf("path endpoint %v outside layer %dx%d", p, width, height))
	}
}
