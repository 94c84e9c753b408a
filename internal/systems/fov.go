package systems

import (
	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Мультипликаторы для трансформации координат в 8 октантов
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// lightLayer - слой, по которому считается тень
type lightLayer struct {
	cells         []bool
	width, height int
}

func (l lightLayer) blocking(x, y int) bool {
	// Выход за границы считается блокирующим
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return true
	}
	return l.cells[y*l.width+x]
}

// ComputeVisibility считает поле зрения сущности на карте.
// Позиция вне карты - ошибка программиста (паника в GameMap.Index).
func ComputeVisibility(m *domain.GameMap, origin domain.Position, radius int) *domain.VisibilityGrid {
	m.Index(origin)
	return ShadowCast(origin, m.Layer(domain.LayerLight), m.Width, m.Height, radius)
}

// ShadowCast - рекурсивный shadowcasting по октантам.
// Клетка дальше radius (евклидово) не бывает видимой. Результат детерминирован.
func ShadowCast(origin domain.Position, light []bool, width, height, radius int) *domain.VisibilityGrid {
	grid := domain.NewVisibilityGrid(width, height)
	if radius <= 0 {
		logger.Log.WithFields(logrus.Fields{
			"component":    "fov_system",
			"observer_pos": origin,
		}).Debug("FOV calculation skipped for blind observer (radius <= 0).")
		return grid
	}

	layer := lightLayer{cells: light, width: width, height: height}

	// Центр всегда виден
	grid.Mark(origin)

	for i := 0; i < 8; i++ {
		castLight(layer, grid, origin.X, origin.Y, 1, 1.0, 0.0, radius,
			multipliers[0][i], multipliers[1][i],
			multipliers[2][i], multipliers[3][i])
	}

	return grid
}

func castLight(layer lightLayer, grid *domain.VisibilityGrid, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int) {
	if start < end {
		return
	}

	radiusSq := radius * radius

	for j := row; j <= radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for {
			dx++
			if dx > 0 {
				break
			}

			// Наклоны краев клетки
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			// Трансформация в координаты карты
			X := cx + dx*xx + dy*xy
			Y := cy + dx*yx + dy*yy

			if X >= 0 && Y >= 0 && X < layer.width && Y < layer.height {
				if dx*dx+dy*dy <= radiusSq {
					grid.Mark(domain.Position{X: X, Y: Y})
				}
			}

			if blocked {
				// Идем вдоль стены
				if layer.blocking(X, Y) {
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if layer.blocking(X, Y) && j < radius {
				blocked = true
				castLight(layer, grid, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
