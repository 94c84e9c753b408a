package systems

import (
	"errors"
	"math/rand"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/utils"
)

// ErrNoPlacement - на карте нет свободной клетки для спавна
var ErrNoPlacement = errors.New("no unblocked tile available")

// RandomUnblockedTile выбирает свободную клетку. taken - клетки, уже занятые в этом тике
// (слой еще не перестроен).
func RandomUnblockedTile(m *domain.GameMap, rng *rand.Rand, taken map[domain.Position]bool) (domain.Position, error) {
	var free []domain.Position
	for _, p := range m.UnblockedPositions() {
		if !taken[p] {
			free = append(free, p)
		}
	}
	pos, ok := utils.RandomChoice(rng, free)
	if !ok {
		return domain.Position{}, ErrNoPlacement
	}
	return pos, nil
}
