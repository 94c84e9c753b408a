package systems

import (
	"os"
	"testing"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

// createTestMap - карта с периметром и стенами в обоих слоях
func createTestMap(width, height int, walls ...domain.Position) *domain.GameMap {
	m := domain.NewGameMap(1, "test", width, height)
	for _, w := range walls {
		m.SetBlocked(domain.LayerMovement, w)
		m.SetBlocked(domain.LayerLight, w)
	}
	return m
}
