package systems

import (
	"testing"

	"github.com/alexeagleson/goblin-boys/internal/domain"
)

func TestFindPath(t *testing.T) {
	tests := []struct {
		name      string
		walls     []domain.Position
		from, to  domain.Position
		opts      PathOptions
		wantLen   int
		wantEmpty bool
	}{
		{
			name:    "straight corridor four directions",
			from:    domain.Position{X: 1, Y: 1},
			to:      domain.Position{X: 5, Y: 1},
			wantLen: 4,
		},
		{
			name:    "diagonal uses eight directions",
			from:    domain.Position{X: 1, Y: 1},
			to:      domain.Position{X: 4, Y: 4},
			opts:    PathOptions{Diagonals: true},
			wantLen: 3,
		},
		{
			name:    "manhattan length without diagonals",
			from:    domain.Position{X: 1, Y: 1},
			to:      domain.Position{X: 4, Y: 4},
			wantLen: 6,
		},
		{
			name:      "same cell",
			from:      domain.Position{X: 2, Y: 2},
			to:        domain.Position{X: 2, Y: 2},
			wantEmpty: true,
		},
		{
			name: "goal fully enclosed",
			walls: []domain.Position{
				{X: 5, Y: 4}, {X: 4, Y: 5}, {X: 6, Y: 5}, {X: 5, Y: 6},
				{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 4, Y: 6}, {X: 6, Y: 6},
			},
			from:      domain.Position{X: 1, Y: 1},
			to:        domain.Position{X: 5, Y: 5},
			opts:      PathOptions{Diagonals: true},
			wantEmpty: true,
		},
		{
			name:      "blocked goal is refused",
			walls:     []domain.Position{{X: 3, Y: 1}},
			from:      domain.Position{X: 1, Y: 1},
			to:        domain.Position{X: 3, Y: 1},
			wantEmpty: true,
		},
		{
			name:    "blocked goal allowed for chase",
			walls:   []domain.Position{{X: 3, Y: 1}},
			from:    domain.Position{X: 1, Y: 1},
			to:      domain.Position{X: 3, Y: 1},
			opts:    PathOptions{AllowBlockedGoal: true},
			wantLen: 2,
		},
		{
			name: "detour around a wall",
			walls: []domain.Position{
				{X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 3},
			},
			from:    domain.Position{X: 1, Y: 1},
			to:      domain.Position{X: 5, Y: 1},
			wantLen: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := createTestMap(8, 8, tt.walls...)
			path := FindPathOnMap(m, tt.from, tt.to, tt.opts)

			if tt.wantEmpty {
				if len(path) != 0 {
					t.Fatalf("expected empty path, got %v", path)
				}
				return
			}
			if len(path) != tt.wantLen {
				t.Fatalf("path length = %d, want %d (%v)", len(path), tt.wantLen, path)
			}
			if path[len(path)-1] != tt.to.ToIndex(m.Width) {
				t.Error("path does not end at the goal")
			}

			// Каждый шаг соседний и не проходит через стены
			prev := tt.from
			for i, idx := range path {
				p := domain.PositionFromIndex(idx, m.Width)
				if !prev.IsAdjacent(p) {
					t.Fatalf("step %d %v not adjacent to %v", i, p, prev)
				}
				if !tt.opts.Diagonals && prev.ManhattanTo(p) != 1 {
					t.Fatalf("diagonal step %v -> %v in four-direction mode", prev, p)
				}
				if i < len(path)-1 && m.Blocked(domain.LayerMovement, p) {
					t.Fatalf("step %d %v crosses a blocked cell", i, p)
				}
				prev = p
			}
		})
	}
}

func TestFirstStep(t *testing.T) {
	m := createTestMap(8, 8)

	step, ok := FirstStep(m, domain.Position{X: 1, Y: 1}, domain.Position{X: 1, Y: 4}, PathOptions{})
	if !ok {
		t.Fatal("expected a step")
	}
	if step != (domain.Position{X: 1, Y: 2}) {
		t.Errorf("first step = %v, want (1, 2)", step)
	}

	if _, ok := FirstStep(m, domain.Position{X: 1, Y: 1}, domain.Position{X: 1, Y: 1}, PathOptions{}); ok {
		t.Error("no step expected when already at the goal")
	}
}
