package domain

import "testing"

func TestGameMap_ResetBlocksOnlyPerimeter(t *testing.T) {
	m := NewGameMap(1, "test", 10, 12)

	for _, layer := range []Layer{LayerMovement, LayerLight} {
		m.SetBlocked(layer, Position{X: 4, Y: 4})
		m.Reset(layer)

		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				p := Position{X: x, Y: y}
				onEdge := x == 0 || y == 0 || x == m.Width-1 || y == m.Height-1
				if m.Blocked(layer, p) != onEdge {
					t.Fatalf("%s layer: Blocked(%v) = %v, want %v", layer, p, m.Blocked(layer, p), onEdge)
				}
			}
		}
	}
}

func TestGameMap_LayersAreIndependent(t *testing.T) {
	m := NewGameMap(1, "test", 5, 5)
	p := Position{X: 2, Y: 2}

	m.SetBlocked(LayerLight, p)

	if !m.Blocked(LayerLight, p) {
		t.Error("light layer should be blocked")
	}
	if m.Blocked(LayerMovement, p) {
		t.Error("movement layer should stay clear")
	}
}

func TestGameMap_OutOfBoundsPanics(t *testing.T) {
	m := NewGameMap(3, "test", 5, 5)

	tests := []struct {
		name string
		pos  Position
	}{
		{"negative x", Position{X: -1, Y: 2}},
		{"negative y", Position{X: 2, Y: -1}},
		{"x equals width", Position{X: 5, Y: 2}},
		{"y equals height", Position{X: 2, Y: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for %v", tt.pos)
				}
			}()
			m.Blocked(LayerMovement, tt.pos)
		})
	}
}

func TestGameMap_PerimeterAndUnblocked(t *testing.T) {
	m := NewGameMap(1, "test", 4, 3)

	if got := len(m.PerimeterPositions()); got != 10 {
		t.Errorf("perimeter size = %d, want 10", got)
	}

	free := m.UnblockedPositions()
	if len(free) != 2 {
		t.Fatalf("unblocked = %v, want 2 cells", free)
	}
	if free[0] != (Position{X: 1, Y: 1}) || free[1] != (Position{X: 2, Y: 1}) {
		t.Errorf("unexpected unblocked cells %v", free)
	}
}
