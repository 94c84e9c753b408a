package domain

import "testing"

func TestPosition_IndexRoundTrip(t *testing.T) {
	for _, dims := range []struct{ w, h int }{{1, 1}, {7, 7}, {47, 15}, {27, 10}} {
		for y := 0; y < dims.h; y++ {
			for x := 0; x < dims.w; x++ {
				p := Position{X: x, Y: y}
				got := PositionFromIndex(p.ToIndex(dims.w), dims.w)
				if got != p {
					t.Fatalf("round trip %v on width %d = %v", p, dims.w, got)
				}
			}
		}
	}
}

func TestDirection_Delta(t *testing.T) {
	tests := []struct {
		dir      Direction
		expected Delta
	}{
		{North, Delta{0, -1}},
		{East, Delta{1, 0}},
		{South, Delta{0, 1}},
		{West, Delta{-1, 0}},
		{NorthEast, Delta{1, -1}},
		{SouthEast, Delta{1, 1}},
		{SouthWest, Delta{-1, 1}},
		{NorthWest, Delta{-1, -1}},
		{DirectionNone, Delta{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			if got := tt.dir.Delta(); got != tt.expected {
				t.Errorf("%v.Delta() = %v, want %v", tt.dir, got, tt.expected)
			}
		})
	}
}

func TestPosition_Distances(t *testing.T) {
	a := Position{X: 2, Y: 3}
	b := Position{X: 5, Y: 1}

	if got := a.ManhattanTo(b); got != 5 {
		t.Errorf("ManhattanTo = %d, want 5", got)
	}
	if got := a.ChebyshevTo(b); got != 3 {
		t.Errorf("ChebyshevTo = %d, want 3", got)
	}
	if !a.IsAdjacent(Position{X: 3, Y: 4}) {
		t.Error("diagonal neighbour should be adjacent")
	}
	if a.IsAdjacent(a) {
		t.Error("position should not be adjacent to itself")
	}
	if got := a.Add(North.Delta()); got != (Position{X: 2, Y: 2}) {
		t.Errorf("Add(North) = %v", got)
	}
}
