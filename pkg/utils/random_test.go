package utils

import (
	"math/rand"
	"testing"
)

func TestRandomChoice(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, ok := RandomChoice[int](rng, nil); ok {
		t.Error("empty slice should report false")
	}

	items := []string{"a", "b", "c"}
	for i := 0; i < 50; i++ {
		got, ok := RandomChoice(rng, items)
		if !ok {
			t.Fatal("non-empty slice reported false")
		}
		if got != "a" && got != "b" && got != "c" {
			t.Fatalf("unexpected choice %q", got)
		}
	}
}

func TestRollDie(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		if v := RollDie(rng, 20); v < 1 || v > 20 {
			t.Fatalf("d20 rolled %d", v)
		}
	}
	if RollDie(rng, 0) != 1 {
		t.Error("degenerate die should roll 1")
	}
}
