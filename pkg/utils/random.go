package utils

import "math/rand"

// RandomChoice выбирает случайный элемент. false для пустого среза.
func RandomChoice[T any](rng *rand.Rand, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[rng.Intn(len(items))], true
}

// RollDie бросает кость с sides гранями: 1..sides
func RollDie(rng *rand.Rand, sides int) int {
	if sides <= 1 {
		return 1
	}
	return rng.Intn(sides) + 1
}
