package utils

import "math/rand"

// WeightedItem pairs a selectable value with its weight.
type WeightedItem[T any] struct {
	Value  T
	Weight float64
}

// WeightedChoice draws one item by cumulative weight against
// uniform(0, totalWeight). Items with non-positive weight are skipped.
// The random source is injected so callers can make draws deterministic.
// Returns false when nothing is selectable.
func WeightedChoice[T any](items []WeightedItem[T], rng *rand.Rand) (T, bool) {
	var zero T

	total := 0.0
	for _, item := range items {
		if item.Weight > 0 {
			total += item.Weight
		}
	}
	if total <= 0 {
		return zero, false
	}

	draw := rng.Float64() * total
	for _, item := range items {
		if item.Weight <= 0 {
			continue
		}
		draw -= item.Weight
		if draw < 0 {
			return item.Value, true
		}
	}

	// Float rounding can leave draw at exactly the boundary; fall back to
	// the last selectable item.
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Weight > 0 {
			return items[i].Value, true
		}
	}
	return zero, false
}
