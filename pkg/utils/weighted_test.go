package utils

import (
	"math/rand"
	"testing"
)

func TestWeightedChoiceEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, ok := WeightedChoice[string](nil, rng); ok {
		t.Error("empty input should not select anything")
	}
}

func TestWeightedChoiceAllZeroWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	items := []WeightedItem[string]{
		{Value: "a", Weight: 0},
		{Value: "b", Weight: -1},
	}
	if _, ok := WeightedChoice(items, rng); ok {
		t.Error("all-zero weights should not select anything")
	}
}

func TestWeightedChoiceSingleItem(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	items := []WeightedItem[string]{{Value: "only", Weight: 2.5}}
	for i := 0; i < 100; i++ {
		got, ok := WeightedChoice(items, rng)
		if !ok || got != "only" {
			t.Fatalf("draw %d: got %q (ok=%v)", i, got, ok)
		}
	}
}

func TestWeightedChoiceSkipsZeroWeight(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	items := []WeightedItem[string]{
		{Value: "never", Weight: 0},
		{Value: "always", Weight: 1},
	}
	for i := 0; i < 1000; i++ {
		if got, _ := WeightedChoice(items, rng); got == "never" {
			t.Fatal("zero-weight item was selected")
		}
	}
}

func TestWeightedChoiceDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	items := []WeightedItem[string]{
		{Value: "double", Weight: 2},
		{Value: "single", Weight: 1},
	}

	const draws = 30000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		v, ok := WeightedChoice(items, rng)
		if !ok {
			t.Fatal("draw failed")
		}
		counts[v]++
	}

	ratio := float64(counts["double"]) / float64(counts["single"])
	if ratio < 1.8 || ratio > 2.2 {
		t.Errorf("double/single ratio = %.2f, want ~2.0 (counts: %v)", ratio, counts)
	}
}
