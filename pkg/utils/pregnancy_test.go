package utils

import (
	"testing"
	"time"
)

func TestGestationalWeekFullTermOut(t *testing.T) {
	today := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	due := today.AddDate(0, 0, 280)

	week, ok := GestationalWeek(&due, today)
	if !ok {
		t.Fatal("expected ok for a set due date")
	}
	if week != 0 {
		t.Errorf("due date 280 days out: week = %d, want 0", week)
	}
}

func TestGestationalWeekMidPregnancy(t *testing.T) {
	today := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	due := today.AddDate(0, 0, 140) // 20 weeks out

	week, ok := GestationalWeek(&due, today)
	if !ok || week != 20 {
		t.Errorf("due date 140 days out: week = %d (ok=%v), want 20", week, ok)
	}
}

func TestGestationalWeekPastDueUnclamped(t *testing.T) {
	today := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	due := today.AddDate(0, 0, -7)

	week, ok := GestationalWeek(&due, today)
	if !ok {
		t.Fatal("expected ok for a set due date")
	}
	if week <= 40 {
		t.Errorf("due date a week past: week = %d, want > 40", week)
	}
}

func TestGestationalWeekMissingDueDate(t *testing.T) {
	today := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	if _, ok := GestationalWeek(nil, today); ok {
		t.Error("nil due date should report ok=false, not fail or guess")
	}
}

func TestDueDateFromLMP(t *testing.T) {
	lmp := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	due := DueDateFromLMP(lmp)
	if got := due.Sub(lmp).Hours() / 24; got != 280 {
		t.Errorf("LMP-derived due date is %v days out, want 280", got)
	}
}

func TestFruitSizeCoversAllWeeks(t *testing.T) {
	for week := -1; week <= 45; week++ {
		if FruitSize(week) == "" {
			t.Errorf("FruitSize(%d) is empty", week)
		}
	}
}

func TestFruitSizeProgression(t *testing.T) {
	if FruitSize(5) == FruitSize(40) {
		t.Error("early and late weeks should map to different sizes")
	}
}

func TestDisplayWeekClamps(t *testing.T) {
	cases := map[int]int{-3: 1, 0: 1, 1: 1, 25: 25, 42: 42, 50: 42}
	for in, want := range cases {
		if got := DisplayWeek(in); got != want {
			t.Errorf("DisplayWeek(%d) = %d, want %d", in, got, want)
		}
	}
}
