package utils

import "time"

// Clock abstracts wall-clock reads so sweep timing, gestational-age math and
// code expiry checks are testable without real waits.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func NewRealClock() Clock { return realClock{} }

// FixedClock always reports the same instant. Test helper.
type FixedClock struct {
	At time.Time
}

func (f FixedClock) Now() time.Time { return f.At }
