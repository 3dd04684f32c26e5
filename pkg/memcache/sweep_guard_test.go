package mem

import (
	"testing"
	"time"
)

func TestClaimFirstWins(t *testing.T) {
	guard := NewSweepGuard()

	if !guard.Claim("p1|2025-01-15|09:00", time.Minute) {
		t.Fatal("first claim should win")
	}
	if guard.Claim("p1|2025-01-15|09:00", time.Minute) {
		t.Error("second claim on same key should lose")
	}
}

func TestClaimDistinctKeys(t *testing.T) {
	guard := NewSweepGuard()

	if !guard.Claim("p1|2025-01-15|09:00", time.Minute) {
		t.Fatal("first key should claim")
	}
	if !guard.Claim("p2|2025-01-15|09:00", time.Minute) {
		t.Error("different key should claim independently")
	}
	if !guard.Claim("p1|2025-01-16|09:00", time.Minute) {
		t.Error("same profile on a different date should claim")
	}
}

func TestReleaseAllowsRetry(t *testing.T) {
	guard := NewSweepGuard()

	guard.Claim("key", time.Minute)
	guard.Release("key")
	if !guard.Claim("key", time.Minute) {
		t.Error("released key should be claimable again")
	}
}

func TestExpiredClaimIsReclaimable(t *testing.T) {
	guard := NewSweepGuard()

	// A zero TTL expires immediately.
	guard.Claim("key", 0)
	if !guard.Claim("key", time.Minute) {
		t.Error("expired claim should be reclaimable")
	}
}
