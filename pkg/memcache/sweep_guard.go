// pkg/mem/sweep_guard.go
package mem

import (
	"sync"
	"time"
)

// SweepGuard deduplicates scheduled sends within a short window. The sweep
// claims a key (phone + date + slot) before sending; a second trigger in the
// same minute sees the claim and skips the profile.
type SweepGuard interface {
	// Claim records the key and reports whether this caller won it. A key
	// already claimed and not yet expired returns false.
	Claim(key string, ttl time.Duration) bool

	// Release drops a claim so a failed send can be retried by a later
	// trigger in the same window.
	Release(key string)
}

type sweepGuard struct {
	mu   sync.Mutex
	data map[string]time.Time
}

func NewSweepGuard() SweepGuard {
	return &sweepGuard{
		data: make(map[string]time.Time),
	}
}

func (g *sweepGuard) Claim(key string, ttl time.Duration) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if expiresAt, ok := g.data[key]; ok && now.Before(expiresAt) {
		return false
	}

	// Opportunistic cleanup keeps the map from growing across days.
	for k, expiresAt := range g.data {
		if now.After(expiresAt) {
			delete(g.data, k)
		}
	}

	g.data[key] = now.Add(ttl)
	return true
}

func (g *sweepGuard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.data, key)
}
