package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bumpline/internal/models/db_models"
	"bumpline/internal/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&db_models.Profile{},
		&db_models.CreditTransaction{},
		&db_models.VerificationCode{},
		&db_models.ChatMessage{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

type sentMessage struct {
	To   string
	Body string
}

// fakeSender records outbound messages and can be told to fail for specific
// numbers.
type fakeSender struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[string]bool
}

func newFakeSender() *fakeSender {
	return &fakeSender{failFor: make(map[string]bool)}
}

func (f *fakeSender) Send(ctx context.Context, to, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failFor[to] {
		return "", fmt.Errorf("carrier rejected %s", to)
	}

	f.sent = append(f.sent, sentMessage{To: to, Body: body})
	return fmt.Sprintf("SM%06d", len(f.sent)), nil
}

func (f *fakeSender) messagesTo(to string) []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []sentMessage
	for _, m := range f.sent {
		if m.To == to {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// testClock is a settable clock.
type testClock struct {
	mu sync.Mutex
	at time.Time
}

func newTestClock(at time.Time) *testClock {
	return &testClock{at: at}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = c.at.Add(d)
}

func seedProfile(t *testing.T, db *gorm.DB, profile *db_models.Profile) *db_models.Profile {
	t.Helper()
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return profile
}

func loadProfile(t *testing.T, repo repositories.ProfileRepository, phone string) *db_models.Profile {
	t.Helper()
	profile, err := repo.FindByPhone(context.Background(), phone)
	if err != nil {
		t.Fatalf("load profile %s: %v", phone, err)
	}
	if profile == nil {
		t.Fatalf("profile %s not found", phone)
	}
	return profile
}

func unixPtr(t time.Time) *int64 {
	u := t.Unix()
	return &u
}
