package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bumpline/internal/models/db_models"
)

func newChatTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&db_models.ChatMessage{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func TestRecentByPhoneOrderIsStableWithinOneSecond(t *testing.T) {
	repo := NewChatRepository(newChatTestDB(t))
	phone := "+15550001234"

	// Several rows land inside the same second, so created_at alone cannot
	// order them.
	for i := 0; i < 6; i++ {
		msg := &db_models.ChatMessage{
			PhoneNumber: phone,
			Role:        db_models.RoleUser,
			Content:     fmt.Sprintf("message %d", i),
		}
		if err := repo.Append(context.Background(), msg); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	first, err := repo.RecentByPhone(context.Background(), phone, 10)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := repo.RecentByPhone(context.Background(), phone, 10)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}

	if len(first) != 6 || len(second) != 6 {
		t.Fatalf("rows = %d/%d, want 6/6", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("row %d differs between reads: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestRecentByPhoneLimitsAndScopes(t *testing.T) {
	repo := NewChatRepository(newChatTestDB(t))

	for _, phone := range []string{"+15550001111", "+15550002222"} {
		for i := 0; i < 3; i++ {
			msg := &db_models.ChatMessage{
				PhoneNumber: phone,
				Role:        db_models.RoleAssistant,
				Content:     fmt.Sprintf("%s #%d", phone, i),
			}
			if err := repo.Append(context.Background(), msg); err != nil {
				t.Fatalf("append: %v", err)
			}
		}
	}

	msgs, err := repo.RecentByPhone(context.Background(), "+15550001111", 2)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("rows = %d, want 2", len(msgs))
	}
	for _, msg := range msgs {
		if msg.PhoneNumber != "+15550001111" {
			t.Errorf("row for %s leaked into another phone's history", msg.PhoneNumber)
		}
	}
}
