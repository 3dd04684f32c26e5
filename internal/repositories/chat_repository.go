package repositories

import (
	"context"

	"gorm.io/gorm"

	"bumpline/internal/models/db_models"
)

type ChatRepository interface {
	Append(ctx context.Context, msg *db_models.ChatMessage) error

	// RecentByPhone returns up to limit messages, oldest first, for prompt
	// context windows.
	RecentByPhone(ctx context.Context, phone string, limit int) ([]db_models.ChatMessage, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (c *chatRepository) Append(ctx context.Context, msg *db_models.ChatMessage) error {
	return c.db.WithContext(ctx).Create(msg).Error
}

func (c *chatRepository) RecentByPhone(ctx context.Context, phone string, limit int) ([]db_models.ChatMessage, error) {
	var msgs []db_models.ChatMessage
	err := c.db.WithContext(ctx).
		Where("phone_number = ?", phone).
		// id breaks ties between rows written in the same second.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}

	// reverse to chronological order
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
