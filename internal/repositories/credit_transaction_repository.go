package repositories

import (
	"context"

	"gorm.io/gorm"

	"bumpline/internal/models/db_models"
)

type CreditTransactionRepository interface {
	Insert(ctx context.Context, txn *db_models.CreditTransaction) error
	ListByPhone(ctx context.Context, phone string, limit int) ([]db_models.CreditTransaction, error)
}

type creditTransactionRepository struct {
	db *gorm.DB
}

func NewCreditTransactionRepository(db *gorm.DB) CreditTransactionRepository {
	return &creditTransactionRepository{db: db}
}

func (c *creditTransactionRepository) Insert(ctx context.Context, txn *db_models.CreditTransaction) error {
	return c.db.WithContext(ctx).Create(txn).Error
}

func (c *creditTransactionRepository) ListByPhone(ctx context.Context, phone string, limit int) ([]db_models.CreditTransaction, error) {
	var txns []db_models.CreditTransaction
	err := c.db.WithContext(ctx).
		Where("phone_number = ?", phone).
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}
