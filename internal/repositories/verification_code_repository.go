package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bumpline/internal/models/db_models"
)

type VerificationCodeRepository interface {
	Insert(ctx context.Context, code *db_models.VerificationCode) error

	// FindLatestValid returns the most recent unused, unexpired code for a
	// phone, or nil when none exists.
	FindLatestValid(ctx context.Context, phone string, nowUnix int64) (*db_models.VerificationCode, error)

	// MarkUsed consumes a code. The used guard in the WHERE clause makes
	// consumption single-shot; a second caller sees zero rows affected.
	MarkUsed(ctx context.Context, id string) (bool, error)
}

type verificationCodeRepository struct {
	db *gorm.DB
}

func NewVerificationCodeRepository(db *gorm.DB) VerificationCodeRepository {
	return &verificationCodeRepository{db: db}
}

func (v *verificationCodeRepository) Insert(ctx context.Context, code *db_models.VerificationCode) error {
	return v.db.WithContext(ctx).Create(code).Error
}

func (v *verificationCodeRepository) FindLatestValid(ctx context.Context, phone string, nowUnix int64) (*db_models.VerificationCode, error) {
	var code db_models.VerificationCode
	err := v.db.WithContext(ctx).
		Where("phone_number = ? AND used = ? AND expires_at > ?", phone, false, nowUnix).
		Order("created_at DESC").
		First(&code).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &code, nil
}

func (v *verificationCodeRepository) MarkUsed(ctx context.Context, id string) (bool, error) {
	result := v.db.WithContext(ctx).
		Model(&db_models.VerificationCode{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
