package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bumpline/internal/models/db_models"
)

type ProfileRepository interface {
	InsertTx(profile *db_models.Profile, ctx context.Context) error
	FindByPhone(ctx context.Context, phone string) (*db_models.Profile, error)
	FindByStripeCustomerID(ctx context.Context, customerID string) (*db_models.Profile, error)
	FindByPreferredTime(ctx context.Context, slotUTC string) ([]db_models.Profile, error)
	Update(ctx context.Context, profile *db_models.Profile) error
	UpdateFields(ctx context.Context, phone string, fields map[string]interface{}) error

	// DecrementCredit is the atomicity boundary for metered sends: the
	// decrement only happens while credits > 0, so the balance can never
	// go negative even under concurrent triggers. Returns ErrNoCredits
	// via a false result when nothing was decremented.
	DecrementCredit(ctx context.Context, phone string) (bool, error)
	GrantCredits(ctx context.Context, phone string, amount int) error

	ExpireTrials(ctx context.Context, nowUnix int64) (int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

func (p *profileRepository) InsertTx(profile *db_models.Profile, ctx context.Context) error {
	return p.db.WithContext(ctx).Create(profile).Error
}

func (p *profileRepository) FindByPhone(ctx context.Context, phone string) (*db_models.Profile, error) {
	var profile db_models.Profile
	err := p.db.WithContext(ctx).First(&profile, "phone_number = ?", phone).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &profile, nil
}

func (p *profileRepository) FindByStripeCustomerID(ctx context.Context, customerID string) (*db_models.Profile, error) {
	var profile db_models.Profile
	err := p.db.WithContext(ctx).First(&profile, "stripe_customer_id = ?", customerID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &profile, nil
}

func (p *profileRepository) FindByPreferredTime(ctx context.Context, slotUTC string) ([]db_models.Profile, error) {
	var profiles []db_models.Profile
	err := p.db.WithContext(ctx).
		Where("preferred_time_utc = ? AND subscription_status <> ?",
			slotUTC, db_models.SubStatusInactive).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (p *profileRepository) Update(ctx context.Context, profile *db_models.Profile) error {
	return p.db.WithContext(ctx).Save(profile).Error
}

func (p *profileRepository) UpdateFields(ctx context.Context, phone string, fields map[string]interface{}) error {
	return p.db.WithContext(ctx).
		Model(&db_models.Profile{}).
		Where("phone_number = ?", phone).
		Updates(fields).Error
}

func (p *profileRepository) DecrementCredit(ctx context.Context, phone string) (bool, error) {
	result := p.db.WithContext(ctx).
		Model(&db_models.Profile{}).
		Where("phone_number = ? AND credits > 0", phone).
		UpdateColumn("credits", gorm.Expr("credits - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (p *profileRepository) GrantCredits(ctx context.Context, phone string, amount int) error {
	return p.db.WithContext(ctx).
		Model(&db_models.Profile{}).
		Where("phone_number = ?", phone).
		UpdateColumn("credits", gorm.Expr("credits + ?", amount)).Error
}

func (p *profileRepository) ExpireTrials(ctx context.Context, nowUnix int64) (int64, error) {
	result := p.db.WithContext(ctx).
		Model(&db_models.Profile{}).
		Where("subscription_status = ? AND trial_ends_at > 0 AND trial_ends_at < ?",
			db_models.SubStatusTrial, nowUnix).
		Update("subscription_status", db_models.SubStatusInactive)
	return result.RowsAffected, result.Error
}
