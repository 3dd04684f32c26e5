package db_models

import (
	"time"

	"gorm.io/datatypes"
)

type SubscriptionStatus string

const (
	SubStatusTrial    SubscriptionStatus = "trial"
	SubStatusActive   SubscriptionStatus = "active"
	SubStatusInactive SubscriptionStatus = "inactive"
)

type SubscriptionTier string

const (
	TierCredits50 SubscriptionTier = "credits_50"
	TierUnlimited SubscriptionTier = "unlimited"
	TierNone      SubscriptionTier = "none"
)

// Profile is the system of record for one subscriber, keyed by phone number.
// Preferred notification time is stored in UTC so the sweep is a plain
// equality check against the current UTC minute.
type Profile struct {
	BaseModel
	PhoneNumber string `gorm:"uniqueIndex;not null"`
	Name        string

	// Either a due date or a last menstrual period; both unix seconds.
	DueDateAt *int64
	LMPAt     *int64

	Interests string
	Lifestyle string

	City             string
	PreferredTimeUTC string `gorm:"size:5;index"` // "HH:MM"

	SubscriptionStatus SubscriptionStatus `gorm:"index;default:'trial'"`
	Tier               SubscriptionTier   `gorm:"default:'none'"`
	Credits            int                `gorm:"default:0"`
	TrialEndsAt        int64
	NextBillingAt      *int64

	StripeCustomerID string `gorm:"index"`

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}

// DueDate returns the due date as a time, nil when not set.
func (p *Profile) DueDate() *time.Time {
	if p.DueDateAt == nil || *p.DueDateAt <= 0 {
		return nil
	}
	t := time.Unix(*p.DueDateAt, 0).UTC()
	return &t
}
