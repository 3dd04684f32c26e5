package services

import (
	"context"
	"fmt"

	"bumpline/internal/models/db_models"
	"bumpline/internal/repositories"
	"bumpline/pkg/utils"
)

// UpsellMessage is the fixed degrade message sent instead of a normal update
// when a profile's entitlement is exhausted.
const UpsellMessage = "You're out of message credits! 💜 Keep your daily pregnancy updates coming — " +
	"top up with 50 credits or go unlimited at https://bumpline.app/plans"

// Decision is the outcome of an entitlement check.
type Decision struct {
	Allowed        bool
	DegradeMessage string
}

type EntitlementServiceInterface interface {
	// Authorize decides whether a profile may receive a metered message.
	// Exhaustion is a normal branch, not an error.
	Authorize(profile *db_models.Profile) Decision

	// Consume decrements one credit and appends exactly one ledger row.
	// The decrement is conditional on credits > 0; when it does not land,
	// no transaction is logged and ErrNoCredits is returned so the caller
	// skips the send.
	Consume(ctx context.Context, profile *db_models.Profile, txnType db_models.TransactionType) error
}

type entitlementService struct {
	profileRepo repositories.ProfileRepository
	txnRepo     repositories.CreditTransactionRepository
}

func NewEntitlementService(
	profileRepo repositories.ProfileRepository,
	txnRepo repositories.CreditTransactionRepository,
) EntitlementServiceInterface {
	return &entitlementService{
		profileRepo: profileRepo,
		txnRepo:     txnRepo,
	}
}

func (e *entitlementService) Authorize(profile *db_models.Profile) Decision {
	if profile.SubscriptionStatus == db_models.SubStatusActive &&
		profile.Tier == db_models.TierUnlimited {
		return Decision{Allowed: true}
	}

	if profile.Credits > 0 {
		return Decision{Allowed: true}
	}

	return Decision{
		Allowed:        false,
		DegradeMessage: UpsellMessage,
	}
}

func (e *entitlementService) Consume(ctx context.Context, profile *db_models.Profile, txnType db_models.TransactionType) error {
	// Unlimited subscribers are not metered.
	if profile.SubscriptionStatus == db_models.SubStatusActive &&
		profile.Tier == db_models.TierUnlimited {
		return nil
	}

	decremented, err := e.profileRepo.DecrementCredit(ctx, profile.PhoneNumber)
	if err != nil {
		return fmt.Errorf("decrement credit: %w", err)
	}
	if !decremented {
		return utils.ErrNoCredits
	}

	txn := &db_models.CreditTransaction{
		PhoneNumber: profile.PhoneNumber,
		Amount:      -1,
		Type:        txnType,
	}
	if err := e.txnRepo.Insert(ctx, txn); err != nil {
		// The decrement already landed; the ledger row is best-effort
		// behind the store's per-row update boundary.
		return fmt.Errorf("log credit transaction: %w", err)
	}

	profile.Credits--
	return nil
}
