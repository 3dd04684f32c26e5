package services

import (
	"context"
	"errors"
	"testing"

	"bumpline/internal/models/db_models"
	"bumpline/internal/repositories"
	"bumpline/pkg/utils"
)

func newEntitlementFixture(t *testing.T) (EntitlementServiceInterface, repositories.ProfileRepository, repositories.CreditTransactionRepository) {
	db := newTestDB(t)
	profileRepo := repositories.NewProfileRepository(db)
	txnRepo := repositories.NewCreditTransactionRepository(db)
	return NewEntitlementService(profileRepo, txnRepo), profileRepo, txnRepo
}

func TestAuthorizeUnlimitedAlwaysAllowed(t *testing.T) {
	svc, _, _ := newEntitlementFixture(t)

	profile := &db_models.Profile{
		PhoneNumber:        "+15550000001",
		SubscriptionStatus: db_models.SubStatusActive,
		Tier:               db_models.TierUnlimited,
		Credits:            0,
	}

	decision := svc.Authorize(profile)
	if !decision.Allowed {
		t.Error("active unlimited profile with zero credits should be allowed")
	}
}

func TestAuthorizeExhaustedTrialDenied(t *testing.T) {
	svc, _, _ := newEntitlementFixture(t)

	profile := &db_models.Profile{
		PhoneNumber:        "+15550000002",
		SubscriptionStatus: db_models.SubStatusTrial,
		Tier:               db_models.TierNone,
		Credits:            0,
	}

	decision := svc.Authorize(profile)
	if decision.Allowed {
		t.Error("zero-credit trial profile should be denied")
	}
	if decision.DegradeMessage == "" {
		t.Error("denied decision must carry a degrade message")
	}
}

func TestConsumeDecrementsAndLogsOnce(t *testing.T) {
	svc, profileRepo, txnRepo := newEntitlementFixtureWithDB(t)

	profile := loadProfile(t, profileRepo, "+15550000003")
	if decision := svc.Authorize(profile); !decision.Allowed {
		t.Fatal("profile with credits should be allowed")
	}

	if err := svc.Consume(context.Background(), profile, db_models.TxnTypeMessageSend); err != nil {
		t.Fatalf("consume: %v", err)
	}

	reloaded := loadProfile(t, profileRepo, "+15550000003")
	if reloaded.Credits != 4 {
		t.Errorf("credits = %d, want 4", reloaded.Credits)
	}

	txns, err := txnRepo.ListByPhone(context.Background(), "+15550000003", 10)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("transaction rows = %d, want 1", len(txns))
	}
	if txns[0].Amount != -1 {
		t.Errorf("transaction amount = %d, want -1", txns[0].Amount)
	}
	if txns[0].Type != db_models.TxnTypeMessageSend {
		t.Errorf("transaction type = %s, want %s", txns[0].Type, db_models.TxnTypeMessageSend)
	}
}

func newEntitlementFixtureWithDB(t *testing.T) (EntitlementServiceInterface, repositories.ProfileRepository, repositories.CreditTransactionRepository) {
	db := newTestDB(t)
	profileRepo := repositories.NewProfileRepository(db)
	txnRepo := repositories.NewCreditTransactionRepository(db)

	seedProfile(t, db, &db_models.Profile{
		PhoneNumber:        "+15550000003",
		SubscriptionStatus: db_models.SubStatusTrial,
		Tier:               db_models.TierNone,
		Credits:            5,
	})

	return NewEntitlementService(profileRepo, txnRepo), profileRepo, txnRepo
}

func TestConsumeRefusesAtZeroWithoutLogging(t *testing.T) {
	db := newTestDB(t)
	profileRepo := repositories.NewProfileRepository(db)
	txnRepo := repositories.NewCreditTransactionRepository(db)
	svc := NewEntitlementService(profileRepo, txnRepo)

	seedProfile(t, db, &db_models.Profile{
		PhoneNumber:        "+15550000004",
		SubscriptionStatus: db_models.SubStatusTrial,
		Tier:               db_models.TierNone,
		Credits:            0,
	})

	profile := loadProfile(t, profileRepo, "+15550000004")
	err := svc.Consume(context.Background(), profile, db_models.TxnTypeMessageSend)
	if !errors.Is(err, utils.ErrNoCredits) {
		t.Fatalf("consume at zero = %v, want ErrNoCredits", err)
	}

	reloaded := loadProfile(t, profileRepo, "+15550000004")
	if reloaded.Credits != 0 {
		t.Errorf("credits = %d, want 0 (never negative)", reloaded.Credits)
	}

	txns, _ := txnRepo.ListByPhone(context.Background(), "+15550000004", 10)
	if len(txns) != 0 {
		t.Errorf("refused consume must not log a transaction, got %d rows", len(txns))
	}
}

func TestConsumeUnlimitedIsUnmetered(t *testing.T) {
	db := newTestDB(t)
	profileRepo := repositories.NewProfileRepository(db)
	txnRepo := repositories.NewCreditTransactionRepository(db)
	svc := NewEntitlementService(profileRepo, txnRepo)

	seedProfile(t, db, &db_models.Profile{
		PhoneNumber:        "+15550000005",
		SubscriptionStatus: db_models.SubStatusActive,
		Tier:               db_models.TierUnlimited,
		Credits:            3,
	})

	profile := loadProfile(t, profileRepo, "+15550000005")
	if err := svc.Consume(context.Background(), profile, db_models.TxnTypeMessageSend); err != nil {
		t.Fatalf("consume: %v", err)
	}

	reloaded := loadProfile(t, profileRepo, "+15550000005")
	if reloaded.Credits != 3 {
		t.Errorf("unlimited consume touched credits: %d, want 3", reloaded.Credits)
	}

	txns, _ := txnRepo.ListByPhone(context.Background(), "+15550000005", 10)
	if len(txns) != 0 {
		t.Errorf("unlimited consume must not log a transaction, got %d rows", len(txns))
	}
}
