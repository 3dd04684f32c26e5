package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"bumpline/internal/models/db_models"
	"bumpline/internal/models/response_models"
	"bumpline/internal/repositories"
	"bumpline/pkg/utils"
)

const creditPackSize = 50

type StripeConfig struct {
	SecretKey      string
	WebhookSecret  string
	PriceCredits50 string
	PriceUnlimited string
	SuccessURL     string
	CancelURL      string
}

type BillingServiceInterface interface {
	CreateCheckout(ctx context.Context, phone, plan string) (*response_models.CreateCheckoutResponse, error)
	HandleWebhook(c *gin.Context)
}

type billingService struct {
	cfg         StripeConfig
	profileRepo repositories.ProfileRepository
	txnRepo     repositories.CreditTransactionRepository
	clock       utils.Clock
}

func NewBillingService(
	cfg StripeConfig,
	profileRepo repositories.ProfileRepository,
	txnRepo repositories.CreditTransactionRepository,
	clock utils.Clock,
) (BillingServiceInterface, error) {
	if cfg.SecretKey == "" || cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("missing Stripe credentials")
	}
	stripe.Key = cfg.SecretKey

	return &billingService{
		cfg:         cfg,
		profileRepo: profileRepo,
		txnRepo:     txnRepo,
		clock:       clock,
	}, nil
}

// tierForPlan maps the public plan name to the internal tier tag and the
// Stripe price backing it.
func (b *billingService) tierForPlan(plan string) (db_models.SubscriptionTier, string, stripe.CheckoutSessionMode, error) {
	switch plan {
	case string(db_models.TierCredits50):
		return db_models.TierCredits50, b.cfg.PriceCredits50, stripe.CheckoutSessionModePayment, nil
	case string(db_models.TierUnlimited):
		return db_models.TierUnlimited, b.cfg.PriceUnlimited, stripe.CheckoutSessionModeSubscription, nil
	default:
		return db_models.TierNone, "", "", utils.ErrInvalidPlan
	}
}

func (b *billingService) CreateCheckout(ctx context.Context, phone, plan string) (*response_models.CreateCheckoutResponse, error) {
	profile, err := b.profileRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if profile == nil {
		return nil, utils.ErrProfileNotFound
	}

	_, priceID, mode, err := b.tierForPlan(plan)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(mode)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(b.cfg.SuccessURL),
		CancelURL:  stripe.String(b.cfg.CancelURL),
		Metadata: map[string]string{
			"phone": phone,
			"plan":  plan,
		},
	}
	if profile.StripeCustomerID != "" {
		params.Customer = stripe.String(profile.StripeCustomerID)
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create session: %w", err)
	}

	return &response_models.CreateCheckoutResponse{
		CheckoutURL: sess.URL,
		Plan:        plan,
	}, nil
}

func (b *billingService) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("Error reading webhook body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), b.cfg.WebhookSecret)
	if err != nil {
		log.Printf("Error verifying webhook signature: %v", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Failed to verify webhook signature"})
		return
	}

	ctx := c.Request.Context()

	switch string(event.Type) {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			log.Printf("Error parsing checkout session: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
			return
		}
		if err := b.activatePlan(ctx, &sess); err != nil {
			log.Printf("webhook: failed to activate plan for session %s: %v", sess.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process event"})
			return
		}

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			log.Printf("Error parsing subscription: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
			return
		}
		if err := b.deactivateSubscription(ctx, &sub); err != nil {
			log.Printf("webhook: failed to deactivate subscription %s: %v", sub.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process event"})
			return
		}

	default:
		// Unhandled event types are acked so Stripe stops retrying them.
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (b *billingService) activatePlan(ctx context.Context, sess *stripe.CheckoutSession) error {
	phone := sess.Metadata["phone"]
	plan := sess.Metadata["plan"]
	if phone == "" || plan == "" {
		return fmt.Errorf("missing phone/plan metadata on session %s", sess.ID)
	}

	tier, _, _, err := b.tierForPlan(plan)
	if err != nil {
		return fmt.Errorf("unknown plan %q on session %s", plan, sess.ID)
	}

	profile, err := b.profileRepo.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("no profile for phone in session %s", sess.ID)
	}

	fields := map[string]interface{}{
		"subscription_status": db_models.SubStatusActive,
		"tier":                tier,
	}
	if sess.Customer != nil && sess.Customer.ID != "" {
		fields["stripe_customer_id"] = sess.Customer.ID
	}
	if tier == db_models.TierUnlimited {
		fields["next_billing_at"] = b.clock.Now().AddDate(0, 1, 0).Unix()
	}

	if err := b.profileRepo.UpdateFields(ctx, phone, fields); err != nil {
		return err
	}

	if tier == db_models.TierCredits50 {
		if err := b.profileRepo.GrantCredits(ctx, phone, creditPackSize); err != nil {
			return err
		}
		txn := &db_models.CreditTransaction{
			PhoneNumber: phone,
			Amount:      creditPackSize,
			Type:        db_models.TxnTypePurchase,
			Metadata:    jsonRaw(map[string]any{"stripe_session": sess.ID}),
		}
		if err := b.txnRepo.Insert(ctx, txn); err != nil {
			log.Printf("webhook: failed to log purchase for %s: %v", phone, err)
		}
	}

	log.Printf("webhook: activated %s for %s", tier, phone)
	return nil
}

func (b *billingService) deactivateSubscription(ctx context.Context, sub *stripe.Subscription) error {
	if sub.Customer == nil || sub.Customer.ID == "" {
		return fmt.Errorf("subscription %s has no customer", sub.ID)
	}

	profile, err := b.profileRepo.FindByStripeCustomerID(ctx, sub.Customer.ID)
	if err != nil {
		return err
	}
	if profile == nil {
		// Ack unknown customers; nothing local to update.
		log.Printf("webhook: no profile for customer %s", sub.Customer.ID)
		return nil
	}

	return b.profileRepo.UpdateFields(ctx, profile.PhoneNumber, map[string]interface{}{
		"subscription_status": db_models.SubStatusInactive,
		"tier":                db_models.TierNone,
		"next_billing_at":     nil,
	})
}

func jsonRaw(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}
