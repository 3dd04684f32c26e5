package billingfx

import (
	"go.uber.org/fx"

	"bumpline/internal/api/controllers"
	"bumpline/internal/config"
	"bumpline/internal/repositories"
	"bumpline/internal/services"
	"bumpline/pkg/utils"
)

var Module = fx.Provide(
	provideBillingService, controllers.NewBillingController)

func provideBillingService(
	cfg *config.Config,
	profileRepo repositories.ProfileRepository,
	txnRepo repositories.CreditTransactionRepository,
	clock utils.Clock,
) (services.BillingServiceInterface, error) {
	return services.NewBillingService(services.StripeConfig{
		SecretKey:      cfg.StripeSecretKey,
		WebhookSecret:  cfg.StripeWebhookSecret,
		PriceCredits50: cfg.StripePriceCredits50,
		PriceUnlimited: cfg.StripePriceUnlimited,
		SuccessURL:     cfg.CheckoutSuccessURL,
		CancelURL:      cfg.CheckoutCancelURL,
	}, profileRepo, txnRepo, clock)
}
