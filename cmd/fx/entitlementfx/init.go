package entitlementfx

import (
	"go.uber.org/fx"

	"bumpline/internal/repositories"
	"bumpline/internal/services"
)

var Module = fx.Provide(provideEntitlementService)

func provideEntitlementService(
	profileRepo repositories.ProfileRepository,
	txnRepo repositories.CreditTransactionRepository,
) services.EntitlementServiceInterface {
	return services.NewEntitlementService(profileRepo, txnRepo)
}
