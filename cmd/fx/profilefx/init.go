package profilefx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"bumpline/internal/api/controllers"
	"bumpline/internal/config"
	"bumpline/internal/repositories"
	"bumpline/internal/services"
	"bumpline/pkg/utils"
)

var Module = fx.Provide(
	provideProfileRepo, provideTxnRepo, provideChatRepo,
	provideProfileService, controllers.NewProfileController)

func provideProfileRepo(db *gorm.DB) repositories.ProfileRepository {
	return repositories.NewProfileRepository(db)
}

func provideTxnRepo(db *gorm.DB) repositories.CreditTransactionRepository {
	return repositories.NewCreditTransactionRepository(db)
}

func provideChatRepo(db *gorm.DB) repositories.ChatRepository {
	return repositories.NewChatRepository(db)
}

func provideProfileService(
	cfg *config.Config,
	profileRepo repositories.ProfileRepository,
	txnRepo repositories.CreditTransactionRepository,
	chatRepo repositories.ChatRepository,
	sender services.SMSSenderInterface,
	clock utils.Clock,
) services.ProfileServiceInterface {
	return services.NewProfileService(profileRepo, txnRepo, chatRepo, sender, clock,
		services.TrialConfig{
			Credits: cfg.TrialCredits,
			Days:    cfg.TrialDays,
		})
}
