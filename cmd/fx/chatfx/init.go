package chatfx

import (
	"go.uber.org/fx"

	"bumpline/internal/api/controllers"
	"bumpline/internal/config"
	"bumpline/internal/repositories"
	"bumpline/internal/services"
	"bumpline/pkg/utils"
)

var Module = fx.Provide(
	provideChatService, controllers.NewSMSController)

func provideChatService(
	cfg *config.Config,
	profileRepo repositories.ProfileRepository,
	chatRepo repositories.ChatRepository,
	entitlement services.EntitlementServiceInterface,
	sender services.SMSSenderInterface,
	clock utils.Clock,
) services.ChatServiceInterface {
	return services.NewChatService(profileRepo, chatRepo, entitlement, sender, clock,
		cfg.OpenAIAPIKey, cfg.OpenAIModel)
}
