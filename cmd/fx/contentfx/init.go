package contentfx

import (
	"go.uber.org/fx"

	"bumpline/internal/config"
	"bumpline/internal/services"
)

var Module = fx.Provide(provideContentService)

func provideContentService(cfg *config.Config) services.ContentServiceInterface {
	return services.NewContentService(cfg.GeminiAPIKey, cfg.GeminiModel, nil)
}
