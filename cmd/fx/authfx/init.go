package authfx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"bumpline/internal/api/controllers"
	"bumpline/internal/repositories"
	"bumpline/internal/services"
	"bumpline/pkg/utils"
)

var Module = fx.Provide(
	provideCodeRepo, provideAuthService, controllers.NewAuthController)

func provideCodeRepo(db *gorm.DB) repositories.VerificationCodeRepository {
	return repositories.NewVerificationCodeRepository(db)
}

func provideAuthService(
	codeRepo repositories.VerificationCodeRepository,
	sender services.SMSSenderInterface,
	clock utils.Clock,
) services.AuthServiceInterface {
	return services.NewAuthService(codeRepo, sender, clock)
}
