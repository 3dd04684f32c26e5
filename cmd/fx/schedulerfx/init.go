package schedulerfx

import (
	"go.uber.org/fx"

	"bumpline/internal/api/controllers"
	"bumpline/internal/repositories"
	"bumpline/internal/services"
	mem "bumpline/pkg/memcache"
	"bumpline/pkg/utils"
)

var Module = fx.Provide(
	mem.NewSweepGuard, provideSchedulerService, controllers.NewSchedulerController)

func provideSchedulerService(
	profileRepo repositories.ProfileRepository,
	chatRepo repositories.ChatRepository,
	content services.ContentServiceInterface,
	entitlement services.EntitlementServiceInterface,
	sender services.SMSSenderInterface,
	guard mem.SweepGuard,
	clock utils.Clock,
) services.SchedulerServiceInterface {
	return services.NewSchedulerService(profileRepo, chatRepo, content, entitlement, sender, guard, clock)
}
