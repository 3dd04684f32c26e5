package messagingfx

import (
	"go.uber.org/fx"

	"bumpline/internal/config"
	"bumpline/internal/services"
)

var Module = fx.Provide(provideTwilioSender)

func provideTwilioSender(cfg *config.Config) services.SMSSenderInterface {
	return services.NewTwilioSender(services.TwilioConfig{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		FromNumber: cfg.TwilioFromNumber,
	})
}
