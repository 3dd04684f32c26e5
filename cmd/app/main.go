package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"bumpline/cmd/fx/authfx"
	"bumpline/cmd/fx/billingfx"
	"bumpline/cmd/fx/chatfx"
	"bumpline/cmd/fx/contentfx"
	"bumpline/cmd/fx/dbfx"
	"bumpline/cmd/fx/entitlementfx"
	"bumpline/cmd/fx/messagingfx"
	"bumpline/cmd/fx/profilefx"
	"bumpline/cmd/fx/schedulerfx"
	"bumpline/internal/api/controllers"
	"bumpline/internal/config"
	"bumpline/internal/services"
	"bumpline/pkg/middleware"
	"bumpline/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	app := fx.New(
		fx.Provide(config.Load),
		fx.Provide(utils.NewRealClock),
		dbfx.Module,
		messagingfx.Module,
		contentfx.Module,
		entitlementfx.Module,
		authfx.Module,
		profilefx.Module,
		billingfx.Module,
		chatfx.Module,
		schedulerfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(InstallJWTKey),
		fx.Invoke(StartServer),
		fx.Invoke(StartScheduler),
	)

	app.Run()
}

// InstallJWTKey hands the validated secret to the token helpers once config
// is loaded.
func InstallJWTKey(cfg *config.Config) {
	utils.SetJWTKey(cfg.JWTSecret)
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

// StartScheduler runs the per-minute notification sweep and the daily trial
// expiration in the background for deployments without an external cron; the
// /internal endpoints drive the same code paths when one exists.
func StartScheduler(lc fx.Lifecycle, scheduler services.SchedulerServiceInterface) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go runEveryMinute(ctx, func(ctx context.Context) {
				scheduler.RunSweep(ctx)
			})
			go runDaily(ctx, 3, 0, func(ctx context.Context) {
				if _, err := scheduler.ExpireTrials(ctx); err != nil {
					log.Printf("Trial sweep failed: %v", err)
				}
			})
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func runEveryMinute(ctx context.Context, task func(context.Context)) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			task(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func runDaily(ctx context.Context, hour, minute int, task func(context.Context)) {
	for {
		now := time.Now().UTC()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
		if !now.Before(next) {
			next = next.Add(24 * time.Hour)
		}

		timer := time.NewTimer(next.Sub(now))

		select {
		case <-timer.C:
			task(ctx)
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

func ProvideRouter(
	cfg *config.Config,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	billingController *controllers.BillingController,
	smsController *controllers.SMSController,
	schedulerController *controllers.SchedulerController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, cfg, authController, profileController, billingController,
		smsController, schedulerController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	cfg *config.Config,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	billingController *controllers.BillingController,
	smsController *controllers.SMSController,
	schedulerController *controllers.SchedulerController) {

	authGroup := r.Group("/auth")
	authGroup.POST("/request-code", authController.RequestCodeHandler)
	authGroup.POST("/verify", authController.VerifyCodeHandler)

	profileGroup := r.Group("/profiles")
	profileGroup.POST("", profileController.RegisterHandler)
	profileGroup.GET("/me", middleware.JWTAuthMiddleware(), profileController.GetMeHandler)
	profileGroup.PUT("/me", middleware.JWTAuthMiddleware(), profileController.UpdateMeHandler)

	billingGroup := r.Group("/billing")
	billingGroup.POST("/checkout", middleware.JWTAuthMiddleware(), billingController.CreateCheckoutHandler)
	billingGroup.POST("/webhook", billingController.WebhookHandler)

	smsGroup := r.Group("/sms")
	smsGroup.POST("/inbound", smsController.InboundHandler)

	internalGroup := r.Group("/internal", middleware.CronSecretMiddleware(cfg.CronSecret))
	internalGroup.POST("/sweep", schedulerController.SweepHandler)
	internalGroup.POST("/expire-trials", schedulerController.ExpireTrialsHandler)
}
