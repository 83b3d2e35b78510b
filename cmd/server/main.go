package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/scoopworks/scoopworks/internal/api"
	"github.com/scoopworks/scoopworks/internal/api/cron"
	v1 "github.com/scoopworks/scoopworks/internal/api/v1"
	"github.com/scoopworks/scoopworks/internal/config"
	"github.com/scoopworks/scoopworks/internal/logger"
	"github.com/scoopworks/scoopworks/internal/postgres"
	"github.com/scoopworks/scoopworks/internal/repository"
	"github.com/scoopworks/scoopworks/internal/service"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Postgres
			postgres.NewDB,
			postgres.NewClient,

			// Repositories
			repository.NewPricingRuleRepository,
			repository.NewClientRepository,
			repository.NewSubscriptionRepository,
			repository.NewCrossSellRepository,
			repository.NewInvoiceRepository,
			repository.NewActivityLogRepository,

			// Services
			service.NewBillingService,
			service.NewPricingService,
			service.NewInvoiceService,
			service.NewInvoiceGeneratorService,
			service.NewActivityService,

			// HTTP
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	pricingService service.PricingService,
	invoiceService service.InvoiceService,
	generatorService service.InvoiceGeneratorService,
	activityService service.ActivityService,
) api.Handlers {
	return api.Handlers{
		Health:      v1.NewHealthHandler(),
		Pricing:     v1.NewPricingHandler(pricingService, logger),
		Invoice:     v1.NewInvoiceHandler(invoiceService, logger),
		Activity:    v1.NewActivityHandler(activityService, logger),
		CronBilling: cron.NewBillingHandler(generatorService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration) *gin.Engine {
	return api.NewRouter(handlers, cfg)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
