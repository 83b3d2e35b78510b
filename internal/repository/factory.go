package repository

import (
	"github.com/scoopworks/scoopworks/internal/config"
	"github.com/scoopworks/scoopworks/internal/domain/activitylog"
	"github.com/scoopworks/scoopworks/internal/domain/client"
	"github.com/scoopworks/scoopworks/internal/domain/crosssell"
	"github.com/scoopworks/scoopworks/internal/domain/invoice"
	"github.com/scoopworks/scoopworks/internal/domain/pricingrule"
	"github.com/scoopworks/scoopworks/internal/domain/subscription"
	"github.com/scoopworks/scoopworks/internal/logger"
	"github.com/scoopworks/scoopworks/internal/postgres"
	postgresRepo "github.com/scoopworks/scoopworks/internal/repository/postgres"
)

func NewPricingRuleRepository(db postgres.IClient, logger *logger.Logger) pricingrule.Repository {
	return postgresRepo.NewPricingRuleRepository(db, logger)
}

func NewClientRepository(db postgres.IClient, logger *logger.Logger) client.Repository {
	return postgresRepo.NewClientRepository(db, logger)
}

func NewSubscriptionRepository(db postgres.IClient, logger *logger.Logger) subscription.Repository {
	return postgresRepo.NewSubscriptionRepository(db, logger)
}

func NewCrossSellRepository(db postgres.IClient, logger *logger.Logger) crosssell.Repository {
	return postgresRepo.NewCrossSellRepository(db, logger)
}

func NewInvoiceRepository(db postgres.IClient, cfg *config.Configuration, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, cfg, logger)
}

func NewActivityLogRepository(db postgres.IClient, logger *logger.Logger) activitylog.Repository {
	return postgresRepo.NewActivityLogRepository(db, logger)
}
