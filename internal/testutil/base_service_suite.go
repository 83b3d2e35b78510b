package testutil

import (
	"context"

	"github.com/scoopworks/scoopworks/internal/config"
	"github.com/scoopworks/scoopworks/internal/domain/activitylog"
	"github.com/scoopworks/scoopworks/internal/domain/client"
	"github.com/scoopworks/scoopworks/internal/domain/crosssell"
	"github.com/scoopworks/scoopworks/internal/domain/invoice"
	"github.com/scoopworks/scoopworks/internal/domain/pricingrule"
	"github.com/scoopworks/scoopworks/internal/domain/subscription"
	"github.com/scoopworks/scoopworks/internal/logger"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	PricingRuleRepo  pricingrule.Repository
	ClientRepo       client.Repository
	SubscriptionRepo subscription.Repository
	CrossSellRepo    crosssell.Repository
	InvoiceRepo      invoice.Repository
	ActivityLogRepo  activitylog.Repository
}

// BaseServiceTestSuite provides common functionality for service tests
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	cfg    *config.Configuration
	stores Stores
	logger *logger.Logger
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.cfg = config.GetDefaultConfig()
	s.logger = logger.GetLogger()

	s.stores = Stores{
		PricingRuleRepo:  NewInMemoryPricingRuleStore(),
		ClientRepo:       NewInMemoryClientStore(),
		SubscriptionRepo: NewInMemorySubscriptionStore(),
		CrossSellRepo:    NewInMemoryCrossSellStore(),
		InvoiceRepo:      NewInMemoryInvoiceStore(),
		ActivityLogRepo:  NewInMemoryActivityLogStore(),
	}
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.stores.PricingRuleRepo.(*InMemoryPricingRuleStore).Clear()
	s.stores.ClientRepo.(*InMemoryClientStore).Clear()
	s.stores.SubscriptionRepo.(*InMemorySubscriptionStore).Clear()
	s.stores.CrossSellRepo.(*InMemoryCrossSellStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
	s.stores.ActivityLogRepo.(*InMemoryActivityLogStore).Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

// GetStores returns the test stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}
