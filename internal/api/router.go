package api

import (
	"github.com/gin-gonic/gin"
	croncontrol "github.com/scoopworks/scoopworks/internal/api/cron"
	v1 "github.com/scoopworks/scoopworks/internal/api/v1"
	"github.com/scoopworks/scoopworks/internal/config"
	"github.com/scoopworks/scoopworks/internal/rest/middleware"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Pricing  *v1.PricingHandler
	Invoice  *v1.InvoiceHandler
	Activity *v1.ActivityHandler

	CronBilling *croncontrol.BillingHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1", middleware.OrganizationMiddleware)
	registerV1Routes(v1Group, handlers)

	cronGroup := router.Group("/cron", middleware.CronAuthMiddleware(cfg))
	registerCronRoutes(cronGroup, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	pricing := router.Group("/pricing")
	{
		pricing.POST("/quote", handlers.Pricing.GetQuote)
		pricing.POST("/rules", handlers.Pricing.CreateRule)
		pricing.GET("/rules", handlers.Pricing.ListRules)
	}

	invoices := router.Group("/invoices")
	{
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
		invoices.POST("/:id/finalize", handlers.Invoice.FinalizeInvoice)
		invoices.POST("/:id/void", handlers.Invoice.VoidInvoice)
		invoices.POST("/:id/payments", handlers.Invoice.RecordPayment)
		invoices.POST("/bulk", handlers.Invoice.BulkAction)
	}

	router.GET("/activity", handlers.Activity.ListActivity)
}

func registerCronRoutes(router *gin.RouterGroup, handlers Handlers) {
	billing := router.Group("/billing")
	{
		billing.POST("/generate-invoices", handlers.CronBilling.GenerateInvoices)
	}
}
