package cron

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scoopworks/scoopworks/internal/logger"
	"github.com/scoopworks/scoopworks/internal/service"
)

// BillingHandler handles the scheduled billing jobs
type BillingHandler struct {
	generatorService service.InvoiceGeneratorService
	logger           *logger.Logger
}

func NewBillingHandler(generatorService service.InvoiceGeneratorService, logger *logger.Logger) *BillingHandler {
	return &BillingHandler{
		generatorService: generatorService,
		logger:           logger,
	}
}

// GenerateInvoices runs the monthly draft invoice generation. Per-client
// failures are reported in the summary body; the request fails only when
// no organization can be enumerated at all.
func (h *BillingHandler) GenerateInvoices(c *gin.Context) {
	h.logger.Infow("starting scheduled invoice generation")

	summary, err := h.generatorService.GenerateDraftInvoices(c.Request.Context())
	if err != nil {
		h.logger.Errorw("invoice generation run failed", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
