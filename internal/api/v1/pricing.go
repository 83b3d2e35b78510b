package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scoopworks/scoopworks/internal/api/dto"
	"github.com/scoopworks/scoopworks/internal/domain/pricingrule"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/logger"
	"github.com/scoopworks/scoopworks/internal/service"
	"github.com/scoopworks/scoopworks/internal/types"
)

type PricingHandler struct {
	pricingService service.PricingService
	logger         *logger.Logger
}

func NewPricingHandler(pricingService service.PricingService, logger *logger.Logger) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
		logger:         logger,
	}
}

// GetQuote returns a dollar-denominated quote. A dog count outside every
// configured band still answers 200 with price_not_configured set.
func (h *PricingHandler) GetQuote(c *gin.Context) {
	var req dto.PriceQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind quote request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.pricingService.GetQuote(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateRule adds a new pricing band version
func (h *PricingHandler) CreateRule(c *gin.Context) {
	var rule pricingrule.PricingRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		h.logger.Errorw("failed to bind pricing rule", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.pricingService.CreateRule(c.Request.Context(), &rule)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListRules lists pricing bands, optionally restricted to one frequency
func (h *PricingHandler) ListRules(c *gin.Context) {
	var filter types.PricingRuleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.logger.Errorw("failed to bind query parameters", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid query parameters").Mark(ierr.ErrValidation))
		return
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.pricingService.ListRules(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
