package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/logger"
	"github.com/scoopworks/scoopworks/internal/service"
	"github.com/scoopworks/scoopworks/internal/types"
)

type ActivityHandler struct {
	activityService service.ActivityService
	logger          *logger.Logger
}

func NewActivityHandler(activityService service.ActivityService, logger *logger.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		logger:          logger,
	}
}

// ListActivity lists audit entries, newest first
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	var filter types.QueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.logger.Errorw("failed to bind query parameters", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid query parameters").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.activityService.ListActivity(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
