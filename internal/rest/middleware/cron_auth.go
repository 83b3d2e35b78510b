package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/scoopworks/scoopworks/internal/config"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
)

// CronAuthMiddleware guards the scheduled endpoints with a bearer shared
// secret. An unset secret disables the cron surface rather than leaving it
// open.
func CronAuthMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Cron.Secret == "" {
			c.Error(ierr.NewError("cron secret is not configured").
				WithHint("Scheduled endpoints are disabled until a cron secret is set").
				Mark(ierr.ErrSystem))
			c.Abort()
			return
		}

		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(cfg.Cron.Secret)) != 1 {
			c.Error(ierr.NewError("invalid cron secret").
				WithHint("Unauthorized").
				Mark(ierr.ErrUnauthorized))
			c.Abort()
			return
		}

		c.Next()
	}
}
