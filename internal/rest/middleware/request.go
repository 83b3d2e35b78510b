package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/scoopworks/scoopworks/internal/types"
)

// RequestIDMiddleware tags every request with an id for log correlation
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUID()
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)

	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}

// OrganizationMiddleware resolves the acting organization and user from
// request headers. Authentication proper is handled upstream; in local
// mode the default organization is assumed.
func OrganizationMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	orgID := c.GetHeader(types.HeaderOrganizationID)
	if orgID == "" {
		orgID = types.DefaultOrganizationID
	}
	ctx = types.SetOrganizationID(ctx, orgID)

	if userID := c.GetHeader(types.HeaderUserID); userID != "" {
		ctx = types.SetUserID(ctx, userID)
	}

	c.Request = c.Request.WithContext(ctx)
	c.Next()
}
