package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/dmitrijs2005/paperkeeper/internal/logging"
	"github.com/dmitrijs2005/paperkeeper/internal/netx"
	"github.com/dmitrijs2005/paperkeeper/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "userID"
	clientIDKey = "clientID"
)

func recovery(logger logging.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error(c.Request.Context(), "panic recovered", "path", c.Request.URL.Path, "panic", fmt.Sprint(recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: internalMessage})
	})
}

// requestLogger records the client identifier for rate limiting and logs
// one line per request.
func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		clientID := netx.ClientIP(c.Request)
		c.Set(clientIDKey, clientID)

		c.Next()

		logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client", clientID,
		)
	}
}

func authRequired(secret []byte, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			writeError(c, logger, fmt.Errorf("%w: missing bearer token", common.ErrorUnauthorized))
			return
		}

		userID, err := auth.GetUserIDFromToken(strings.TrimPrefix(header, common.BearerPrefix), secret)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func userID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func clientID(c *gin.Context) string {
	return c.GetString(clientIDKey)
}
