package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/dmitrijs2005/paperkeeper/internal/logging"
	"github.com/gin-gonic/gin"
)

const internalMessage = "An unexpected error occurred, please try again later."

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type classification struct {
	target  error
	status  int
	message string
}

// Checked in order; the first match wins.
var classifications = []classification{
	{common.ErrorRateLimited, http.StatusTooManyRequests, "Too many requests, please try again later."},
	{common.ErrorBadRequest, http.StatusBadRequest, "Bad request"},
	{common.ErrorPayloadTooLarge, http.StatusRequestEntityTooLarge, "Payload too large"},
	{common.ErrorNotFound, http.StatusNotFound, "Not found"},
	{common.ErrorAlreadyExists, http.StatusConflict, "Already exists"},
	{common.ErrTokenExpired, http.StatusUnauthorized, "Token expired"},
	{common.ErrRefreshTokenExpired, http.StatusUnauthorized, "Refresh token expired"},
	{common.ErrInvalidToken, http.StatusUnauthorized, "Unauthorized"},
	{common.ErrorUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{common.ErrorUpstreamTimeout, http.StatusGatewayTimeout, "Summarization timed out"},
}

// Classify maps err to an HTTP status and response body. Unclassified
// errors become a generic 500 without details.
func Classify(err error) (int, ErrorResponse) {
	for _, c := range classifications {
		if errors.Is(err, c.target) {
			return c.status, ErrorResponse{Error: c.message, Details: err.Error()}
		}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: internalMessage}
}

func writeError(c *gin.Context, logger logging.Logger, err error) {
	status, body := Classify(err)
	if status == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, body)
}
