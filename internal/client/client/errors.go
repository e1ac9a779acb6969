package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
)

var ErrUnavailable = errors.New("server unavailable")

// errorBody is the server's failure payload.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

const tokenExpiredMessage = "Token expired"

func mapStatus(status int, body errorBody) error {
	var target error
	switch {
	case status == http.StatusTooManyRequests:
		target = common.ErrorRateLimited
	case status == http.StatusBadRequest:
		target = common.ErrorBadRequest
	case status == http.StatusRequestEntityTooLarge:
		target = common.ErrorPayloadTooLarge
	case status == http.StatusNotFound:
		target = common.ErrorNotFound
	case status == http.StatusConflict:
		target = common.ErrorAlreadyExists
	case status == http.StatusUnauthorized && body.Error == tokenExpiredMessage:
		target = common.ErrTokenExpired
	case status == http.StatusUnauthorized:
		target = common.ErrorUnauthorized
	case status == http.StatusGatewayTimeout:
		target = common.ErrorUpstreamTimeout
	default:
		target = common.ErrorInternal
	}

	msg := body.Details
	if msg == "" {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("%w: %s", target, msg)
}
