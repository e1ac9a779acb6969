// Package common defines shared constants and sentinel errors used across
// client and server layers of PaperKeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Request classification errors surfaced to API callers.
	ErrorRateLimited     = errors.New("rate limited")
	ErrorBadRequest      = errors.New("bad request")
	ErrorPayloadTooLarge = errors.New("payload too large")
	ErrorUpstreamTimeout = errors.New("upstream timeout")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
