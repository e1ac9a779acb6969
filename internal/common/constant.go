// Package common contains shared constants and sentinel errors used across
// PaperKeeper components.
package common

const (
	// AuthorizationHeaderName carries the bearer access token on API requests.
	AuthorizationHeaderName = "Authorization"
	// BearerPrefix precedes the access token inside the Authorization header.
	BearerPrefix = "Bearer "

	// ForwardedForHeaderName and RealIPHeaderName identify the caller behind a proxy.
	ForwardedForHeaderName = "X-Forwarded-For"
	RealIPHeaderName       = "X-Real-IP"
)
