// Package client talks to the PaperKeeper HTTP API.
//
// HTTPClient keeps the session tokens, attaches the bearer token to every
// protected call and, when the server reports an expired access token,
// rotates the pair once through /api/auth/refresh and repeats the call.
//
// Non-2xx responses are mapped back onto the sentinel errors in
// internal/common, so callers use errors.Is exactly as the server does:
//
//	429 → common.ErrorRateLimited     400 → common.ErrorBadRequest
//	413 → common.ErrorPayloadTooLarge 404 → common.ErrorNotFound
//	409 → common.ErrorAlreadyExists   401 → common.ErrorUnauthorized
//	504 → common.ErrorUpstreamTimeout 5xx → common.ErrorInternal
//
// Transport failures are reported as ErrUnavailable.
package client
