// Package httpapi exposes the PaperKeeper procedures over HTTP using gin.
//
// Every route below /api except the auth endpoints requires a bearer access
// token. Errors are returned as {"error": "...", "details": "..."} with a
// status derived from the common sentinel errors.
package httpapi
