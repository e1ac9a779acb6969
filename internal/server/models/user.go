// Package models defines server-side data models persisted in the database
// and returned by the HTTP API.
package models

import "time"

type User struct {
	ID           string    `json:"id"`
	UserName     string    `json:"username"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
