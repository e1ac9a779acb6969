// Package models holds the API payloads the CLI exchanges with the server.
package models

import (
	"encoding/json"
	"time"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ColorScheme string    `json:"colorScheme"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ColorScheme string `json:"colorScheme,omitempty"`
}

type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ColorScheme *string `json:"colorScheme,omitempty"`
}

type CategoryDetail struct {
	Category
	Papers []Paper `json:"paper"`
}

type Paper struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Author      *string   `json:"author"`
	ColorScheme string    `json:"colorScheme"`
	CategoryID  string    `json:"categoryId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PaperPatch struct {
	Name        *string `json:"name,omitempty"`
	Author      *string `json:"author,omitempty"`
	ColorScheme *string `json:"colorScheme,omitempty"`
}

type PaperDetail struct {
	Paper
	Notes []Note `json:"notes"`
}

type Note struct {
	ID        string          `json:"id"`
	PaperID   string          `json:"paperId"`
	Content   json.RawMessage `json:"content"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type UploadTicket struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"uploadUrl"`
	FileURL   string    `json:"fileUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}
