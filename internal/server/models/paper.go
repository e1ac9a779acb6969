package models

import (
	"encoding/json"
	"time"
)

// DefaultColorScheme is assigned to papers created without an explicit color.
const DefaultColorScheme = "default"

// UntitledPaper is the name used when a PDF carries no title metadata.
const UntitledPaper = "untitled"

// Paper is one PDF document inside a category.
type Paper struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Author      *string   `json:"author"`
	ColorScheme string    `json:"colorScheme"`
	CategoryID  string    `json:"categoryId"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PaperDetail is a paper with its notes document (zero or one element).
type PaperDetail struct {
	Paper
	Notes []Note `json:"notes"`
}

// PaperPatch carries the fields of an update; nil means "leave as is".
type PaperPatch struct {
	Name        *string `json:"name,omitempty"`
	Author      *string `json:"author,omitempty"`
	ColorScheme *string `json:"colorScheme,omitempty"`
}

func (p PaperPatch) Empty() bool {
	return p.Name == nil && p.Author == nil && p.ColorScheme == nil
}

// Note holds the rich-text document attached to a paper. Content is kept
// as raw JSON and never interpreted beyond validation.
type Note struct {
	ID        string          `json:"id"`
	PaperID   string          `json:"paperId"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
