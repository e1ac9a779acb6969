package models

import "time"

// Category is a user-owned library grouping papers.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ColorScheme string    `json:"colorScheme"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryInput is the payload of a category create.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ColorScheme string `json:"colorScheme"`
}

// CategoryDetail is a category together with its papers, the value cached
// under the per-category key.
type CategoryDetail struct {
	Category
	Papers []Paper `json:"paper"`
}

// CategoryPatch carries the fields of an update; nil means "leave as is".
type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ColorScheme *string `json:"colorScheme,omitempty"`
}

func (p CategoryPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.ColorScheme == nil
}
