// Package papers persists PDF papers. Reads and writes are scoped by
// user_id; mutations report the owning category so callers can invalidate it.
package papers

import (
	"context"

	"github.com/dmitrijs2005/paperkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts p only if p.CategoryID belongs to p.UserID, else common.ErrorNotFound.
	Create(ctx context.Context, p *models.Paper) (*models.Paper, error)
	// GetWithNotes returns the paper and its notes (zero or one).
	GetWithNotes(ctx context.Context, userID, paperID string) (*models.PaperDetail, error)
	// ListByCategory returns the papers of a category, oldest first.
	ListByCategory(ctx context.Context, userID, categoryID string) ([]models.Paper, error)
	// Update applies the non-nil patch fields and returns the updated row.
	Update(ctx context.Context, userID, paperID string, patch models.PaperPatch) (*models.Paper, error)
	// Delete removes the paper and returns the category it belonged to.
	Delete(ctx context.Context, userID, paperID string) (string, error)
}
