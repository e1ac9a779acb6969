// Package categories persists user-owned libraries. Every statement is
// scoped by user_id so a caller can never observe or mutate foreign rows.
package categories

import (
	"context"

	"github.com/dmitrijs2005/paperkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts c; ID must be set by the caller.
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	// ListByUser returns the user's categories, oldest first.
	ListByUser(ctx context.Context, userID string) ([]models.Category, error)
	// Get returns the category or common.ErrorNotFound when absent or foreign.
	Get(ctx context.Context, userID, categoryID string) (*models.Category, error)
	// Update applies the non-nil patch fields; common.ErrorNotFound when nothing matched.
	Update(ctx context.Context, userID, categoryID string, patch models.CategoryPatch) (*models.Category, error)
	// Delete removes the category (papers and notes cascade) and reports whether a row matched.
	Delete(ctx context.Context, userID, categoryID string) (bool, error)
}
