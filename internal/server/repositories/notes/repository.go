// Package notes persists the single notes document attached to a paper.
package notes

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/paperkeeper/internal/server/models"
)

type Repository interface {
	// Upsert creates or replaces the notes of an owned paper in one statement
	// and returns the stored note with the paper's category id. A missing or
	// foreign paper yields common.ErrorNotFound. noteID is used only on insert.
	Upsert(ctx context.Context, userID, paperID, noteID string, content json.RawMessage) (*models.Note, string, error)
}
