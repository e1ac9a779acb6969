package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/dmitrijs2005/paperkeeper/internal/dbx"
	"github.com/dmitrijs2005/paperkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, userID, paperID, noteID string, content json.RawMessage) (*models.Note, string, error) {
	query :=
		`WITH owned AS (
		     SELECT id, category_id FROM papers WHERE id = $3 AND user_id = $4
		 ), upserted AS (
		     INSERT INTO notes (id, paper_id, content)
		     SELECT $1, owned.id, $2 FROM owned
		     ON CONFLICT (paper_id) DO UPDATE SET content = EXCLUDED.content, updated_at = now()
		     RETURNING id, paper_id, content, created_at, updated_at
		 )
		 SELECT u.id, u.paper_id, u.content, u.created_at, u.updated_at, owned.category_id
		 FROM upserted u JOIN owned ON owned.id = u.paper_id`

	n := &models.Note{}
	var (
		stored     []byte
		categoryID string
	)
	err := r.db.QueryRowContext(ctx, query, noteID, []byte(content), paperID, userID).
		Scan(&n.ID, &n.PaperID, &stored, &n.CreatedAt, &n.UpdatedAt, &categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", common.ErrorNotFound
		}
		return nil, "", fmt.Errorf("db error: %w", err)
	}
	n.Content = json.RawMessage(stored)
	return n, categoryID, nil
}
