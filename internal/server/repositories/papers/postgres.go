package papers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/dmitrijs2005/paperkeeper/internal/dbx"
	"github.com/dmitrijs2005/paperkeeper/internal/server/models"
)

const columns = `id, name, url, author, color_scheme, category_id, user_id, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPaper(s scanner, extra ...any) (*models.Paper, error) {
	p := &models.Paper{}
	var author sql.NullString
	dest := append([]any{&p.ID, &p.Name, &p.URL, &author, &p.ColorScheme, &p.CategoryID, &p.UserID, &p.CreatedAt, &p.UpdatedAt}, extra...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	if author.Valid {
		p.Author = &author.String
	}
	return p, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Paper) (*models.Paper, error) {
	query :=
		`INSERT INTO papers (id, name, url, author, color_scheme, category_id, user_id)
		 SELECT $1, $2, $3, $4, $5, c.id, c.user_id
		 FROM categories c
		 WHERE c.id = $6 AND c.user_id = $7
		 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, p.ID, p.Name, p.URL, nullable(p.Author), p.ColorScheme, p.CategoryID, p.UserID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetWithNotes(ctx context.Context, userID, paperID string) (*models.PaperDetail, error) {
	query :=
		`SELECT p.id, p.name, p.url, p.author, p.color_scheme, p.category_id, p.user_id, p.created_at, p.updated_at,
		        n.id, n.content, n.created_at, n.updated_at
		 FROM papers p
		 LEFT JOIN notes n ON n.paper_id = p.id
		 WHERE p.id = $1 AND p.user_id = $2`

	var (
		noteID                   sql.NullString
		content                  []byte
		noteCreated, noteUpdated sql.NullTime
	)
	p, err := scanPaper(r.db.QueryRowContext(ctx, query, paperID, userID), &noteID, &content, &noteCreated, &noteUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	detail := &models.PaperDetail{Paper: *p, Notes: make([]models.Note, 0, 1)}
	if noteID.Valid {
		detail.Notes = append(detail.Notes, models.Note{
			ID:        noteID.String,
			PaperID:   p.ID,
			Content:   content,
			CreatedAt: noteCreated.Time,
			UpdatedAt: noteUpdated.Time,
		})
	}
	return detail, nil
}

func (r *PostgresRepository) ListByCategory(ctx context.Context, userID, categoryID string) ([]models.Paper, error) {
	query := `SELECT ` + columns + ` FROM papers
		 WHERE category_id = $1 AND user_id = $2
		 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, categoryID, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Paper, 0)
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, paperID string, patch models.PaperPatch) (*models.Paper, error) {
	query :=
		`UPDATE papers
		 SET name = COALESCE($3, name),
		     author = COALESCE($4, author),
		     color_scheme = COALESCE($5, color_scheme),
		     updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + columns

	row := r.db.QueryRowContext(ctx, query, paperID, userID,
		nullable(patch.Name), nullable(patch.Author), nullable(patch.ColorScheme))

	p, err := scanPaper(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, paperID string) (string, error) {
	query :=
		`DELETE FROM papers
		 WHERE id = $1 AND user_id = $2
		 RETURNING category_id`

	var categoryID string
	if err := r.db.QueryRowContext(ctx, query, paperID, userID).Scan(&categoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return categoryID, nil
}
