package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/dmitrijs2005/paperkeeper/internal/dbx"
	"github.com/dmitrijs2005/paperkeeper/internal/server/models"
)

const columns = `id, name, description, color_scheme, user_id, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(s scanner) (*models.Category, error) {
	c := &models.Category{}
	if err := s.Scan(&c.ID, &c.Name, &c.Description, &c.ColorScheme, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	query :=
		`INSERT INTO categories (id, name, description, color_scheme, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, c.ID, c.Name, c.Description, c.ColorScheme, c.UserID).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Category, error) {
	query := `SELECT ` + columns + ` FROM categories
		 WHERE user_id = $1
		 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, categoryID string) (*models.Category, error) {
	query := `SELECT ` + columns + ` FROM categories
		 WHERE id = $1 AND user_id = $2`

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, categoryID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, categoryID string, patch models.CategoryPatch) (*models.Category, error) {
	query :=
		`UPDATE categories
		 SET name = COALESCE($3, name),
		     description = COALESCE($4, description),
		     color_scheme = COALESCE($5, color_scheme),
		     updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + columns

	row := r.db.QueryRowContext(ctx, query, categoryID, userID,
		nullable(patch.Name), nullable(patch.Description), nullable(patch.ColorScheme))

	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, categoryID string) (bool, error) {
	query := `DELETE FROM categories WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, categoryID, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: unexpected rows affected: %d", common.ErrorInternal, n)
	}
}
