package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/dmitrijs2005/paperkeeper/internal/server/cache"
	"github.com/dmitrijs2005/paperkeeper/internal/server/models"
	"github.com/google/uuid"
)

type CategoryService struct {
	*Library
}

func NewCategoryService(lib *Library) *CategoryService {
	return &CategoryService{Library: lib}
}

// Create inserts a category owned by userID and drops the list snapshot.
func (s *CategoryService) Create(ctx context.Context, userID, clientID string, in models.CategoryInput) (*models.Category, error) {
	if err := s.Limiter.Check(ctx, clientID); err != nil {
		return nil, err
	}

	name, err := requireText("name", in.Name)
	if err != nil {
		return nil, err
	}
	color := in.ColorScheme
	if color == "" {
		color = models.DefaultColorScheme
	}

	c, err := s.RepoManager.Categories(s.DB).Create(ctx, &models.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		ColorScheme: color,
		UserID:      userID,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating category: %w", err)
	}

	s.invalidate(ctx, cache.CategoryListKey(userID))
	return c, nil
}

// List returns the user's categories, served from cache when possible.
func (s *CategoryService) List(ctx context.Context, userID string) ([]models.Category, error) {
	return cache.ReadThrough(ctx, s.Cache, cache.CategoryListKey(userID), func(ctx context.Context) ([]models.Category, error) {
		list, err := s.RepoManager.Categories(s.DB).ListByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("error listing categories: %w", err)
		}
		return list, nil
	})
}

// Get returns the category with its papers. Foreign and missing categories
// are both common.ErrorNotFound and are never cached.
func (s *CategoryService) Get(ctx context.Context, userID, categoryID string) (*models.CategoryDetail, error) {
	categoryID, err := canonicalID(categoryID)
	if err != nil {
		return nil, err
	}

	return cache.ReadThrough(ctx, s.Cache, cache.CategoryKey(userID, categoryID), func(ctx context.Context) (*models.CategoryDetail, error) {
		c, err := s.RepoManager.Categories(s.DB).Get(ctx, userID, categoryID)
		if err != nil {
			return nil, err
		}
		papers, err := s.RepoManager.Papers(s.DB).ListByCategory(ctx, userID, categoryID)
		if err != nil {
			return nil, fmt.Errorf("error listing papers: %w", err)
		}
		return &models.CategoryDetail{Category: *c, Papers: papers}, nil
	})
}

// Update applies the set fields of patch; an empty patch is a bad request.
func (s *CategoryService) Update(ctx context.Context, userID, clientID, categoryID string, patch models.CategoryPatch) (*models.Category, error) {
	if err := s.Limiter.Check(ctx, clientID); err != nil {
		return nil, err
	}
	categoryID, err := canonicalID(categoryID)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", common.ErrorBadRequest)
	}

	if patch.Name, err = trimPatchText("name", patch.Name, true); err != nil {
		return nil, err
	}

	c, err := s.RepoManager.Categories(s.DB).Update(ctx, userID, categoryID, patch)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cache.CategoryListKey(userID), cache.CategoryKey(userID, categoryID))
	return c, nil
}

// Delete removes the category with its papers and notes. Deleting a
// missing or foreign category is a silent no-op.
func (s *CategoryService) Delete(ctx context.Context, userID, clientID, categoryID string) error {
	if err := s.Limiter.Check(ctx, clientID); err != nil {
		return err
	}
	categoryID, err := canonicalID(categoryID)
	if err != nil {
		return nil
	}

	deleted, err := s.RepoManager.Categories(s.DB).Delete(ctx, userID, categoryID)
	if err != nil {
		return fmt.Errorf("error deleting category: %w", err)
	}
	if deleted {
		s.Logger.Info(ctx, "category deleted", "category_id", categoryID, "user_id", userID)
	}

	s.invalidate(ctx, cache.CategoryListKey(userID), cache.CategoryKey(userID, categoryID))
	return nil
}
