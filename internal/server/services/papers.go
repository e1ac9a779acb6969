package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/dmitrijs2005/paperkeeper/internal/notesdoc"
	"github.com/dmitrijs2005/paperkeeper/internal/server/cache"
	"github.com/dmitrijs2005/paperkeeper/internal/server/models"
	"github.com/dmitrijs2005/paperkeeper/internal/server/pdfmeta"
	"github.com/google/uuid"
)

// PDFFetcher downloads a PDF from a user-supplied URL.
type PDFFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type PaperService struct {
	*Library
	fetcher PDFFetcher
	extract func([]byte) (pdfmeta.Metadata, error)
}

func NewPaperService(lib *Library, fetcher PDFFetcher) *PaperService {
	return &PaperService{Library: lib, fetcher: fetcher, extract: pdfmeta.Extract}
}

// Create fetches the PDF at url, reads its metadata and stores a paper in
// the caller's category. Every fetch and parse check runs before the insert.
func (s *PaperService) Create(ctx context.Context, userID, clientID, categoryID, url string) (*models.Paper, error) {
	if err := s.Limiter.Check(ctx, clientID); err != nil {
		return nil, err
	}
	categoryID, err := canonicalID(categoryID)
	if err != nil {
		return nil, err
	}

	url, err = requireText("url", url)
	if err != nil {
		return nil, err
	}

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	meta, err := s.extract(body)
	if err != nil {
		return nil, err
	}

	p, err := s.RepoManager.Papers(s.DB).Create(ctx, &models.Paper{
		ID:          uuid.NewString(),
		Name:        meta.Title,
		URL:         url,
		Author:      meta.Author,
		ColorScheme: models.DefaultColorScheme,
		CategoryID:  categoryID,
		UserID:      userID,
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info(ctx, "paper created", "paper_id", p.ID, "category_id", categoryID, "bytes", len(body))
	s.invalidate(ctx, cache.CategoryKey(userID, categoryID))
	return p, nil
}

// Get returns the paper with its notes.
func (s *PaperService) Get(ctx context.Context, userID, paperID string) (*models.PaperDetail, error) {
	paperID, err := canonicalID(paperID)
	if err != nil {
		return nil, err
	}
	return s.RepoManager.Papers(s.DB).GetWithNotes(ctx, userID, paperID)
}

// UpsertNote stores content as the paper's single notes document.
func (s *PaperService) UpsertNote(ctx context.Context, userID, paperID string, content json.RawMessage) (*models.Note, error) {
	paperID, err := canonicalID(paperID)
	if err != nil {
		return nil, err
	}
	if err := notesdoc.Validate(content); err != nil {
		return nil, err
	}

	note, categoryID, err := s.RepoManager.Notes(s.DB).Upsert(ctx, userID, paperID, uuid.NewString(), content)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cache.CategoryKey(userID, categoryID))
	return note, nil
}

// Update applies the set fields of patch; an empty patch is a bad request.
func (s *PaperService) Update(ctx context.Context, userID, clientID, paperID string, patch models.PaperPatch) (*models.Paper, error) {
	if err := s.Limiter.Check(ctx, clientID); err != nil {
		return nil, err
	}
	paperID, err := canonicalID(paperID)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", common.ErrorBadRequest)
	}

	if patch.Name, err = trimPatchText("name", patch.Name, true); err != nil {
		return nil, err
	}
	if patch.ColorScheme, err = trimPatchText("colorScheme", patch.ColorScheme, true); err != nil {
		return nil, err
	}

	p, err := s.RepoManager.Papers(s.DB).Update(ctx, userID, paperID, patch)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cache.CategoryKey(userID, p.CategoryID))
	return p, nil
}

// Delete removes the paper; a missing or foreign paper is common.ErrorNotFound.
func (s *PaperService) Delete(ctx context.Context, userID, clientID, paperID string) error {
	if err := s.Limiter.Check(ctx, clientID); err != nil {
		return err
	}
	paperID, err := canonicalID(paperID)
	if err != nil {
		return err
	}

	categoryID, err := s.RepoManager.Papers(s.DB).Delete(ctx, userID, paperID)
	if err != nil {
		return err
	}

	s.invalidate(ctx, cache.CategoryKey(userID, categoryID))
	return nil
}
