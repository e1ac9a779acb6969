package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/dmitrijs2005/paperkeeper/internal/dbx"
	"github.com/dmitrijs2005/paperkeeper/internal/logging"
	"github.com/dmitrijs2005/paperkeeper/internal/server/cache"
	"github.com/dmitrijs2005/paperkeeper/internal/server/models"
	"github.com/dmitrijs2005/paperkeeper/internal/server/ratelimit"
	"github.com/dmitrijs2005/paperkeeper/internal/server/repositories/categories"
	"github.com/dmitrijs2005/paperkeeper/internal/server/repositories/notes"
	"github.com/dmitrijs2005/paperkeeper/internal/server/repositories/papers"
	"github.com/dmitrijs2005/paperkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/paperkeeper/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// store is an in-memory library with the same ownership rules as the
// PostgreSQL repositories. Calls are counted per operation.
type store struct {
	mu         sync.Mutex
	categories map[string]models.Category
	papers     map[string]models.Paper
	notes      map[string]models.Note // by paper id
	calls      map[string]int
	seq        int
}

func newStore() *store {
	return &store{
		categories: map[string]models.Category{},
		papers:     map[string]models.Paper{},
		notes:      map[string]models.Note{},
		calls:      map[string]int{},
	}
}

func (s *store) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *store) writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, op := range []string{"categories.create", "categories.update", "categories.delete", "papers.create", "papers.update", "papers.delete", "notes.upsert"} {
		n += s.calls[op]
	}
	return n
}

func (s *store) tick() time.Time {
	s.seq++
	return time.Date(2024, 1, 1, 0, 0, s.seq, 0, time.UTC)
}

type fakeCategories struct{ *store }

func (f fakeCategories) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["categories.create"]++
	out := *c
	out.CreatedAt = f.tick()
	out.UpdatedAt = out.CreatedAt
	f.categories[c.ID] = out
	return &out, nil
}

func (f fakeCategories) ListByUser(_ context.Context, userID string) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["categories.list"]++
	out := []models.Category{}
	for _, c := range f.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f fakeCategories) Get(_ context.Context, userID, categoryID string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["categories.get"]++
	c, ok := f.categories[categoryID]
	if !ok || c.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (f fakeCategories) Update(_ context.Context, userID, categoryID string, patch models.CategoryPatch) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["categories.update"]++
	c, ok := f.categories[categoryID]
	if !ok || c.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.ColorScheme != nil {
		c.ColorScheme = *patch.ColorScheme
	}
	c.UpdatedAt = f.tick()
	f.categories[categoryID] = c
	return &c, nil
}

func (f fakeCategories) Delete(_ context.Context, userID, categoryID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["categories.delete"]++
	c, ok := f.categories[categoryID]
	if !ok || c.UserID != userID {
		return false, nil
	}
	delete(f.categories, categoryID)
	for id, p := range f.papers {
		if p.CategoryID == categoryID {
			delete(f.papers, id)
			delete(f.notes, id)
		}
	}
	return true, nil
}

type fakePapers struct{ *store }

func (f fakePapers) Create(_ context.Context, p *models.Paper) (*models.Paper, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["papers.create"]++
	c, ok := f.categories[p.CategoryID]
	if !ok || c.UserID != p.UserID {
		return nil, common.ErrorNotFound
	}
	out := *p
	out.CreatedAt = f.tick()
	out.UpdatedAt = out.CreatedAt
	f.papers[p.ID] = out
	return &out, nil
}

func (f fakePapers) GetWithNotes(_ context.Context, userID, paperID string) (*models.PaperDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["papers.get"]++
	p, ok := f.papers[paperID]
	if !ok || p.UserID != userID {
		return nil, common.ErrorNotFound
	}
	d := &models.PaperDetail{Paper: p, Notes: []models.Note{}}
	if n, ok := f.notes[paperID]; ok {
		d.Notes = append(d.Notes, n)
	}
	return d, nil
}

func (f fakePapers) ListByCategory(_ context.Context, userID, categoryID string) ([]models.Paper, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["papers.list"]++
	out := []models.Paper{}
	for _, p := range f.papers {
		if p.UserID == userID && p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f fakePapers) Update(_ context.Context, userID, paperID string, patch models.PaperPatch) (*models.Paper, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["papers.update"]++
	p, ok := f.papers[paperID]
	if !ok || p.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Author != nil {
		p.Author = patch.Author
	}
	if patch.ColorScheme != nil {
		p.ColorScheme = *patch.ColorScheme
	}
	p.UpdatedAt = f.tick()
	f.papers[paperID] = p
	return &p, nil
}

func (f fakePapers) Delete(_ context.Context, userID, paperID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["papers.delete"]++
	p, ok := f.papers[paperID]
	if !ok || p.UserID != userID {
		return "", common.ErrorNotFound
	}
	delete(f.papers, paperID)
	delete(f.notes, paperID)
	return p.CategoryID, nil
}

type fakeNotes struct{ *store }

func (f fakeNotes) Upsert(_ context.Context, userID, paperID, noteID string, content json.RawMessage) (*models.Note, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["notes.upsert"]++
	p, ok := f.papers[paperID]
	if !ok || p.UserID != userID {
		return nil, "", common.ErrorNotFound
	}
	n, ok := f.notes[paperID]
	if !ok {
		n = models.Note{ID: noteID, PaperID: paperID, CreatedAt: f.tick()}
	}
	n.Content = append(json.RawMessage(nil), content...)
	n.UpdatedAt = f.tick()
	f.notes[paperID] = n
	return &n, p.CategoryID, nil
}

type fakeRepoManager struct {
	st *store
	u  users.Repository
	r  refreshtokens.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error       { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) Categories(dbx.DBTX) categories.Repository       { return fakeCategories{m.st} }
func (m *fakeRepoManager) Papers(dbx.DBTX) papers.Repository               { return fakePapers{m.st} }
func (m *fakeRepoManager) Notes(dbx.DBTX) notes.Repository                 { return fakeNotes{m.st} }

// newTestLibrary wires the fakes to a real in-memory cache and limiter
// (10 requests per 30s).
func newTestLibrary() (*Library, *store, *cache.MemoryStore) {
	st := newStore()
	mem := cache.NewMemoryStore(100, time.Hour)
	return &Library{
		RepoManager: &fakeRepoManager{st: st},
		Cache:       cache.NewAccessor(mem, 300*time.Second, logging.Nop{}),
		Limiter:     ratelimit.NewGuard(ratelimit.NewMemoryLimiter(10, 30*time.Second), logging.Nop{}),
		Logger:      logging.Nop{},
	}, st, mem
}
