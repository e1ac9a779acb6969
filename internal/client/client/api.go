package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/dmitrijs2005/paperkeeper/internal/client/models"
	"github.com/dmitrijs2005/paperkeeper/internal/netx"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	return c.call(ctx, http.MethodPost, "/api/auth/register", credentials{username, password}, nil, false)
}

// Login stores the returned token pair on success.
func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	var pair models.TokenPair
	if err := c.call(ctx, http.MethodPost, "/api/auth/login", credentials{username, password}, &pair, false); err != nil {
		return err
	}
	c.SetTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

// Logout revokes the server-side refresh tokens and forgets the local pair
// even when the server call fails.
func (c *HTTPClient) Logout(ctx context.Context) error {
	err := c.call(ctx, http.MethodPost, "/api/auth/logout", nil, nil, true)
	c.SetTokens("", "")
	return err
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.call(ctx, http.MethodGet, "/api/categories", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	var out models.Category
	if err := c.call(ctx, http.MethodPost, "/api/categories", in, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetCategory(ctx context.Context, id string) (*models.CategoryDetail, error) {
	var out models.CategoryDetail
	if err := c.call(ctx, http.MethodGet, "/api/categories/"+url.PathEscape(id), nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error) {
	var out models.Category
	if err := c.call(ctx, http.MethodPatch, "/api/categories/"+url.PathEscape(id), patch, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteCategory(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, nil, true)
}

func (c *HTTPClient) CreatePaper(ctx context.Context, categoryID, pdfURL string) (*models.Paper, error) {
	var out models.Paper
	in := map[string]string{"url": pdfURL}
	if err := c.call(ctx, http.MethodPost, "/api/categories/"+url.PathEscape(categoryID)+"/papers", in, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetPaper(ctx context.Context, id string) (*models.PaperDetail, error) {
	var out models.PaperDetail
	if err := c.call(ctx, http.MethodGet, "/api/papers/"+url.PathEscape(id), nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdatePaper(ctx context.Context, id string, patch models.PaperPatch) (*models.Paper, error) {
	var out models.Paper
	if err := c.call(ctx, http.MethodPatch, "/api/papers/"+url.PathEscape(id), patch, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeletePaper(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/papers/"+url.PathEscape(id), nil, nil, true)
}

func (c *HTTPClient) SaveNotes(ctx context.Context, paperID string, content json.RawMessage) (*models.Note, error) {
	var out models.Note
	in := map[string]json.RawMessage{"content": content}
	if err := c.call(ctx, http.MethodPut, "/api/papers/"+url.PathEscape(paperID)+"/notes", in, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) PresignUpload(ctx context.Context) (*models.UploadTicket, error) {
	var out models.UploadTicket
	if err := c.call(ctx, http.MethodPost, "/api/uploads", nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadPDF stores a local file in object storage and returns the URL a
// paper can be created from.
func (c *HTTPClient) UploadPDF(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	ticket, err := c.PresignUpload(ctx)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}

	if err := netx.UploadToPresignedURL(ctx, c.http, ticket.UploadURL, data); err != nil {
		return "", err
	}
	return ticket.FileURL, nil
}
