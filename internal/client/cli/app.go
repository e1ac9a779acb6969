package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/dmitrijs2005/paperkeeper/internal/client/client"
	"github.com/dmitrijs2005/paperkeeper/internal/client/config"
	"github.com/dmitrijs2005/paperkeeper/internal/client/layout"
	"github.com/dmitrijs2005/paperkeeper/internal/client/models"
	"github.com/dmitrijs2005/paperkeeper/internal/common"
)

// apiClient is the part of client.HTTPClient the commands use.
type apiClient interface {
	SetTokens(access, refresh string)
	Tokens() (access, refresh string)
	LoggedIn() bool
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.CategoryDetail, error)
	UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	CreatePaper(ctx context.Context, categoryID, pdfURL string) (*models.Paper, error)
	GetPaper(ctx context.Context, id string) (*models.PaperDetail, error)
	UpdatePaper(ctx context.Context, id string, patch models.PaperPatch) (*models.Paper, error)
	DeletePaper(ctx context.Context, id string) error
	SaveNotes(ctx context.Context, paperID string, content json.RawMessage) (*models.Note, error)
	UploadPDF(ctx context.Context, path string) (string, error)
	Summarize(ctx context.Context, pageContent string, pageNumber int, onChunk func(string)) error
}

type App struct {
	config   *config.Config
	api      apiClient
	userName string
	reader   *bufio.Reader
	out      io.Writer
	panes    *layout.Model
}

func NewApp(c *config.Config) (*App, error) {
	api := client.NewHTTPClient(c.ServerURL, &http.Client{}, c.RequestTimeout, c.SummarizeTimeout)

	s, err := loadSession(c.TokenFile)
	if err != nil {
		log.Printf("ignoring unreadable session file: %v", err)
	}
	api.SetTokens(s.AccessToken, s.RefreshToken)

	return &App{
		config:   c,
		api:      api,
		userName: s.UserName,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		panes:    layout.New(paneWriter{}),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(guest)"
	}
	if a.userName == "" {
		return "(logged in)"
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// persist writes the current tokens, which may have been rotated by the
// client, to the session file.
func (a *App) persist() {
	access, refresh := a.api.Tokens()
	s := session{UserName: a.userName, AccessToken: access, RefreshToken: refresh}
	if err := saveSession(a.config.TokenFile, s); err != nil {
		log.Printf("could not save session: %v", err)
	}
}

func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to PaperKeeper CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
	a.persist()
}

// describe turns an API error into a line for the user.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrorRateLimited):
		return "Too many requests, please try again later."
	case errors.Is(err, common.ErrorUpstreamTimeout):
		return "The summary took too long and was stopped."
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrTokenExpired):
		return "Please log in first."
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable."
	case errors.Is(err, common.ErrorInternal):
		return "An unexpected error occurred, please try again later."
	}
	return err.Error()
}
