package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/paperkeeper/internal/logging"
	"github.com/dmitrijs2005/paperkeeper/internal/server/models"
	"github.com/dmitrijs2005/paperkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, userID string) error
}

type CategoryService interface {
	Create(ctx context.Context, userID, clientID string, in models.CategoryInput) (*models.Category, error)
	List(ctx context.Context, userID string) ([]models.Category, error)
	Get(ctx context.Context, userID, categoryID string) (*models.CategoryDetail, error)
	Update(ctx context.Context, userID, clientID, categoryID string, patch models.CategoryPatch) (*models.Category, error)
	Delete(ctx context.Context, userID, clientID, categoryID string) error
}

type PaperService interface {
	Create(ctx context.Context, userID, clientID, categoryID, url string) (*models.Paper, error)
	Get(ctx context.Context, userID, paperID string) (*models.PaperDetail, error)
	UpsertNote(ctx context.Context, userID, paperID string, content json.RawMessage) (*models.Note, error)
	Update(ctx context.Context, userID, clientID, paperID string, patch models.PaperPatch) (*models.Paper, error)
	Delete(ctx context.Context, userID, clientID, paperID string) error
}

type UploadService interface {
	Presign(ctx context.Context, userID, clientID string) (*models.UploadTicket, error)
}

type SummaryService interface {
	Summarize(ctx context.Context, pageContent string, pageNumber int, emit func(string) error) error
}

// Services are the procedures the router dispatches to.
type Services struct {
	Users      UserService
	Categories CategoryService
	Papers     PaperService
	Uploads    UploadService
	Summaries  SummaryService
}

type handler struct {
	Services
	logger logging.Logger
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// NewRouter builds the gin engine. secret verifies access tokens.
func NewRouter(svc Services, secret []byte, l logging.Logger) *gin.Engine {
	logger := l.With("module", "http")
	h := &handler{Services: svc, logger: logger}

	r := gin.New()
	r.Use(recovery(logger), requestLogger(logger))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)
	authGroup.POST("/refresh", h.refresh)

	protected := api.Group("")
	protected.Use(authRequired(secret, logger))

	protected.POST("/auth/logout", h.logout)

	protected.GET("/categories", h.listCategories)
	protected.POST("/categories", h.createCategory)
	protected.GET("/categories/:id", h.getCategory)
	protected.PATCH("/categories/:id", h.updateCategory)
	protected.DELETE("/categories/:id", h.deleteCategory)
	protected.POST("/categories/:id/papers", h.createPaper)

	protected.GET("/papers/:id", h.getPaper)
	protected.PATCH("/papers/:id", h.updatePaper)
	protected.DELETE("/papers/:id", h.deletePaper)
	protected.PUT("/papers/:id/notes", h.upsertNote)

	protected.POST("/uploads", h.presignUpload)
	protected.POST("/summarize", h.summarize)

	return r
}
