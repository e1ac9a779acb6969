// Package server wires the PaperKeeper server together: storage, cache,
// rate limiting, the HTTP API and the gRPC health endpoint, and runs them
// until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/paperkeeper/internal/logging"
	"github.com/dmitrijs2005/paperkeeper/internal/netx"
	"github.com/dmitrijs2005/paperkeeper/internal/server/cache"
	"github.com/dmitrijs2005/paperkeeper/internal/server/config"
	"github.com/dmitrijs2005/paperkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/paperkeeper/internal/server/ratelimit"
	"github.com/dmitrijs2005/paperkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/paperkeeper/internal/server/services"
	"github.com/dmitrijs2005/paperkeeper/internal/server/summarizer"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/paperkeeper/internal/server/grpc"
)

// rate limit keys are ratelimit:api:<client>:<window>
const rateLimitPrefix = "api"

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	redis    *redis.Client
	cache    *cache.Accessor
	services httpapi.Services
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	var (
		store   cache.Store
		limiter ratelimit.Limiter
	)
	switch c.CacheBackend {
	case config.CacheBackendRedis:
		app.redis = redis.NewClient(&redis.Options{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		store = cache.NewRedisStore(app.redis)
		limiter = ratelimit.NewRedisLimiter(app.redis, rateLimitPrefix, c.RateLimit, c.RateLimitWindow)
	default:
		store = cache.NewMemoryStore(c.CacheSize, c.CacheTTL)
		limiter = ratelimit.NewMemoryLimiter(c.RateLimit, c.RateLimitWindow)
	}

	app.cache = cache.NewAccessor(store, c.CacheTTL, logger)
	guard := ratelimit.NewGuard(limiter, logger)

	lib := &services.Library{
		DB:          db,
		RepoManager: rm,
		Cache:       app.cache,
		Limiter:     guard,
		Logger:      logger.With("module", "library"),
	}

	fetcher := netx.NewFetcher(&http.Client{Timeout: c.PDFFetchTimeout}, c.MaxPDFBytes, c.AllowLocalPDFHosts)
	sum := summarizer.NewClient(c.OpenAIBaseURL, c.OpenAIAPIKey, c.SummaryModel, c.SummaryMaxTokens)

	app.services = httpapi.Services{
		Users:      services.NewUserService(db, rm, c),
		Categories: services.NewCategoryService(lib),
		Papers:     services.NewPaperService(lib, fetcher),
		Uploads:    services.NewUploadService(c, guard),
		Summaries:  services.NewSummaryService(sum, c.SummarizeMaxDuration, logger),
	}

	logger.Info(ctx, "app initialized", "cache", c.CacheBackend)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	router := httpapi.NewRouter(app.services, []byte(app.config.SecretKey), app.logger)
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, router, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if app.config.EndpointAddrGRPC == "" {
		return
	}

	s := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.logger, app.config.HealthCheckInterval,
		gs.Check{Name: "postgres", Ping: app.db.PingContext},
		gs.Check{Name: "cache", Ping: app.cache.Ping},
	)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a signal arrives or a server fails, then closes the
// database and redis connections.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close(context.Background())
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(ctx, "redis close", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
