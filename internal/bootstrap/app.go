package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"resume-builder/internal/llm"
	openai "resume-builder/internal/llm/openai"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/storage/db"
	mongostore "resume-builder/internal/shared/storage/mongo"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/suggestions"
	"resume-builder/internal/web"
)

// Store kinds reported by /api/health.
const (
	StoreMongo       = "mongo"
	StorePostgres    = "postgres"
	StoreMemory      = "memory"
	StoreUnavailable = "unavailable"
)

const memoryScheme = "memory://"

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	StoreKind      string
	ResumesRepo    resumes.Repo
	ResumesService *resumes.Service
	SuggestService *suggestions.Service

	closers []func(context.Context) error
}

// Build prepares dependencies and wires routes. Store connection failures do
// not abort startup; resume inserts fail until the process is restarted.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{Config: cfg}
	app.ResumesRepo, app.StoreKind = app.buildRepo(ctx)

	completer, err := buildCompleter(cfg)
	if err != nil {
		return nil, err
	}

	app.ResumesService = &resumes.Service{Repo: app.ResumesRepo, Now: time.Now}
	app.SuggestService = suggestions.NewService(completer)

	var limit gin.HandlerFunc
	rule := middleware.RateLimitRule{Rate: cfg.SuggestRateLimit, Burst: cfg.SuggestRateBurst}
	if rule.Enabled() {
		limit = middleware.RateLimit("suggest", rule, middleware.NewRateLimiter(nil))
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		ResumeHandler:  resumes.NewHandler(app.ResumesService),
		SuggestHandler: suggestions.NewHandler(app.SuggestService, limit),
		Health:         health.NewService(app.StoreKind),
		Assets:         web.NewAssets(cfg.StaticDir),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":        cfg.Env,
		"store":      app.StoreKind,
		"ai_enabled": completer != nil,
		"static_dir": cfg.StaticDir,
	})
	return app, nil
}

func (a *App) buildRepo(ctx context.Context) (resumes.Repo, string) {
	uri := strings.TrimSpace(a.Config.StoreURI)
	switch {
	case uri == "":
		telemetry.Warn("bootstrap.store_unconfigured", nil)
		return resumes.UnavailableRepo{Cause: errors.New("no store URI configured")}, StoreUnavailable

	case strings.HasPrefix(strings.ToLower(uri), memoryScheme):
		return resumes.NewMemoryRepo(), StoreMemory

	case mongostore.IsMongoURI(uri):
		client, err := mongostore.Connect(ctx, uri, mongostore.DefaultOptions())
		if err != nil {
			return a.unavailable("mongo", err)
		}
		a.closers = append(a.closers, client.Close)
		return resumes.NewMongoRepo(client.Database), StoreMongo

	case db.IsPostgresURI(uri):
		profile := db.RuntimeProfile()
		sqlDB, err := db.OpenStore(ctx, uri, profile)
		if err != nil {
			return a.unavailable("postgres", err)
		}
		// A Lambda container keeps its connection for the next invocation.
		closeDB := func(context.Context) error { return sqlDB.Close() }
		if profile == db.ProfileLambda {
			closeDB = func(context.Context) error { return nil }
		}
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = closeDB(ctx)
			return a.unavailable("postgres", err)
		}
		a.closers = append(a.closers, closeDB)
		return &resumes.PGRepo{DB: sqlDB}, StorePostgres

	default:
		return a.unavailable("unknown", fmt.Errorf("unsupported store URI scheme"))
	}
}

func (a *App) unavailable(backend string, err error) (resumes.Repo, string) {
	telemetry.Error("bootstrap.store_connect_failed", map[string]any{"backend": backend, "error": err})
	return resumes.UnavailableRepo{Cause: err}, StoreUnavailable
}

func buildCompleter(cfg config.Config) (llm.Completer, error) {
	if !cfg.AIEnabled() {
		telemetry.Warn("bootstrap.ai_disabled", map[string]any{"reason": "OPENAI_API_KEY not set"})
		return nil, nil
	}
	client, err := openai.NewClient(openai.Options{
		APIKey:    cfg.OpenAIAPIKey,
		Model:     cfg.OpenAIModel,
		BaseURL:   cfg.OpenAIBaseURL,
		MaxTokens: cfg.OpenAIMaxTokens,
		Timeout:   cfg.OpenAITimeout,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Close releases store connections.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests and
// closes the store.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              server.Addr(a.Config.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		telemetry.Info("server.listening", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
		defer cancel()
		telemetry.Info("server.shutdown", nil)
		shutdownErr := srv.Shutdown(shutdownCtx)
		if err := a.Close(shutdownCtx); err != nil {
			telemetry.Error("server.store_close_failed", map[string]any{"error": err})
		}
		return shutdownErr
	})
	return g.Wait()
}
