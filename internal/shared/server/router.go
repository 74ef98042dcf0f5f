package server

import (
	"github.com/gin-gonic/gin"

	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/suggestions"
	"resume-builder/internal/web"
)

// RouterDeps contains handlers and shared services for routing.
type RouterDeps struct {
	Config         config.Config
	ResumeHandler  *resumes.Handler
	SuggestHandler *suggestions.Handler
	Health         *health.Service
	Assets         *web.Assets
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// API routes are registered before the UI catch-all.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.BodyLimit(deps.Config.BodyLimitBytes),
	)

	api := r.Group("/api")
	if deps.Health != nil {
		deps.Health.RegisterRoutes(api)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}
	if deps.SuggestHandler != nil {
		deps.SuggestHandler.RegisterRoutes(api)
	}
	r.GET("/metrics", metrics.Handler())

	assets := deps.Assets
	if assets == nil {
		assets = web.NewAssets(deps.Config.StaticDir)
	}
	assets.Register(r)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":" + config.DefaultPort
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
