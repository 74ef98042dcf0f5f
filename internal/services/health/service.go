package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
)

// Service reports liveness and which store backs the resume endpoint.
type Service struct {
	StoreKind string
}

// NewService constructs a new health service.
func NewService(storeKind string) *Service {
	return &Service{StoreKind: storeKind}
}

// Status returns the health payload.
func (s *Service) Status() gin.H {
	return gin.H{"ok": true, "store": s.StoreKind}
}

// RegisterRoutes attaches GET /health.
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, s.Status())
	})
}
