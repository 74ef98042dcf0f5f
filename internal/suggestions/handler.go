package suggestions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/bind"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
)

// Handler exposes the suggestion proxy over HTTP.
type Handler struct {
	Svc       *Service
	RateLimit gin.HandlerFunc
}

// NewHandler constructs a Handler. limit may be nil.
func NewHandler(svc *Service, limit gin.HandlerFunc) *Handler {
	return &Handler{Svc: svc, RateLimit: limit}
}

// RegisterRoutes attaches the suggest route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	handlers := []gin.HandlerFunc{}
	if h.RateLimit != nil {
		handlers = append(handlers, h.RateLimit)
	}
	handlers = append(handlers, h.suggest)
	rg.POST("/suggest", handlers...)
}

func (h *Handler) suggest(c *gin.Context) {
	raw, err := bind.JSONBody(c)
	if err != nil {
		respond.Error(c, bind.Status(err), err.Error())
		return
	}

	res, err := h.Svc.Suggest(c.Request.Context(), raw)
	c.Set(middleware.SuggestionOutcomeKey, string(res.Outcome))
	if err != nil {
		if errors.Is(err, ErrMalformedRequest) {
			respond.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		telemetry.Error("suggestion.failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"error":      err,
		})
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.OK(c, gin.H{"suggestion": res.Suggestion})
}
