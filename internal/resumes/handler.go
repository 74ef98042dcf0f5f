package resumes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/bind"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume", h.create)
}

func (h *Handler) create(c *gin.Context) {
	raw, err := bind.JSONBody(c)
	if err != nil {
		metrics.IncResumeFailed()
		respond.Error(c, bind.Status(err), err.Error())
		return
	}

	doc, err := h.Svc.Save(c.Request.Context(), raw)
	if err != nil {
		metrics.IncResumeFailed()
		telemetry.Error("resume.save_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"error":      err,
		})
		// Validation and store failures alike surface as 500 with the raw message.
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.IncResumeSaved()
	c.Set(middleware.ResumeIDKey, doc.ID)
	respond.OK(c, gin.H{"resume": toResponse(doc)})
}
