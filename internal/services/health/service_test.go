package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthReportsStoreKind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewService("memory").RegisterRoutes(r.Group("/api"))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Body.String(); got != `{"ok":true,"store":"memory"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}
