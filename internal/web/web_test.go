package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexHTML = "<!doctype html><title>bundle</title>"

func newBundle(t *testing.T, withIndex bool) string {
	t.Helper()
	root := t.TempDir()
	dist := filepath.Join(root, "dist")
	require.NoError(t, os.MkdirAll(filepath.Join(dist, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "assets", "app.js"), []byte("console.log(1)"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("top secret"), 0o644))
	if withIndex {
		require.NoError(t, os.WriteFile(filepath.Join(dist, "index.html"), []byte(indexHTML), 0o644))
	}
	return dist
}

func newTestRouter(dir string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	NewAssets(dir).Register(r)
	return r
}

func do(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRootServesBundleIndex(t *testing.T) {
	r := newTestRouter(newBundle(t, true))

	resp := do(r, http.MethodGet, "/")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, indexHTML, resp.Body.String())
}

func TestRootServesFallbackWithoutBundle(t *testing.T) {
	r := newTestRouter(newBundle(t, false))

	resp := do(r, http.MethodGet, "/")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Type"), "text/html")
	body := resp.Body.String()
	assert.Contains(t, body, "Smart Resume Builder")
	assert.Contains(t, body, "/api/resume")
	assert.Contains(t, body, "/api/suggest")
}

func TestFallbackRouteAlwaysInline(t *testing.T) {
	r := newTestRouter(newBundle(t, true))

	resp := do(r, http.MethodGet, "/fallback")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, string(FallbackPage()), resp.Body.String())
}

func TestAssetServedWithMIME(t *testing.T) {
	r := newTestRouter(newBundle(t, true))

	resp := do(r, http.MethodGet, "/assets/app.js")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "console.log(1)", resp.Body.String())
	assert.Contains(t, resp.Header().Get("Content-Type"), "javascript")
}

func TestClientRoutesGetIndex(t *testing.T) {
	r := newTestRouter(newBundle(t, true))

	for _, target := range []string{"/editor", "/resumes/42/edit", "/assets/missing.js"} {
		resp := do(r, http.MethodGet, target)
		require.Equal(t, http.StatusOK, resp.Code, target)
		assert.Equal(t, indexHTML, resp.Body.String(), target)
	}
}

func TestClientRouteWithoutIndexIs404(t *testing.T) {
	r := newTestRouter(newBundle(t, false))

	resp := do(r, http.MethodGet, "/editor")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestTraversalStaysInsideBundle(t *testing.T) {
	r := newTestRouter(newBundle(t, true))

	for _, target := range []string{"/../secret.txt", "/assets/../../secret.txt", "/%2e%2e/secret.txt"} {
		resp := do(r, http.MethodGet, target)
		assert.NotContains(t, resp.Body.String(), "top secret", target)
	}
}

func TestUnknownAPIPathIsJSON404(t *testing.T) {
	r := newTestRouter(newBundle(t, true))

	for _, tc := range []struct{ method, target string }{
		{http.MethodGet, "/api/unknown"},
		{http.MethodPost, "/api/nope"},
		{http.MethodDelete, "/editor"},
	} {
		resp := do(r, tc.method, tc.target)
		require.Equal(t, http.StatusNotFound, resp.Code, tc.target)

		var out map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out), resp.Body.String())
		assert.Equal(t, false, out["ok"])
		assert.Equal(t, "not found", out["error"])
	}
}

func TestAPIRoutesStillReachable(t *testing.T) {
	r := newTestRouter(newBundle(t, true))

	resp := do(r, http.MethodGet, "/api/health")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"ok":true}`, resp.Body.String())
}
