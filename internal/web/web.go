// Package web serves the client bundle, its SPA fallback and the inline page.
package web

import (
	_ "embed"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
)

//go:embed fallback.html
var fallbackPage []byte

const htmlContentType = "text/html; charset=utf-8"

// Assets serves files from a prebuilt client bundle directory.
type Assets struct {
	Dir string
}

// NewAssets constructs Assets rooted at dir.
func NewAssets(dir string) *Assets {
	return &Assets{Dir: dir}
}

// FallbackPage returns the embedded inline page.
func FallbackPage() []byte {
	return fallbackPage
}

// Register attaches UI routes. API routes must be registered before NoRoute fires.
func (a *Assets) Register(r *gin.Engine) {
	r.GET("/", a.root)
	r.HEAD("/", a.root)
	r.GET("/fallback", serveFallback)
	r.HEAD("/fallback", serveFallback)
	r.NoRoute(a.notFound)
}

func (a *Assets) root(c *gin.Context) {
	if index, ok := a.readIndex(); ok {
		c.Data(http.StatusOK, htmlContentType, index)
		return
	}
	serveFallback(c)
}

func serveFallback(c *gin.Context) {
	c.Data(http.StatusOK, htmlContentType, fallbackPage)
}

func (a *Assets) notFound(c *gin.Context) {
	method := c.Request.Method
	urlPath := c.Request.URL.Path
	if (method != http.MethodGet && method != http.MethodHead) || isAPIPath(urlPath) {
		respond.Error(c, http.StatusNotFound, "not found")
		return
	}

	if file, ok := a.resolve(urlPath); ok {
		c.File(file)
		return
	}
	if index, ok := a.readIndex(); ok {
		c.Data(http.StatusOK, htmlContentType, index)
		return
	}
	respond.Error(c, http.StatusNotFound, "not found")
}

// resolve maps a URL path to a regular file inside Dir. Cleaning against "/"
// strips every ".." segment before the join.
func (a *Assets) resolve(urlPath string) (string, bool) {
	if a.Dir == "" {
		return "", false
	}
	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		return "", false
	}
	full := filepath.Join(a.Dir, filepath.FromSlash(clean))
	info, err := os.Stat(full)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return full, true
}

func (a *Assets) readIndex() ([]byte, bool) {
	if a.Dir == "" {
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(a.Dir, "index.html"))
	if err != nil {
		return nil, false
	}
	return data, true
}

func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}
