package resumes

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/shared/server/middleware"
)

type saveResponse struct {
	OK     bool            `json:"ok"`
	Error  string          `json:"error"`
	Resume json.RawMessage `json:"resume"`
}

func newTestRouter(repo Repo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	fixed := time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)
	svc := &Service{Repo: repo, Now: func() time.Time { return fixed }}
	r := gin.New()
	r.Use(middleware.BodyLimit(1 << 10))
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func postResume(t *testing.T, r *gin.Engine, body string) (*httptest.ResponseRecorder, saveResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/resume", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var out saveResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out), resp.Body.String())
	return resp, out
}

func TestCreateStoresResumeAndReturnsIt(t *testing.T) {
	repo := NewMemoryRepo()
	router := newTestRouter(repo)
	body := `{"name":"Ada","email":"ada@example.com","phone":"555","summary":"Analyst",` +
		`"experience":[{"title":"Engineer","company":"Analytical","from":"1842","to":"1843","details":"Notes"}],` +
		`"education":[{"school":"Home","degree":"Maths","year":"1835"}],"skills":["math"]}`

	resp, out := postResume(t, router, body)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, out.OK)

	var stored map[string]any
	require.NoError(t, json.Unmarshal(out.Resume, &stored))
	assert.NotEmpty(t, stored["_id"])
	assert.Equal(t, "2026-10-15T09:30:00Z", stored["createdAt"])

	var input map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &input))
	for key, want := range input {
		assert.Equal(t, want, stored[key], "field %s", key)
	}
	assert.Len(t, repo.All(), 1)
}

func TestCreateTwiceYieldsDistinctIDs(t *testing.T) {
	router := newTestRouter(NewMemoryRepo())

	_, first := postResume(t, router, `{"name":"Ada"}`)
	_, second := postResume(t, router, `{"name":"Ada"}`)

	var a, b ResumeResponse
	require.NoError(t, json.Unmarshal(first.Resume, &a))
	require.NoError(t, json.Unmarshal(second.Resume, &b))
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCreateDropsUnknownFields(t *testing.T) {
	router := newTestRouter(NewMemoryRepo())

	resp, out := postResume(t, router, `{"name":"Ada","isAdmin":true,"nested":{"x":1}}`)

	require.Equal(t, http.StatusOK, resp.Code)
	var stored map[string]any
	require.NoError(t, json.Unmarshal(out.Resume, &stored))
	assert.NotContains(t, stored, "isAdmin")
	assert.NotContains(t, stored, "nested")
	for key := range stored {
		assert.Contains(t, []string{"_id", "name", "email", "phone", "summary", "experience", "education", "skills", "createdAt"}, key)
	}
	assert.Equal(t, []any{}, stored["skills"])
}

func TestCreateRoundTripsEmptyStrings(t *testing.T) {
	repo := NewMemoryRepo()
	router := newTestRouter(repo)
	body := `{"name":"Ada","email":"","phone":"","summary":"",` +
		`"experience":[{"title":"","company":"X"}],"education":[{"school":"","year":""}]}`

	resp, out := postResume(t, router, body)

	require.Equal(t, http.StatusOK, resp.Code)
	var stored map[string]any
	require.NoError(t, json.Unmarshal(out.Resume, &stored))
	assert.Equal(t, "", stored["email"])
	assert.Equal(t, "", stored["phone"])
	assert.Equal(t, "", stored["summary"])
	assert.Equal(t, []any{map[string]any{"title": "", "company": "X"}}, stored["experience"])
	assert.Equal(t, []any{map[string]any{"school": "", "year": ""}}, stored["education"])

	saved := repo.All()
	require.Len(t, saved, 1)
	require.NotNil(t, saved[0].Email)
	assert.Equal(t, "", *saved[0].Email)
}

func TestCreateCastsScalarFields(t *testing.T) {
	router := newTestRouter(NewMemoryRepo())

	resp, out := postResume(t, router, `{"name":42,"skills":"go"}`)

	require.Equal(t, http.StatusOK, resp.Code)
	var stored map[string]any
	require.NoError(t, json.Unmarshal(out.Resume, &stored))
	assert.Equal(t, "42", stored["name"])
	assert.Equal(t, []any{"go"}, stored["skills"])
}

func TestCreateEmptyBodyStoresEmptyResume(t *testing.T) {
	router := newTestRouter(NewMemoryRepo())

	resp, out := postResume(t, router, ``)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, out.OK)
}

func TestCreateStoreFailureReturns500(t *testing.T) {
	router := newTestRouter(UnavailableRepo{Cause: errors.New("connection refused")})

	resp, out := postResume(t, router, `{"name":"Ada"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.False(t, out.OK)
	assert.Contains(t, out.Error, "connection refused")
}

func TestCreateValidationFailureReturns500(t *testing.T) {
	router := newTestRouter(NewMemoryRepo())

	resp, out := postResume(t, router, `{"skills":{"lang":"go"}}`)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.False(t, out.OK)
	assert.Contains(t, out.Error, "skills")
}

func TestCreateMalformedJSONReturns400(t *testing.T) {
	router := newTestRouter(NewMemoryRepo())

	resp, out := postResume(t, router, `{"name":`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.False(t, out.OK)
}

func TestCreateOversizedBodyReturns413(t *testing.T) {
	router := newTestRouter(NewMemoryRepo())

	resp, out := postResume(t, router, `{"summary":"`+strings.Repeat("a", 2<<10)+`"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
	assert.False(t, out.OK)
}
