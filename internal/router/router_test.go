package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/P3chys/scholarshub-api/internal/catalog"
	"github.com/P3chys/scholarshub-api/internal/config"
	"github.com/P3chys/scholarshub-api/internal/middleware"
	"github.com/P3chys/scholarshub-api/internal/models"
	"github.com/P3chys/scholarshub-api/internal/repository"
	"github.com/P3chys/scholarshub-api/internal/services"
	"github.com/P3chys/scholarshub-api/internal/session"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	engine *gin.Engine
	t      *testing.T
}

func newTestServer(t *testing.T, opts ...func(*config.Config)) *testServer {
	t.Helper()
	ctx := context.Background()
	log := zap.NewNop()

	cfg := &config.Config{
		GinMode:          gin.TestMode,
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  "15m",
		JWTRefreshExpiry: "1h",
		UploadRateLimit:  2,
		UploadRateWindow: time.Hour,
		ResourceIDOrigin: "test",
		CORSOrigins:      []string{"http://localhost:5173"},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	c := catalog.Default()
	resourceRepo := repository.NewMemoryResourceRepository()
	accounts := services.NewAccountService(repository.NewMemoryAccountRepository(), nil, log)
	resources := services.NewResourceService(c, resourceRepo, nil, log, cfg.ResourceIDOrigin)

	for _, r := range catalog.SampleResources() {
		_, err := resources.Import(ctx, r)
		require.NoError(t, err)
	}
	_, err := accounts.SeedAdmin(ctx, "admin@college.edu", "AdminPassword123!", "Admin Controller")
	require.NoError(t, err)

	engine, err := Setup(cfg, Dependencies{
		Accounts:   accounts,
		Sessions:   services.NewSessionService(accounts, session.NewMemoryStore(), cfg, log),
		Browse:     services.NewBrowseService(c, resourceRepo, log),
		Resources:  resources,
		Moderation: services.NewModerationService(resourceRepo, log),
		Limiter:    middleware.NewMemoryRateLimiter(),
		Logger:     log,
	})
	require.NoError(t, err)
	return &testServer{engine: engine, t: t}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()

	code, env := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, code)

	var result services.LoginResult
	require.NoError(s.t, json.Unmarshal(env.Data, &result))
	return result.AccessToken
}

func (s *testServer) registerStudent() string {
	s.t.Helper()

	code, env := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":        "student@college.edu",
		"password":     "password123",
		"display_name": "Scholar Student",
	})
	require.Equal(s.t, http.StatusCreated, code)

	var result services.LoginResult
	require.NoError(s.t, json.Unmarshal(env.Data, &result))
	assert.Equal(s.t, models.RoleStudent, result.User.Role)
	return result.AccessToken
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/catalog/departments", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]models.Department](t, env), 7)

	code, env = s.do(http.MethodGet, "/api/v1/catalog/years/2/semesters", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []int{3, 4}, decode[[]int](t, env))

	code, env = s.do(http.MethodGet, "/api/v1/catalog/years/9/semesters", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]int](t, env))

	code, env = s.do(http.MethodGet, "/api/v1/catalog/years/4/departments", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]models.Department](t, env), 7)

	code, env = s.do(http.MethodGet, "/api/v1/catalog/years/3/departments/ece/subjects", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[]", string(env.Data))

	code, env = s.do(http.MethodGet, "/api/v1/catalog/departments/cse/semesters/4/subjects", "", nil)
	require.Equal(t, http.StatusOK, code)
	subjects := decode[[]models.Subject](t, env)
	require.Len(t, subjects, 1)
	assert.Equal(t, "os1", subjects[0].ID)

	code, env = s.do(http.MethodGet, "/api/v1/catalog/years/two/semesters", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, env = s.do(http.MethodGet, "/api/v1/catalog/subjects/chem1", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
}

func TestBrowseRoutes(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/subjects/ds1/resources", "", nil)
	require.Equal(t, http.StatusOK, code)
	notes := decode[[]models.Resource](t, env)
	require.Len(t, notes, 1)
	assert.Equal(t, "res1", notes[0].ID)

	code, env = s.do(http.MethodGet, "/api/v1/subjects/ds1/resources?type=PYQ", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "res2", decode[[]models.Resource](t, env)[0].ID)

	code, env = s.do(http.MethodGet, "/api/v1/subjects/chem1/resources", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[]", string(env.Data))

	code, env = s.do(http.MethodGet, "/api/v1/resources/recent?limit=5", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]models.Resource](t, env), 2)

	code, _ = s.do(http.MethodGet, "/api/v1/resources/res3", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(http.MethodPost, "/api/v1/resources/res1/download", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"download_count":146`)
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.registerStudent()

	code, env := s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Scholar Student", decode[models.User](t, env).Name)

	code, env = s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "student@college.edu", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)

	code, _ = s.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestUploadAndModerationFlow(t *testing.T) {
	s := newTestServer(t)
	student := s.registerStudent()
	admin := s.login("admin@college.edu", "AdminPassword123!")

	code, _ := s.do(http.MethodPost, "/api/v1/resources", "", gin.H{"title": "A", "type": "Notes", "subject_id": "os1"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := s.do(http.MethodPost, "/api/v1/resources", student, gin.H{"title": "A", "type": "Slides", "subject_id": "os1"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, env = s.do(http.MethodPost, "/api/v1/resources", student, gin.H{"title": "OS Notes", "type": "Notes", "subject_id": "os1"})
	require.Equal(t, http.StatusCreated, code)
	created := decode[models.Resource](t, env)
	assert.Equal(t, models.StatusPending, created.Status)

	code, _ = s.do(http.MethodGet, "/api/v1/admin/resources/pending", student, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodGet, "/api/v1/admin/resources/pending", admin, nil)
	require.Equal(t, http.StatusOK, code)
	pending := decode[[]models.Resource](t, env)
	require.Len(t, pending, 2)
	assert.Equal(t, created.ID, pending[0].ID)

	code, _ = s.do(http.MethodGet, "/api/v1/resources/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodPost, "/api/v1/admin/resources/"+created.ID+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.StatusApproved, decode[models.Resource](t, env).Status)

	code, env = s.do(http.MethodGet, "/api/v1/subjects/os1/resources?type=Notes", "", nil)
	require.Equal(t, http.StatusOK, code)
	visible := decode[[]models.Resource](t, env)
	require.Len(t, visible, 1)
	assert.Equal(t, created.ID, visible[0].ID)

	code, env = s.do(http.MethodPost, "/api/v1/admin/resources/res3/reject", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.StatusRejected, decode[models.Resource](t, env).Status)

	code, env = s.do(http.MethodPost, "/api/v1/admin/resources/res3/approve", admin, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "INVALID_TRANSITION", env.Error.Code)

	code, env = s.do(http.MethodPost, "/api/v1/admin/resources/missing/approve", admin, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	code, env = s.do(http.MethodGet, "/api/v1/admin/resources/history", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]models.Resource](t, env), 4)

	code, env = s.do(http.MethodGet, "/api/v1/admin/summary", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, services.ModerationSummary{Pending: 0, Moderated: 4, TotalResources: 4, TotalDownloads: 1355},
		decode[services.ModerationSummary](t, env))
}

func TestUploadRateLimit(t *testing.T) {
	s := newTestServer(t)
	student := s.registerStudent()
	body := gin.H{"title": "Notes", "type": "Notes", "subject_id": "ds1"}

	for i := 0; i < 2; i++ {
		code, _ := s.do(http.MethodPost, "/api/v1/resources", student, body)
		require.Equal(t, http.StatusCreated, code)
	}

	code, env := s.do(http.MethodPost, "/api/v1/resources", student, body)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", env.Error.Code)
}

func (s *testServer) loginFrom(forwardedFor string) int {
	s.t.Helper()

	body := bytes.NewBufferString(`{"email":"admin@college.edu","password":"wrong-password"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w.Code
}

func TestLoginRateLimitIgnoresForwardedFor(t *testing.T) {
	s := newTestServer(t)

	limited := 0
	for i := 0; i < 15; i++ {
		if s.loginFrom(fmt.Sprintf("203.0.113.%d", i)) == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Equal(t, 5, limited)
}

func TestLoginRateLimitTrustedProxy(t *testing.T) {
	// httptest requests come from 192.0.2.1
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.TrustedProxies = []string{"192.0.2.0/24"}
	})

	for i := 0; i < 15; i++ {
		assert.Equal(t, http.StatusUnauthorized, s.loginFrom(fmt.Sprintf("203.0.113.%d", i)))
	}
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusUnauthorized, s.loginFrom("198.51.100.7"))
	}
	assert.Equal(t, http.StatusTooManyRequests, s.loginFrom("198.51.100.7"))
}

func TestSetupRejectsBadProxy(t *testing.T) {
	_, err := Setup(&config.Config{GinMode: gin.TestMode, TrustedProxies: []string{"not-an-ip"}}, Dependencies{
		Limiter: middleware.NewMemoryRateLimiter(),
	})
	assert.Error(t, err)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/resources", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSetupWithoutCORSOrigins(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.CORSOrigins = nil
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
