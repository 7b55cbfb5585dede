package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobsight/backend/internal/domain/identity"
	"github.com/jobsight/backend/internal/domain/shared"
	"github.com/jobsight/backend/internal/infrastructure/auth"
	"github.com/jobsight/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type noBusinessResolver struct{}

func (noBusinessResolver) ResolveForOwner(context.Context, uuid.UUID) (*identity.Business, error) {
	return nil, shared.ErrNoBusiness
}

func newTestRouter(t *testing.T, opts ...Option) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	engine := gin.New()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test",
	})
	r := New(engine, jwtService, noBusinessResolver{}, Handlers{}, zap.NewNop(), opts...)
	r.Setup()
	return engine, jwtService
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	engine, _ := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/auth/me",
		"/api/v1/clients",
		"/api/v1/projects",
		"/api/v1/invoices",
		"/api/v1/notifications",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "path %s", path)
	}
}

func TestRouter_ScopedRoutesRejectAccountsWithoutBusiness(t *testing.T) {
	engine, jwtService := newTestRouter(t)
	token, err := jwtService.Generate(uuid.New(), "owner@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_BUSINESS")
}

func TestRouter_UnknownRoute(t *testing.T) {
	engine, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/does-not-exist", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_APIVersionOption(t *testing.T) {
	engine, _ := newTestRouter(t, WithAPIVersion("v2"))

	req := httptest.NewRequest(http.MethodGet, "/api/v2/clients", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
