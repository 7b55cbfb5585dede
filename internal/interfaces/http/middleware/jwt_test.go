package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobsight/backend/internal/infrastructure/auth"
	"github.com/jobsight/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	})
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	userID := uuid.New()
	token, err := jwtService.Generate(userID, "owner@example.com")
	require.NoError(t, err)

	router := gin.New()
	router.Use(JWTAuthMiddleware(JWTMiddlewareConfig{JWTService: jwtService}))
	router.GET("/test", func(c *gin.Context) {
		gotID, ok := GetJWTUserID(c)
		assert.True(t, ok)
		assert.Equal(t, userID, gotID)

		claims, ok := GetJWTClaims(c)
		assert.True(t, ok)
		assert.Equal(t, "owner@example.com", claims.Email)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuthMiddleware(JWTMiddlewareConfig{JWTService: newTestJWTService()}))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddleware_MalformedHeader(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuthMiddleware(JWTMiddlewareConfig{JWTService: newTestJWTService()}))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	for _, header := range []string{"Basic abc123", "Bearer", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	expired := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: -time.Minute,
		Issuer:                "test-issuer",
	})
	token, err := expired.Generate(uuid.New(), "owner@example.com")
	require.NoError(t, err)

	router := gin.New()
	router.Use(JWTAuthMiddleware(JWTMiddlewareConfig{JWTService: newTestJWTService()}))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuthMiddleware(JWTMiddlewareConfig{
		JWTService:       newTestJWTService(),
		SkipPaths:        []string{"/public"},
		SkipPathPrefixes: []string{"/webhooks"},
	}))
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/public", handler)
	router.POST("/webhooks/stripe", handler)
	router.GET("/private", handler)

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/public", http.StatusOK},
		{http.MethodPost, "/webhooks/stripe", http.StatusOK},
		{http.MethodGet, "/private", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, tc.status, rec.Code, "path %s", tc.path)
	}
}

func TestJWTAuthMiddleware_WrongSignature(t *testing.T) {
	other := auth.NewJWTService(config.JWTConfig{
		Secret:                "a-completely-different-signing-key!!",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	})
	token, err := other.Generate(uuid.New(), "owner@example.com")
	require.NoError(t, err)

	router := gin.New()
	router.Use(JWTAuthMiddleware(JWTMiddlewareConfig{JWTService: newTestJWTService()}))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
