package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobsight/backend/internal/domain/shared"
	"github.com/jobsight/backend/internal/infrastructure/auth"
	"github.com/jobsight/backend/internal/infrastructure/logger"
	"github.com/jobsight/backend/internal/interfaces/http/dto"
)

// Gin context keys set by the JWT middleware
const (
	JWTClaimsKey = "jwt_claims"
	JWTUserIDKey = "jwt_user_id"
)

// JWTMiddlewareConfig holds configuration for JWT authentication
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are exact paths that bypass authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that bypass authentication
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// JWTAuthMiddleware returns a middleware that validates Bearer tokens and
// stores the authenticated user in the gin and request contexts.
func JWTAuthMiddleware(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, p := range cfg.SkipPaths {
			if path == p {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		token, err := extractBearerToken(c)
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing or malformed Authorization header")
			return
		}

		claims, err := cfg.JWTService.Validate(token)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Debug("token rejected", zap.Error(err))
			}
			code := dto.ErrCodeUnauthorized
			msg := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				code = "TOKEN_EXPIRED"
				msg = "Token has expired"
			}
			abortUnauthorized(c, code, msg)
			return
		}

		userID, err := claims.GetUserUUID()
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Invalid token")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, userID)

		ctx := c.Request.Context()
		ctx = shared.WithActor(ctx, userID)
		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// extractBearerToken pulls the token from the Authorization header
func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("malformed authorization header")
	}
	return parts[1], nil
}

// GetJWTUserID retrieves the authenticated user ID from the gin context
func GetJWTUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(JWTUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetJWTClaims retrieves the validated claims from the gin context
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(JWTClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func abortUnauthorized(c *gin.Context, code, message string) {
	requestID := c.GetString(RequestIDContextKey)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message, requestID))
}
