package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/identity"
	"github.com/jobsight/backend/internal/domain/shared"
	"github.com/jobsight/backend/internal/infrastructure/logger"
	"github.com/jobsight/backend/internal/interfaces/http/dto"
)

// TenantIDKey is the gin context key for the resolved business ID
const TenantIDKey = "tenant_id"

// BusinessResolver resolves the business owned by an authenticated user.
// Implemented by the identity application service.
type BusinessResolver interface {
	ResolveForOwner(ctx context.Context, ownerUserID uuid.UUID) (*identity.Business, error)
}

// RequireBusiness resolves the caller's business from their ownership row
// and stores its ID as the tenant scope for the request. The business ID is
// never taken from a header or the token: it is looked up per request, so a
// stale token can never reach another tenant's data. Accounts without a
// business are rejected rather than falling back to any default scope.
func RequireBusiness(resolver BusinessResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetJWTUserID(c)
		if !ok {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		b, err := resolver.ResolveForOwner(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, shared.ErrNoBusiness) {
				requestID := c.GetString(RequestIDContextKey)
				c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponse(
					shared.ErrNoBusiness.Code,
					"Create a business before using this endpoint",
					requestID,
				))
				return
			}
			requestID := c.GetString(RequestIDContextKey)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
				dto.ErrCodeInternal, "Failed to resolve business", requestID,
			))
			return
		}

		c.Set(TenantIDKey, b.ID)

		ctx := c.Request.Context()
		ctx, _ = logger.WithTenantID(ctx, logger.FromContext(ctx), b.ID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetTenantID retrieves the resolved business ID from the gin context
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(TenantIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
