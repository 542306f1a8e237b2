// Package middleware holds the gin middlewares shared by all routes.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pagarwal884/Aapni-Dairy/internal/domain/models"
)

const tenantContextKey = "tenant"

// TenantResolver verifies a bearer credential and resolves it to the owning
// tenant identity.
type TenantResolver interface {
	Resolve(ctx context.Context, token string) (models.Tenant, error)
}

// Auth extracts the bearer token, resolves it to a tenant and attaches the
// identity to the request context. Requests without a valid token get 401.
func Auth(resolver TenantResolver, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "authorization token required",
			})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		tenant, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			logger.Warn("token resolution failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "unauthorized",
			})
			return
		}

		c.Set(tenantContextKey, tenant)
		c.Next()
	}
}

// TenantFrom returns the tenant identity attached by Auth.
func TenantFrom(c *gin.Context) (models.Tenant, bool) {
	value, exists := c.Get(tenantContextKey)
	if !exists {
		return models.Tenant{}, false
	}
	tenant, ok := value.(models.Tenant)
	return tenant, ok
}
