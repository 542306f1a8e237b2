package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pagarwal884/Aapni-Dairy/internal/domain/models"
)

type stubResolver struct {
	tenant models.Tenant
	err    error
}

func (s stubResolver) Resolve(context.Context, string) (models.Tenant, error) {
	return s.tenant, s.err
}

func newTestRouter(resolver TenantResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(resolver, nil), func(c *gin.Context) {
		tenant, ok := TenantFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": tenant.ID.Hex()})
	})
	return r
}

func TestAuthMissingHeader(t *testing.T) {
	r := newTestRouter(stubResolver{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	r := newTestRouter(stubResolver{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectedToken(t *testing.T) {
	r := newTestRouter(stubResolver{err: errors.New("expired")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAttachesTenant(t *testing.T) {
	tenant := models.Tenant{ID: primitive.NewObjectID(), A: 8, B: 2}
	r := newTestRouter(stubResolver{tenant: tenant})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), tenant.ID.Hex())
}
