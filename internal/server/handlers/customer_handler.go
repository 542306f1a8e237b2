package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pagarwal884/Aapni-Dairy/internal/server/middleware"
	"github.com/pagarwal884/Aapni-Dairy/internal/service/customers"
)

// CustomerHandler handles customer roster HTTP endpoints.
type CustomerHandler struct {
	svc    *customers.Service
	logger *zap.Logger
}

// NewCustomerHandler constructs the customer handler adapter.
func NewCustomerHandler(svc *customers.Service, logger *zap.Logger) *CustomerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerHandler{svc: svc, logger: logger}
}

type customerRequest struct {
	Name string `json:"c_name"`
}

// Register creates a customer and stamps it with the next running number.
func (h *CustomerHandler) Register(c *gin.Context) {
	tenant, ok := middleware.TenantFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid customer payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	customer, err := h.svc.Register(c.Request.Context(), tenant.ID, req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "customer": customer})
}

// List returns the owner's customers ordered by running number.
func (h *CustomerHandler) List(c *gin.Context) {
	tenant, ok := middleware.TenantFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	list, err := h.svc.List(c.Request.Context(), tenant.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "customers": list})
}

// Update renames a customer.
func (h *CustomerHandler) Update(c *gin.Context) {
	tenant, ok := middleware.TenantFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid customer payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	customer, err := h.svc.Rename(c.Request.Context(), tenant.ID, c.Param("_id"), req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "customer": customer})
}

// Delete removes a customer.
func (h *CustomerHandler) Delete(c *gin.Context) {
	tenant, ok := middleware.TenantFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), tenant.ID, c.Param("_id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "customer removed"})
}
