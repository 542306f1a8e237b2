package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pagarwal884/Aapni-Dairy/internal/server/middleware"
	"github.com/pagarwal884/Aapni-Dairy/internal/service/accounts"
)

// UserHandler handles owner account HTTP endpoints.
type UserHandler struct {
	svc    *accounts.Service
	logger *zap.Logger
}

// NewUserHandler constructs the account handler adapter.
func NewUserHandler(svc *accounts.Service, logger *zap.Logger) *UserHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandler{svc: svc, logger: logger}
}

type registerRequest struct {
	OwnerName string   `json:"o_name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	DairyName string   `json:"Dairy_name"`
	MobileNo  string   `json:"Mobile_no"`
	A         *float64 `json:"a"`
	B         *float64 `json:"b"`
}

// Register creates a new owner account and returns a bearer token.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	token, err := h.svc.Register(c.Request.Context(), accounts.RegisterInput{
		OwnerName: req.OwnerName,
		Email:     req.Email,
		Password:  req.Password,
		DairyName: req.DairyName,
		MobileNo:  req.MobileNo,
		A:         req.A,
		B:         req.B,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token})
}

type loginRequest struct {
	MobileNo string `json:"Mobile_no"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a bearer token.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.MobileNo, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// Profile returns the owner's public profile fields.
func (h *UserHandler) Profile(c *gin.Context) {
	tenant, ok := middleware.TenantFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	user, err := h.svc.Profile(c.Request.Context(), tenant.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "profile": gin.H{
		"o_name":     user.OwnerName,
		"Mobile_no":  user.MobileNo,
		"Dairy_name": user.DairyName,
	}})
}

type coefficientsRequest struct {
	A *float64 `json:"a"`
	B *float64 `json:"b"`
}

// UpdateCoefficients replaces the owner's pricing coefficients.
func (h *UserHandler) UpdateCoefficients(c *gin.Context) {
	tenant, ok := middleware.TenantFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	var req coefficientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid coefficients payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	user, err := h.svc.UpdateCoefficients(c.Request.Context(), tenant.ID, req.A, req.B)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "a": user.A, "b": user.B})
}

// Coefficients returns the owner's current pricing coefficients.
func (h *UserHandler) Coefficients(c *gin.Context) {
	tenant, ok := middleware.TenantFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	a, b, err := h.svc.Coefficients(c.Request.Context(), tenant.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "a": a, "b": b})
}
