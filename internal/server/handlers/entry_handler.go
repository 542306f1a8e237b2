package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pagarwal884/Aapni-Dairy/internal/domain/models"
	"github.com/pagarwal884/Aapni-Dairy/internal/server/middleware"
	"github.com/pagarwal884/Aapni-Dairy/internal/service/entries"
	"github.com/pagarwal884/Aapni-Dairy/internal/service/summary"
)

const dateLayout = "2006-01-02"

// EntryHandler handles milk-entry and summary HTTP endpoints.
type EntryHandler struct {
	svc     *entries.Service
	summary *summary.Service
	logger  *zap.Logger
}

// NewEntryHandler constructs the entry handler adapter.
func NewEntryHandler(svc *entries.Service, summarySvc *summary.Service, logger *zap.Logger) *EntryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntryHandler{svc: svc, summary: summarySvc, logger: logger}
}

type entryRequest struct {
	Quantity    *float64 `json:"quantity"`
	Fat         *float64 `json:"fat"`
	Shift       *string  `json:"shift"`
	Snf         *float64 `json:"snf"`
	SnfK        *float64 `json:"SNF_K"`
	EntryDate   *string  `json:"entryDate"`
	Rate        *float64 `json:"rate"`
	TotalAmount *float64 `json:"total_amount"`
}

// Create records a delivery for the customer addressed by running number.
func (h *EntryHandler) Create(c *gin.Context) {
	tenant, ok := middleware.TenantFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	seqNo, err := strconv.ParseInt(c.Param("customerId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid customerId"})
		return
	}

	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid entry payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	in := entries.CreateInput{
		CustomerSeqNo: seqNo,
		Quantity:      req.Quantity,
		Fat:           req.Fat,
		Snf:           req.Snf,
		SnfK:          req.SnfK,
		Rate:          req.Rate,
		TotalAmount:   req.TotalAmount,
	}
	if req.Shift != nil {
		in.Shift = *req.Shift
	}
	if req.EntryDate != nil {
		date, err := parseDate(*req.EntryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid entryDate"})
			return
		}
		in.EntryDate = &date
	}

	entry, err := h.svc.Create(c.Request.Context(), tenant, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "milk entry created successfully", "data": entry})
}

// Update patches a delivery and reprices it from current values.
func (h *EntryHandler) Update(c *gin.Context) {
	tenant, ok := middleware.TenantFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid entry payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	in := entries.UpdateInput{
		Quantity: req.Quantity,
		Fat:      req.Fat,
		Snf:      req.Snf,
		SnfK:     req.SnfK,
		Shift:    req.Shift,
	}
	if req.EntryDate != nil {
		date, err := parseDate(*req.EntryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid entryDate"})
			return
		}
		in.EntryDate = &date
	}

	entry, err := h.svc.Update(c.Request.Context(), tenant, c.Param("entryId"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "entry updated successfully", "data": entry})
}

// ListByCustomer returns all entries of one customer, newest first.
func (h *EntryHandler) ListByCustomer(c *gin.Context) {
	tenant, ok := middleware.TenantFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	seqNo, err := strconv.ParseInt(c.Param("customer_c_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid customer_c_id"})
		return
	}

	list, err := h.svc.ListByCustomer(c.Request.Context(), tenant.ID, seqNo, nil)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(list), "data": list})
}

// ListByCustomerAndDate returns one customer's entries for a single day.
func (h *EntryHandler) ListByCustomerAndDate(c *gin.Context) {
	tenant, ok := middleware.TenantFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	seqNo, err := strconv.ParseInt(c.Param("customer_c_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid customer_c_id"})
		return
	}

	rawDate := c.Query("entryDate")
	if rawDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "entryDate is required"})
		return
	}
	day, err := parseDate(rawDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid entryDate"})
		return
	}

	list, err := h.svc.ListByCustomer(c.Request.Context(), tenant.ID, seqNo, &day)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(list), "data": list})
}

// ListAll returns every entry of the owner joined with customer details.
func (h *EntryHandler) ListAll(c *gin.Context) {
	tenant, ok := middleware.TenantFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	list, err := h.svc.ListAll(c.Request.Context(), tenant.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(list), "data": list})
}

// Delete removes a delivery record.
func (h *EntryHandler) Delete(c *gin.Context) {
	tenant, ok := middleware.TenantFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), tenant.ID, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "entry deleted"})
}

// TotalSummary reports per-customer and grand totals for a required date
// range.
func (h *EntryHandler) TotalSummary(c *gin.Context) {
	tenant, ok := middleware.TenantFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	rawStart, rawEnd := c.Query("start"), c.Query("end")
	if rawStart == "" || rawEnd == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "start and end dates are required"})
		return
	}

	start, err := parseDate(rawStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid start date"})
		return
	}
	end, err := parseDate(rawEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid end date"})
		return
	}

	window := models.NewDateWindow(start, end)
	result, err := h.summary.Summarize(c.Request.Context(), tenant.ID, &window, nil)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"range":       gin.H{"start": rawStart, "end": rawEnd},
		"customers":   result.Customers,
		"grandTotals": result.Totals,
	})
}

// LifetimeSummary reports totals across all time, or a range when either
// boundary is supplied.
func (h *EntryHandler) LifetimeSummary(c *gin.Context) {
	tenant, ok := middleware.TenantFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	rawStart, rawEnd := c.Query("start"), c.Query("end")

	var window *models.DateWindow
	var rangeField any
	if rawStart != "" || rawEnd != "" {
		start := time.Unix(0, 0).UTC()
		if rawStart != "" {
			parsed, err := parseDate(rawStart)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid start date"})
				return
			}
			start = parsed
		}

		end := time.Now().UTC()
		if rawEnd != "" {
			parsed, err := parseDate(rawEnd)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid end date"})
				return
			}
			end = parsed
		}

		w := models.NewDateWindow(start, end)
		window = &w
		rangeField = gin.H{"start": orNil(rawStart), "end": orNil(rawEnd)}
	}

	result, err := h.summary.Summarize(c.Request.Context(), tenant.ID, window, nil)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"range":       rangeField,
		"customers":   result.Customers,
		"grandTotals": result.Totals,
	})
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func orNil(value string) any {
	if value == "" {
		return nil
	}
	return value
}
