// Package summary folds milk entries into per-customer and grand totals for
// a date window.
package summary

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/pagarwal884/Aapni-Dairy/internal/domain/apperr"
	"github.com/pagarwal884/Aapni-Dairy/internal/domain/models"
)

// Store is the persistence surface the service needs.
type Store interface {
	AggregateEntries(ctx context.Context, userID primitive.ObjectID, window *models.DateWindow, customerID *primitive.ObjectID) ([]models.CustomerSummary, error)
}

// Service implements the collection summary reports.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a new summary service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Summarize groups the owner's entries by customer within the window (all
// time when window is nil, one customer when customerID is non-nil) and
// computes the grand totals.
//
// Payable is grandAmount minus grandSnf, carried over verbatim from the
// established billing behavior even though it subtracts a summed percentage
// from a currency amount. The intended business rule is undocumented; do
// not replace the formula without one.
func (s *Service) Summarize(ctx context.Context, userID primitive.ObjectID, window *models.DateWindow, customerID *primitive.ObjectID) (models.Summary, error) {
	if userID.IsZero() {
		return models.Summary{}, apperr.Validation("user id is required")
	}

	rows, err := s.store.AggregateEntries(ctx, userID, window, customerID)
	if err != nil {
		return models.Summary{}, err
	}
	if rows == nil {
		rows = []models.CustomerSummary{}
	}

	var totals models.GrandTotals
	for _, row := range rows {
		totals.Qty += row.TotalQty
		totals.Amount += row.TotalAmount
		totals.Snf += row.TotalSnf
	}
	totals.Payable = totals.Amount - totals.Snf

	s.logger.Debug("summary computed",
		zap.String("user_id", userID.Hex()),
		zap.Int("customers", len(rows)),
		zap.Float64("payable", totals.Payable))

	return models.Summary{Customers: rows, Totals: totals}, nil
}
