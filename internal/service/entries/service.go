// Package entries records milk deliveries, pricing each one from the
// owner's coefficients at write time.
package entries

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/pagarwal884/Aapni-Dairy/internal/domain/apperr"
	"github.com/pagarwal884/Aapni-Dairy/internal/domain/models"
	"github.com/pagarwal884/Aapni-Dairy/internal/service/pricing"
)

// Store is the persistence surface the service needs.
type Store interface {
	FindCustomerBySeq(ctx context.Context, userID primitive.ObjectID, seqNo int64) (models.Customer, error)
	InsertEntry(ctx context.Context, entry models.MilkEntry) (models.MilkEntry, error)
	FindEntry(ctx context.Context, userID, id primitive.ObjectID) (models.MilkEntry, error)
	ReplaceEntry(ctx context.Context, entry models.MilkEntry) (models.MilkEntry, error)
	DeleteEntry(ctx context.Context, userID, id primitive.ObjectID) error
	ListEntriesByCustomer(ctx context.Context, userID, customerID primitive.ObjectID, window *models.DateWindow) ([]models.MilkEntry, error)
	ListEntriesWithCustomer(ctx context.Context, userID primitive.ObjectID) ([]models.EntryListItem, error)
}

// CreateInput carries the caller-supplied fields for a new delivery.
// Rate and TotalAmount, when set, override the computed values; this is the
// only point where overrides are honored.
type CreateInput struct {
	CustomerSeqNo int64
	Shift         string
	Quantity      *float64
	Fat           *float64
	Snf           *float64
	SnfK          *float64
	EntryDate     *time.Time
	Rate          *float64
	TotalAmount   *float64
}

// UpdateInput carries the mutable fields of an existing delivery. Every set
// field is applied, then rate and total are recomputed from the current
// values and the owner's current coefficients.
type UpdateInput struct {
	Quantity  *float64
	Fat       *float64
	Snf       *float64
	SnfK      *float64
	Shift     *string
	EntryDate *time.Time
}

// Service implements milk-entry bookkeeping.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new entry service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Create records a delivery for the customer addressed by running number.
// The owner's coefficients are snapshotted onto the entry so later changes
// never reprice it.
func (s *Service) Create(ctx context.Context, tenant models.Tenant, in CreateInput) (models.MilkEntry, error) {
	if tenant.ID.IsZero() {
		return models.MilkEntry{}, apperr.Validation("user id is required")
	}

	switch {
	case in.Quantity == nil || *in.Quantity == 0:
		return models.MilkEntry{}, apperr.Validation("quantity is required")
	case in.Fat == nil || *in.Fat == 0:
		return models.MilkEntry{}, apperr.Validation("fat is required")
	case strings.TrimSpace(in.Shift) == "":
		return models.MilkEntry{}, apperr.Validation("shift is required")
	}

	customer, err := s.store.FindCustomerBySeq(ctx, tenant.ID, in.CustomerSeqNo)
	if err != nil {
		return models.MilkEntry{}, err
	}

	coeff := pricing.Coefficients{A: tenant.A, B: tenant.B}
	quote := pricing.Compute(*in.Fat, *in.Quantity, coeff, in.Rate, in.TotalAmount)

	now := s.now().UTC()
	entry := models.MilkEntry{
		UserID:        tenant.ID,
		CustomerID:    customer.ID,
		CustomerSeqNo: customer.SeqNo,
		Shift:         strings.TrimSpace(in.Shift),
		Quantity:      *in.Quantity,
		Fat:           *in.Fat,
		Snf:           models.DefaultSnf,
		A:             tenant.A,
		B:             tenant.B,
		Rate:          quote.Rate,
		TotalAmount:   quote.TotalAmount,
		EntryDate:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.Snf != nil && *in.Snf != 0 {
		entry.Snf = *in.Snf
	}
	if in.SnfK != nil {
		entry.SnfK = *in.SnfK
	}
	if in.EntryDate != nil {
		entry.EntryDate = in.EntryDate.UTC()
	}

	created, err := s.store.InsertEntry(ctx, entry)
	if err != nil {
		return models.MilkEntry{}, err
	}

	s.logger.Info("milk entry created",
		zap.String("user_id", tenant.ID.Hex()),
		zap.Int64("customer_c_id", customer.SeqNo),
		zap.Float64("rate", created.Rate),
		zap.Float64("total_amount", created.TotalAmount))

	return created, nil
}

// Update patches a delivery and reprices it from the patched fat/quantity
// and the owner's coefficients as of now. Creation-time overrides are
// discarded; the snapshot on the entry is refreshed.
func (s *Service) Update(ctx context.Context, tenant models.Tenant, entryID string, in UpdateInput) (models.MilkEntry, error) {
	if tenant.ID.IsZero() {
		return models.MilkEntry{}, apperr.Validation("user id is required")
	}

	objectID, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return models.MilkEntry{}, apperr.Validation("invalid entry id")
	}

	entry, err := s.store.FindEntry(ctx, tenant.ID, objectID)
	if err != nil {
		return models.MilkEntry{}, err
	}

	if in.Quantity != nil {
		entry.Quantity = *in.Quantity
	}
	if in.Fat != nil {
		entry.Fat = *in.Fat
	}
	if in.Snf != nil {
		entry.Snf = *in.Snf
	}
	if in.SnfK != nil {
		entry.SnfK = *in.SnfK
	}
	if in.Shift != nil {
		entry.Shift = strings.TrimSpace(*in.Shift)
	}
	if in.EntryDate != nil {
		entry.EntryDate = in.EntryDate.UTC()
	}

	coeff := pricing.Coefficients{A: tenant.A, B: tenant.B}
	quote := pricing.Compute(entry.Fat, entry.Quantity, coeff, nil, nil)
	entry.A = tenant.A
	entry.B = tenant.B
	entry.Rate = quote.Rate
	entry.TotalAmount = quote.TotalAmount
	entry.UpdatedAt = s.now().UTC()

	return s.store.ReplaceEntry(ctx, entry)
}

// ListByCustomer returns all of a customer's entries, newest first. When day
// is non-nil the listing is restricted to that calendar day.
func (s *Service) ListByCustomer(ctx context.Context, userID primitive.ObjectID, customerSeqNo int64, day *time.Time) ([]models.MilkEntry, error) {
	if userID.IsZero() {
		return nil, apperr.Validation("user id is required")
	}

	customer, err := s.store.FindCustomerBySeq(ctx, userID, customerSeqNo)
	if err != nil {
		return nil, err
	}

	var window *models.DateWindow
	if day != nil {
		w := models.SingleDayWindow(*day)
		window = &w
	}

	result, err := s.store.ListEntriesByCustomer(ctx, userID, customer.ID, window)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []models.MilkEntry{}
	}
	return result, nil
}

// ListAll returns every entry of the owner joined with customer details,
// newest first.
func (s *Service) ListAll(ctx context.Context, userID primitive.ObjectID) ([]models.EntryListItem, error) {
	if userID.IsZero() {
		return nil, apperr.Validation("user id is required")
	}

	items, err := s.store.ListEntriesWithCustomer(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.EntryListItem{}
	}
	return items, nil
}

// Delete removes a delivery record.
func (s *Service) Delete(ctx context.Context, userID primitive.ObjectID, entryID string) error {
	if userID.IsZero() {
		return apperr.Validation("user id is required")
	}

	objectID, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return apperr.Validation("invalid entry id")
	}

	return s.store.DeleteEntry(ctx, userID, objectID)
}
