// Package customers manages the owner's customer roster, including the
// owner-scoped running number assigned to each customer at registration.
package customers

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/pagarwal884/Aapni-Dairy/internal/domain/apperr"
	"github.com/pagarwal884/Aapni-Dairy/internal/domain/models"
)

// Store is the persistence surface the service needs.
type Store interface {
	EnsureCounter(ctx context.Context, userID primitive.ObjectID) error
	NextSequence(ctx context.Context, userID primitive.ObjectID) (int64, error)
	InsertCustomer(ctx context.Context, customer models.Customer) (models.Customer, error)
	ListCustomers(ctx context.Context, userID primitive.ObjectID) ([]models.Customer, error)
	RenameCustomer(ctx context.Context, userID, id primitive.ObjectID, name string) (models.Customer, error)
	DeleteCustomer(ctx context.Context, userID, id primitive.ObjectID) error
}

// Service implements customer registration and maintenance.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a new customer service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Register creates a customer under the owner, stamping it with the next
// owner-scoped running number. The counter is seeded from existing data on
// first use, then advanced through a single atomic increment so concurrent
// registrations never share a number.
func (s *Service) Register(ctx context.Context, userID primitive.ObjectID, name string) (models.Customer, error) {
	if userID.IsZero() {
		return models.Customer{}, apperr.Validation("user id is required")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Customer{}, apperr.Validation("customer name required")
	}

	if err := s.store.EnsureCounter(ctx, userID); err != nil {
		return models.Customer{}, err
	}

	seqNo, err := s.store.NextSequence(ctx, userID)
	if err != nil {
		return models.Customer{}, err
	}

	now := time.Now().UTC()
	customer := models.Customer{
		Name:      name,
		UserID:    userID,
		SeqNo:     seqNo,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.store.InsertCustomer(ctx, customer)
	if err != nil {
		return models.Customer{}, err
	}

	s.logger.Info("customer registered",
		zap.String("user_id", userID.Hex()),
		zap.Int64("c_id", created.SeqNo))

	return created, nil
}

// List returns the owner's customers ordered by running number.
func (s *Service) List(ctx context.Context, userID primitive.ObjectID) ([]models.Customer, error) {
	if userID.IsZero() {
		return nil, apperr.Validation("user id is required")
	}

	customers, err := s.store.ListCustomers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	return customers, nil
}

// Rename changes a customer's display name. The running number is immutable.
func (s *Service) Rename(ctx context.Context, userID primitive.ObjectID, id string, name string) (models.Customer, error) {
	if userID.IsZero() {
		return models.Customer{}, apperr.Validation("user id is required")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Customer{}, apperr.Validation("customer name required")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Customer{}, apperr.Validation("invalid customer id")
	}

	return s.store.RenameCustomer(ctx, userID, objectID, name)
}

// Delete removes a customer. Its running number is never reused while the
// owner's counter exists.
func (s *Service) Delete(ctx context.Context, userID primitive.ObjectID, id string) error {
	if userID.IsZero() {
		return apperr.Validation("user id is required")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Validation("invalid customer id")
	}

	return s.store.DeleteCustomer(ctx, userID, objectID)
}
