// Package accounts manages dairy owner registration, login and pricing
// coefficient maintenance.
package accounts

import (
	"context"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pagarwal884/Aapni-Dairy/internal/domain/apperr"
	"github.com/pagarwal884/Aapni-Dairy/internal/domain/models"
)

const minPasswordLength = 8

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Store is the persistence surface the service needs.
type Store interface {
	InsertUser(ctx context.Context, user models.User) (models.User, error)
	EmailOrMobileExists(ctx context.Context, email, mobile string) (bool, error)
	FindUserByMobile(ctx context.Context, mobile string) (models.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	UpdateCoefficients(ctx context.Context, id primitive.ObjectID, a, b float64) (models.User, error)
}

// RegisterInput carries the registration form fields. A and B fall back to
// the defaults when absent.
type RegisterInput struct {
	OwnerName string
	Email     string
	Password  string
	DairyName string
	MobileNo  string
	A         *float64
	B         *float64
}

// Service implements owner account operations.
type Service struct {
	store    Store
	tokens   *TokenIssuer
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService wires a new accounts service instance.
func NewService(store Store, tokens *TokenIssuer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		tokens:   tokens,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register creates an owner account and returns a signed bearer token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, error) {
	in.OwnerName = strings.TrimSpace(in.OwnerName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.DairyName = strings.TrimSpace(in.DairyName)
	in.MobileNo = strings.TrimSpace(in.MobileNo)

	if in.OwnerName == "" || in.Email == "" || in.Password == "" || in.DairyName == "" || in.MobileNo == "" {
		return "", apperr.Validation("all fields are required")
	}

	if err := s.validate.Var(in.Email, "email"); err != nil {
		return "", apperr.Validation("invalid email address")
	}

	if !mobilePattern.MatchString(in.MobileNo) {
		return "", apperr.Validation("mobile number must be exactly 10 digits")
	}

	if len(in.Password) < minPasswordLength {
		return "", apperr.Validation("password must be at least 8 characters long")
	}

	exists, err := s.store.EmailOrMobileExists(ctx, in.Email, in.MobileNo)
	if err != nil {
		return "", err
	}
	if exists {
		return "", apperr.Conflict("email or mobile number already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Storage(err, "hash password")
	}

	user := models.User{
		OwnerName: in.OwnerName,
		Email:     in.Email,
		Password:  string(hashed),
		DairyName: in.DairyName,
		MobileNo:  in.MobileNo,
		A:         models.DefaultCoefficientA,
		B:         models.DefaultCoefficientB,
	}
	if in.A != nil {
		user.A = *in.A
	}
	if in.B != nil {
		user.B = *in.B
	}

	created, err := s.store.InsertUser(ctx, user)
	if err != nil {
		return "", err
	}

	s.logger.Info("owner registered", zap.String("user_id", created.ID.Hex()))

	return s.tokens.Issue(created.ID)
}

// Login verifies the mobile/password pair and returns a signed bearer token.
func (s *Service) Login(ctx context.Context, mobile, password string) (string, error) {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" || password == "" {
		return "", apperr.Validation("mobile number and password are required")
	}

	user, err := s.store.FindUserByMobile(ctx, mobile)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperr.Validation("invalid password")
	}

	return s.tokens.Issue(user.ID)
}

// Resolve verifies a bearer token and returns the tenant identity: the
// owner's id plus the coefficients current at call time.
func (s *Service) Resolve(ctx context.Context, token string) (models.Tenant, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return models.Tenant{}, err
	}

	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return models.Tenant{}, err
	}

	return models.Tenant{ID: user.ID, A: user.A, B: user.B}, nil
}

// Profile returns the owner's public profile fields.
func (s *Service) Profile(ctx context.Context, userID primitive.ObjectID) (models.User, error) {
	if userID.IsZero() {
		return models.User{}, apperr.Validation("user id is required")
	}
	return s.store.FindUserByID(ctx, userID)
}

// UpdateCoefficients replaces the owner's pricing coefficients. Entries
// already priced keep their snapshots.
func (s *Service) UpdateCoefficients(ctx context.Context, userID primitive.ObjectID, a, b *float64) (models.User, error) {
	if userID.IsZero() {
		return models.User{}, apperr.Validation("user id is required")
	}
	if a == nil || b == nil {
		return models.User{}, apperr.Validation("both a and b are required")
	}

	return s.store.UpdateCoefficients(ctx, userID, *a, *b)
}

// Coefficients returns the owner's current pricing coefficients.
func (s *Service) Coefficients(ctx context.Context, userID primitive.ObjectID) (float64, float64, error) {
	if userID.IsZero() {
		return 0, 0, apperr.Validation("user id is required")
	}

	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return user.A, user.B, nil
}
