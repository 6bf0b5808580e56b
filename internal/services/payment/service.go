// Package payment bridges the credit ledger to Stripe hosted checkout.
// Completion arrives asynchronously via webhook and is reconciled
// idempotently: the provider redelivers on any non-success response.
package payment

import (
	"encoding/json"
	"strconv"

	domainerrors "amparo/internal/errors"
	"amparo/internal/models"
	"amparo/internal/repositories"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v72"
)

// Fixed prices in BRL cents.
var prices = map[string]int64{
	models.PaymentTypeElderExtra:   3000,
	models.PaymentTypeCollaborator: 3000,
}

var productNames = map[string]string{
	models.PaymentTypeElderExtra:   "Crédito: Idoso Adicional",
	models.PaymentTypeCollaborator: "Crédito: Colaborador Adicional",
}

// CheckoutClient opens a hosted checkout session with the provider.
type CheckoutClient interface {
	CreateSession(req CheckoutRequest) (sessionID, url string, err error)
}

// CheckoutRequest carries everything the provider needs to build the
// hosted page.
type CheckoutRequest struct {
	CustomerEmail string
	ProductName   string
	AmountCents   int64
	Currency      string
	Metadata      map[string]string
	SuccessURL    string
	CancelURL     string
}

// EventVerifier authenticates a raw webhook payload against the shared
// signing secret.
type EventVerifier interface {
	ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error)
}

type Service interface {
	// OpenCheckout opens a checkout session for the product and returns
	// the redirect URL.
	OpenCheckout(userID uint, productType string) (string, error)

	// HandleCompletionNotification verifies and reconciles a webhook
	// delivery. Safe to call any number of times for the same session.
	HandleCompletionNotification(payload []byte, signature string) error

	// ListByUser returns the user's payment history, newest first.
	ListByUser(userID uint) ([]models.Payment, error)
}

type service struct {
	repo       repositories.PaymentRepository
	userRepo   repositories.UserRepository
	checkout   CheckoutClient
	verifier   EventVerifier
	successURL string
	cancelURL  string
}

// NewService creates a new payment service.
func NewService(
	repo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
	checkout CheckoutClient,
	verifier EventVerifier,
	successURL, cancelURL string,
) Service {
	return &service{
		repo:       repo,
		userRepo:   userRepo,
		checkout:   checkout,
		verifier:   verifier,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (s *service) OpenCheckout(userID uint, productType string) (string, error) {
	amount, ok := prices[productType]
	if !ok {
		return "", &domainerrors.DomainError{
			Code:    "INVALID_PRODUCT",
			Message: "unknown product type",
			Status:  400,
		}
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", domainerrors.ErrUserNotFound
	}

	sessionID, url, err := s.checkout.CreateSession(CheckoutRequest{
		CustomerEmail: user.Email,
		ProductName:   productNames[productType],
		AmountCents:   amount,
		Currency:      "brl",
		Metadata: map[string]string{
			"userId": strconv.FormatUint(uint64(userID), 10),
			"type":   productType,
		},
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
	})
	if err != nil {
		return "", domainerrors.ErrUpstreamFailure
	}

	record := &models.Payment{
		UserID:          userID,
		Type:            productType,
		Amount:          float64(amount) / 100,
		Reference:       uuid.NewString(),
		StripeSessionID: sessionID,
		Status:          models.PaymentStatusPending,
	}
	if err := s.repo.Create(record); err != nil {
		return "", err
	}

	return url, nil
}

func (s *service) HandleCompletionNotification(payload []byte, signature string) error {
	// Authenticity first: nothing is touched on a bad signature.
	event, err := s.verifier.ConstructEvent(payload, signature)
	if err != nil {
		return domainerrors.ErrInvalidSignature
	}

	if event.Type != "checkout.session.completed" {
		return nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return domainerrors.ErrMissingMetadata
	}

	userIDStr := session.Metadata["userId"]
	productType := session.Metadata["type"]
	if userIDStr == "" || productType == "" || session.ID == "" {
		return domainerrors.ErrMissingMetadata
	}

	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		return domainerrors.ErrMissingMetadata
	}

	// Fast path for replays: an already-completed session is acknowledged
	// without touching the ledger.
	if existing, err := s.repo.GetBySessionID(session.ID); err == nil &&
		existing.Status == models.PaymentStatusCompleted {
		return nil
	}

	amount := float64(prices[productType]) / 100
	if session.AmountTotal > 0 {
		amount = float64(session.AmountTotal) / 100
	}

	return s.repo.CompleteAndGrant(session.ID, uint(userID), productType, amount)
}

func (s *service) ListByUser(userID uint) ([]models.Payment, error) {
	return s.repo.ListByUser(userID)
}
