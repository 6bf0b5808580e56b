package payment

import (
	"encoding/json"
	"fmt"
	"testing"

	domainerrors "amparo/internal/errors"
	"amparo/internal/models"
	"amparo/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v72"
)

type fakePaymentRepo struct {
	payments map[string]*models.Payment
	grants   int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*models.Payment)}
}

func (f *fakePaymentRepo) Create(payment *models.Payment) error {
	f.payments[payment.StripeSessionID] = payment
	return nil
}

func (f *fakePaymentRepo) GetBySessionID(sessionID string) (*models.Payment, error) {
	if p, ok := f.payments[sessionID]; ok {
		return p, nil
	}
	return nil, repositories.ErrPaymentNotFound
}

func (f *fakePaymentRepo) CompleteAndGrant(sessionID string, userID uint, paymentType string, amount float64) error {
	if p, ok := f.payments[sessionID]; ok && p.Status == models.PaymentStatusCompleted {
		return nil
	}
	f.payments[sessionID] = &models.Payment{
		UserID:          userID,
		Type:            paymentType,
		Amount:          amount,
		StripeSessionID: sessionID,
		Status:          models.PaymentStatusCompleted,
	}
	f.grants++
	return nil
}

func (f *fakePaymentRepo) ListByUser(userID uint) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	user *models.User
}

func (f *fakeUserRepo) Create(user *models.User) error { return nil }

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Update(user *models.User) error { return nil }
func (f *fakeUserRepo) UpdateStatus(userID uint, status string) error { return nil }
func (f *fakeUserRepo) SetDeviceToken(userID uint, token string) error { return nil }
func (f *fakeUserRepo) Delete(id uint) error { return nil }
func (f *fakeUserRepo) List() ([]models.User, error) { return nil, nil }

type stubCheckout struct {
	lastRequest CheckoutRequest
	err         error
}

func (s *stubCheckout) CreateSession(req CheckoutRequest) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	s.lastRequest = req
	return "cs_test_123", "https://checkout.example/cs_test_123", nil
}

// stubVerifier treats the payload as the pre-parsed event when the
// signature matches, mirroring the real verifier's all-or-nothing contract.
type stubVerifier struct {
	signature string
}

func (v *stubVerifier) ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	if sigHeader != v.signature {
		return stripe.Event{}, fmt.Errorf("signature mismatch")
	}
	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return stripe.Event{}, err
	}
	return event, nil
}

func completedSessionPayload(t *testing.T, sessionID, userID, productType string, amountTotal int64) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"id":           sessionID,
		"amount_total": amountTotal,
		"metadata": map[string]string{
			"userId": userID,
			"type":   productType,
		},
	})
	require.NoError(t, err)

	payload, err := json.Marshal(map[string]interface{}{
		"type": "checkout.session.completed",
		"data": map[string]interface{}{"object": json.RawMessage(raw)},
	})
	require.NoError(t, err)
	return payload
}

func newTestService(repo *fakePaymentRepo, checkout *stubCheckout) Service {
	user := &models.User{Email: "chief@example.com"}
	user.ID = 7
	return NewService(
		repo,
		&fakeUserRepo{user: user},
		checkout,
		&stubVerifier{signature: "valid"},
		"https://app.example/success",
		"https://app.example/cancel",
	)
}

func TestPaymentService_OpenCheckout(t *testing.T) {
	repo := newFakePaymentRepo()
	checkout := &stubCheckout{}
	service := newTestService(repo, checkout)

	url, err := service.OpenCheckout(7, models.PaymentTypeElderExtra)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/cs_test_123", url)

	assert.Equal(t, "chief@example.com", checkout.lastRequest.CustomerEmail)
	assert.Equal(t, int64(3000), checkout.lastRequest.AmountCents)
	assert.Equal(t, "7", checkout.lastRequest.Metadata["userId"])
	assert.Equal(t, models.PaymentTypeElderExtra, checkout.lastRequest.Metadata["type"])

	pending, err := repo.GetBySessionID("cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, pending.Status)
}

func TestPaymentService_OpenCheckoutUnknownProduct(t *testing.T) {
	service := newTestService(newFakePaymentRepo(), &stubCheckout{})

	_, err := service.OpenCheckout(7, "GOLD_PLAN")
	require.Error(t, err)
	var derr *domainerrors.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_PRODUCT", derr.Code)
}

func TestPaymentService_OpenCheckoutProviderDown(t *testing.T) {
	service := newTestService(newFakePaymentRepo(), &stubCheckout{err: assert.AnError})

	_, err := service.OpenCheckout(7, models.PaymentTypeElderExtra)
	assert.ErrorIs(t, err, domainerrors.ErrUpstreamFailure)
}

func TestPaymentService_WebhookGrantsOnce(t *testing.T) {
	repo := newFakePaymentRepo()
	service := newTestService(repo, &stubCheckout{})

	payload := completedSessionPayload(t, "cs_test_123", "7", models.PaymentTypeElderExtra, 3000)

	require.NoError(t, service.HandleCompletionNotification(payload, "valid"))
	require.Equal(t, 1, repo.grants)

	// Redelivery of the same session must not grant a second credit.
	require.NoError(t, service.HandleCompletionNotification(payload, "valid"))
	assert.Equal(t, 1, repo.grants)

	completed, err := repo.GetBySessionID("cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, completed.Status)
	assert.Equal(t, uint(7), completed.UserID)
	assert.Equal(t, 30.0, completed.Amount)
}

func TestPaymentService_WebhookInvalidSignature(t *testing.T) {
	repo := newFakePaymentRepo()
	service := newTestService(repo, &stubCheckout{})

	payload := completedSessionPayload(t, "cs_test_123", "7", models.PaymentTypeElderExtra, 3000)

	err := service.HandleCompletionNotification(payload, "forged")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidSignature)
	assert.Zero(t, repo.grants)
}

func TestPaymentService_WebhookMissingMetadata(t *testing.T) {
	repo := newFakePaymentRepo()
	service := newTestService(repo, &stubCheckout{})

	payload := completedSessionPayload(t, "cs_test_123", "", "", 3000)

	err := service.HandleCompletionNotification(payload, "valid")
	assert.ErrorIs(t, err, domainerrors.ErrMissingMetadata)
	assert.Zero(t, repo.grants)
}

func TestPaymentService_WebhookIgnoresOtherEvents(t *testing.T) {
	repo := newFakePaymentRepo()
	service := newTestService(repo, &stubCheckout{})

	payload, err := json.Marshal(map[string]interface{}{
		"type": "invoice.created",
		"data": map[string]interface{}{"object": map[string]string{}},
	})
	require.NoError(t, err)

	assert.NoError(t, service.HandleCompletionNotification(payload, "valid"))
	assert.Zero(t, repo.grants)
}
