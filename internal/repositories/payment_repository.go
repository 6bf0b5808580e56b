package repositories

import (
	"context"
	"errors"
	"log"

	"amparo/internal/models"
	"amparo/internal/repositories/cache"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPaymentNotFound = errors.New("payment not found")

// PaymentRepository persists checkout sessions and reconciles completions.
type PaymentRepository interface {
	// Create inserts a PENDING payment keyed by the external session id
	Create(payment *models.Payment) error

	// GetBySessionID looks up a payment by the external session id
	GetBySessionID(sessionID string) (*models.Payment, error)

	// CompleteAndGrant marks the payment COMPLETED and increments the
	// matching credit counter in one transaction. Safe to call again for an
	// already-completed session: the second call is a no-op.
	CompleteAndGrant(sessionID string, userID uint, paymentType string, amount float64) error

	// ListByUser returns a user's payments, newest first
	ListByUser(userID uint) ([]models.Payment, error)
}

type paymentRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *gorm.DB, cache *cache.CacheService) PaymentRepository {
	return &paymentRepository{db: db, cache: cache}
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	if err := r.db.Create(payment).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *paymentRepository) GetBySessionID(sessionID string) (*models.Payment, error) {
	var payment models.Payment
	result := r.db.Where("stripe_session_id = ?", sessionID).First(&payment)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrPaymentNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &payment, nil
}

func (r *paymentRepository) CompleteAndGrant(sessionID string, userID uint, paymentType string, amount float64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("stripe_session_id = ?", sessionID).
			First(&payment).Error

		switch err {
		case nil:
			// Re-check under the lock so two concurrent deliveries cannot
			// both grant credits.
			if payment.Status == models.PaymentStatusCompleted {
				return nil
			}
			payment.Status = models.PaymentStatusCompleted
			payment.Amount = amount
			if err := tx.Save(&payment).Error; err != nil {
				return err
			}
		case gorm.ErrRecordNotFound:
			// Checkout opened elsewhere (or the PENDING insert was lost);
			// record the completion directly.
			payment = models.Payment{
				UserID:          userID,
				Type:            paymentType,
				Amount:          amount,
				StripeSessionID: sessionID,
				Status:          models.PaymentStatusCompleted,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
		default:
			return err
		}

		column := "elder_credits"
		if paymentType == models.PaymentTypeCollaborator {
			column = "collaborator_credits"
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn(column, gorm.Expr(column+" + 1")).Error
	})
	if err != nil {
		return err
	}

	if r.cache != nil {
		if cerr := r.cache.InvalidateUser(context.Background(), userID); cerr != nil {
			log.Printf("failed to invalidate user cache %d: %v", userID, cerr)
		}
	}
	return nil
}

func (r *paymentRepository) ListByUser(userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&payments).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return payments, nil
}
