package repositories

import (
	"errors"
	"time"

	"amparo/internal/models"

	"gorm.io/gorm"
)

var ErrCodeNotFound = errors.New("verification code not found")

// OTPRepository persists verification codes and the append-only resend log.
type OTPRepository interface {
	// CreateCode stores a freshly issued verification code
	CreateCode(code *models.VerificationCode) error

	// LatestMatching returns the most recent unused row for (email, code)
	LatestMatching(email, code string) (*models.VerificationCode, error)

	// MarkUsed consumes a code; a used row is never revalidated
	MarkUsed(id uint) error

	// InvalidateUnused marks all outstanding unused codes for an email as used
	InvalidateUnused(email string) error

	// LogResend appends a resend attempt; failures here never fail the caller
	LogResend(email, ip string, at time.Time) error

	// CountRecentResends counts attempts for (email, ip) since the given time
	CountRecentResends(email, ip string, since time.Time) (int64, error)
}

type otpRepository struct {
	db *gorm.DB
}

// NewOTPRepository creates a new instance of OTPRepository.
func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) CreateCode(code *models.VerificationCode) error {
	if err := r.db.Create(code).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *otpRepository) LatestMatching(email, code string) (*models.VerificationCode, error) {
	var row models.VerificationCode
	result := r.db.Where("email = ? AND code = ? AND used = ?", email, code, false).
		Order("created_at desc").
		First(&row)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrCodeNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &row, nil
}

func (r *otpRepository) MarkUsed(id uint) error {
	result := r.db.Model(&models.VerificationCode{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrCodeNotFound
	}
	return nil
}

func (r *otpRepository) InvalidateUnused(email string) error {
	err := r.db.Model(&models.VerificationCode{}).
		Where("email = ? AND used = ?", email, false).
		Update("used", true).Error
	if err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *otpRepository) LogResend(email, ip string, at time.Time) error {
	entry := models.OTPResendLog{Email: email, IP: ip, SentAt: at}
	if err := r.db.Create(&entry).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *otpRepository) CountRecentResends(email, ip string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.OTPResendLog{}).
		Where("email = ? AND ip = ? AND sent_at > ?", email, ip, since).
		Count(&count).Error
	if err != nil {
		return 0, ErrDatabaseOperation
	}
	return count, nil
}
