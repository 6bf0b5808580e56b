package models

import (
	"time"

	"gorm.io/gorm"
)

// VerificationCode is a one-time password row. Multiple rows may exist per
// email; only the most recent unused, unexpired one is valid.
type VerificationCode struct {
	gorm.Model
	Email     string    `gorm:"index;not null"`
	Code      string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"default:false"`
}

// OTPResendLog is an append-only audit row backing the sliding-window resend
// limit. Rows are never deleted.
type OTPResendLog struct {
	ID     uint      `gorm:"primarykey"`
	Email  string    `gorm:"index:idx_resend_email_ip;not null"`
	IP     string    `gorm:"index:idx_resend_email_ip;not null"`
	SentAt time.Time `gorm:"index;not null"`
}
