// Package otp implements one-time-password issuance, verification and
// resend throttling. Codes are single-use and time-boxed; the resend
// limiter is keyed on (email, ip) jointly so one principal cannot exhaust
// another's quota.
package otp

import (
	"log"
	"time"

	mail "amparo/internal/email"
	domainerrors "amparo/internal/errors"
	"amparo/internal/models"
	"amparo/internal/repositories"
	"amparo/internal/utils"
)

// EmailSender is the outbound mail contract. A send failure is fatal to
// the enclosing operation.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

type Service interface {
	// Issue generates and emails a fresh code. Prior codes stay valid.
	Issue(email string) error

	// Verify consumes the most recent unused code matching (email, code),
	// activates the account, and returns the user. Wrong code and expired
	// code are distinct failures.
	Verify(email, code string) (*models.User, error)

	// Resend throttles by (email, ip), invalidates all outstanding codes
	// for the email, and issues a fresh one.
	Resend(email, ip string) error
}

// Config bounds the engine. Zero values fall back to the shipped defaults.
type Config struct {
	TTL          time.Duration
	ResendWindow time.Duration
	ResendLimit  int64
}

type service struct {
	repo     repositories.OTPRepository
	userRepo repositories.UserRepository
	sender   EmailSender
	config   Config
}

// NewService creates a new OTP service.
func NewService(repo repositories.OTPRepository, userRepo repositories.UserRepository, sender EmailSender, config Config) Service {
	if config.TTL == 0 {
		config.TTL = 10 * time.Minute
	}
	if config.ResendWindow == 0 {
		config.ResendWindow = 10 * time.Minute
	}
	if config.ResendLimit == 0 {
		config.ResendLimit = 3
	}
	return &service{
		repo:     repo,
		userRepo: userRepo,
		sender:   sender,
		config:   config,
	}
}

func (s *service) Issue(email string) error {
	code, err := utils.GenerateOTPCode()
	if err != nil {
		return err
	}

	ttlMinutes := int(s.config.TTL / time.Minute)
	if err := s.sender.Send(email, mail.OTPSubject, mail.OTPBody(code, ttlMinutes)); err != nil {
		return domainerrors.ErrUpstreamFailure
	}

	// Persisted only after the send succeeds; an aborted registration must
	// not leave a verification row for an email with no account.
	record := &models.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.config.TTL),
	}
	return s.repo.CreateCode(record)
}

func (s *service) Verify(email, code string) (*models.User, error) {
	record, err := s.repo.LatestMatching(email, code)
	if err != nil {
		if err == repositories.ErrCodeNotFound {
			return nil, domainerrors.ErrInvalidCode
		}
		return nil, err
	}

	// Existence is checked before expiry so an expired-but-matching code
	// fails differently from a wrong code.
	if time.Now().After(record.ExpiresAt) {
		return nil, domainerrors.ErrCodeExpired
	}

	if err := s.repo.MarkUsed(record.ID); err != nil {
		if err == repositories.ErrCodeNotFound {
			// Consumed by a concurrent verify between lookup and update.
			return nil, domainerrors.ErrInvalidCode
		}
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, err
	}

	// The only path that activates a PENDING account.
	if user.Status != models.StatusActive {
		if err := s.userRepo.UpdateStatus(user.ID, models.StatusActive); err != nil {
			return nil, err
		}
		user.Status = models.StatusActive
	}

	return user, nil
}

func (s *service) Resend(email, ip string) error {
	since := time.Now().Add(-s.config.ResendWindow)
	count, err := s.repo.CountRecentResends(email, ip, since)
	if err != nil {
		return err
	}
	if count >= s.config.ResendLimit {
		return domainerrors.ErrResendLimitExceeded
	}

	// The log is an audit trail; a failed append never fails the resend.
	if err := s.repo.LogResend(email, ip, time.Now()); err != nil {
		log.Printf("otp: failed to log resend for %s: %v", email, err)
	}

	if err := s.repo.InvalidateUnused(email); err != nil {
		return err
	}

	return s.Issue(email)
}
