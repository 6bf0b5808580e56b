// Package auth composes the OTP engine and the session issuer into the
// login flows: password login and registration both end with an emailed
// code, and only a verified code yields a session token.
package auth

import (
	"log"

	domainerrors "amparo/internal/errors"
	"amparo/internal/models"
	"amparo/internal/repositories"
	"amparo/internal/services/otp"
	"amparo/internal/utils"
	"amparo/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	// RegisterChief creates a PENDING chief account and emails the first
	// verification code. The account is abandoned if the email fails.
	RegisterChief(name, email, password string) error

	// Login checks the password and emails a verification code. Unknown
	// email and wrong password are indistinguishable to the caller.
	Login(email, password string) error

	// LoginElder emails a code to an elder login; elders have no password.
	LoginElder(email string) error

	// VerifyOTP consumes the code and issues the 7-day session token.
	VerifyOTP(email, code string) (*models.User, string, error)

	// Resend re-issues a code under the (email, ip) throttle.
	Resend(email, ip string) error
}

type service struct {
	userRepo   repositories.UserRepository
	collabRepo repositories.CollaboratorRepository
	otpService otp.Service
}

// NewService creates a new auth service.
func NewService(userRepo repositories.UserRepository, collabRepo repositories.CollaboratorRepository, otpService otp.Service) Service {
	return &service{
		userRepo:   userRepo,
		collabRepo: collabRepo,
		otpService: otpService,
	}
}

func (s *service) RegisterChief(name, email, password string) error {
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return domainerrors.ErrEmailAlreadyRegistered
	}

	if !validation.ValidPassword(password) {
		return &domainerrors.DomainError{
			Code:    "WEAK_PASSWORD",
			Message: "password is too short",
			Status:  400,
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleChief,
		Status:   models.StatusPending,
	}
	if err := s.userRepo.Create(user); err != nil {
		return err
	}

	if err := s.otpService.Issue(email); err != nil {
		// Registration does not commit without the verification email;
		// drop the account so the email can be tried again.
		if derr := s.userRepo.Delete(user.ID); derr != nil {
			log.Printf("auth: failed to roll back user %d after email failure: %v", user.ID, derr)
		}
		return err
	}

	return nil
}

func (s *service) Login(email, password string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return domainerrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domainerrors.ErrInvalidCredentials
	}

	return s.otpService.Issue(email)
}

func (s *service) LoginElder(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil || user.Role != models.RoleElder {
		return domainerrors.ErrInvalidCredentials
	}

	return s.otpService.Issue(email)
}

func (s *service) VerifyOTP(email, code string) (*models.User, string, error) {
	user, err := s.otpService.Verify(email, code)
	if err != nil {
		return nil, "", err
	}

	// A collaborator whose link row is missing was never admitted by a
	// chief; refuse the session.
	if user.Role == models.RoleCollaborator {
		if _, err := s.collabRepo.GetByUserID(user.ID); err != nil {
			return nil, "", domainerrors.ErrCollaboratorNotLinked
		}
	}

	token, err := utils.GenerateToken(&models.UserClaims{
		UserID:         user.ID,
		Email:          user.Email,
		Role:           user.Role,
		ElderProfileID: user.ElderProfileID,
	})
	if err != nil {
		log.Printf("auth: error generating token for user %d: %v", user.ID, err)
		return nil, "", err
	}

	return user, token, nil
}

func (s *service) Resend(email, ip string) error {
	return s.otpService.Resend(email, ip)
}
