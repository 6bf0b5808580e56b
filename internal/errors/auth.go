package errors

import "github.com/gofiber/fiber/v2"

var (
	// ErrInvalidCredentials is deliberately uniform for unknown email and
	// wrong password so login never reveals which one failed.
	ErrInvalidCredentials = &DomainError{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid email or password",
		Status:  fiber.StatusUnauthorized,
	}
	ErrInvalidCode = &DomainError{
		Code:    "INVALID_CODE",
		Message: "invalid verification code",
		Status:  fiber.StatusBadRequest,
	}
	ErrCodeExpired = &DomainError{
		Code:    "CODE_EXPIRED",
		Message: "verification code has expired",
		Status:  fiber.StatusBadRequest,
	}
	ErrResendLimitExceeded = &DomainError{
		Code:    "RESEND_LIMIT_EXCEEDED",
		Message: "too many resend attempts, try again later",
		Status:  fiber.StatusTooManyRequests,
	}
	ErrEmailAlreadyRegistered = &DomainError{
		Code:    "EMAIL_ALREADY_REGISTERED",
		Message: "email already registered",
		Status:  fiber.StatusBadRequest,
	}
	ErrForbidden = &DomainError{
		Code:    "FORBIDDEN",
		Message: "access denied",
		Status:  fiber.StatusForbidden,
	}
	ErrUnauthorized = &DomainError{
		Code:    "UNAUTHORIZED",
		Message: "invalid or expired token",
		Status:  fiber.StatusUnauthorized,
	}
)
