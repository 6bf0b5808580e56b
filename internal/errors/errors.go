// Package errors defines the domain error type shared by every service.
// Handlers map a DomainError straight onto the HTTP response, so services
// never reach for fiber status codes themselves.
package errors

import "github.com/gofiber/fiber/v2"

// DomainError is a typed business-rule failure carrying a machine-readable
// code and its HTTP-equivalent status.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is lets errors.Is match on the code rather than pointer identity.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// Internal wraps an unexpected failure into a generic 500 error.
func Internal(message string) *DomainError {
	return &DomainError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Status:  fiber.StatusInternalServerError,
	}
}
