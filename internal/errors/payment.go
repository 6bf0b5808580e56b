package errors

import "github.com/gofiber/fiber/v2"

var (
	ErrInvalidSignature = &DomainError{
		Code:    "INVALID_SIGNATURE",
		Message: "webhook signature verification failed",
		Status:  fiber.StatusBadRequest,
	}
	ErrMissingMetadata = &DomainError{
		Code:    "MISSING_METADATA",
		Message: "checkout session metadata is incomplete",
		Status:  fiber.StatusBadRequest,
	}
	ErrUpstreamFailure = &DomainError{
		Code:    "UPSTREAM_FAILURE",
		Message: "upstream provider error",
		Status:  fiber.StatusBadGateway,
	}
)
