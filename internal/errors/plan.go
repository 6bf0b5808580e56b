package errors

import "github.com/gofiber/fiber/v2"

var (
	ErrPlanRequired = &DomainError{
		Code:    "PLAN_REQUIRED",
		Message: "free tier limit reached, purchase credits to add more",
		Status:  fiber.StatusPaymentRequired,
	}
	ErrElderAlreadyExists = &DomainError{
		Code:    "ELDER_ALREADY_EXISTS",
		Message: "an elder with this CPF is already registered",
		Status:  fiber.StatusBadRequest,
	}
	ErrElderNotFound = &DomainError{
		Code:    "ELDER_NOT_FOUND",
		Message: "elder not found",
		Status:  fiber.StatusNotFound,
	}
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
		Status:  fiber.StatusNotFound,
	}
	ErrCollaboratorNotLinked = &DomainError{
		Code:    "COLLABORATOR_NOT_LINKED",
		Message: "collaborator is not linked to any elder",
		Status:  fiber.StatusBadRequest,
	}
	ErrMissingCredentials = &DomainError{
		Code:    "MISSING_CREDENTIALS",
		Message: "email and password are required to create a login",
		Status:  fiber.StatusBadRequest,
	}
)
