// Package handlers contains the fiber HTTP handlers. Handlers parse and
// validate input, call one service method, and shape the response; all
// business rules live in the services.
package handlers

import (
	"amparo/internal/models"
	"amparo/internal/services/auth"
	"amparo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// currentClaims pulls the verified session claims set by the auth
// middleware. Handlers behind the middleware can rely on it being set.
func currentClaims(c *fiber.Ctx) (*models.UserClaims, bool) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	return claims, ok
}

type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(service auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a chief account and emails the first verification code.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return utils.BadRequest(c, "name, email and password are required")
	}

	if err := h.service.RegisterChief(req.Name, req.Email, req.Password); err != nil {
		return utils.DomainFailure(c, err)
	}

	return utils.Respond(c, fiber.StatusCreated, fiber.Map{
		"message": "verification code sent",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks the password and emails a verification code. The session
// token only comes out of Verify.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return utils.BadRequest(c, "email and password are required")
	}

	if err := h.service.Login(req.Email, req.Password); err != nil {
		return utils.DomainFailure(c, err)
	}

	return utils.Success(c, fiber.Map{"message": "verification code sent"})
}

type loginElderRequest struct {
	Email string `json:"email"`
}

// LoginElder emails a code to an elder login, which has no password step.
func (h *AuthHandler) LoginElder(c *fiber.Ctx) error {
	var req loginElderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if req.Email == "" {
		return utils.BadRequest(c, "email is required")
	}

	if err := h.service.LoginElder(req.Email); err != nil {
		return utils.DomainFailure(c, err)
	}

	return utils.Success(c, fiber.Map{"message": "verification code sent"})
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Verify consumes the emailed code and returns the session token.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if req.Email == "" || req.Code == "" {
		return utils.BadRequest(c, "email and code are required")
	}

	user, token, err := h.service.VerifyOTP(req.Email, req.Code)
	if err != nil {
		return utils.DomainFailure(c, err)
	}

	return utils.Success(c, fiber.Map{
		"token": token,
		"user":  user,
	})
}

type resendRequest struct {
	Email string `json:"email"`
}

// Resend re-issues a verification code under the per-email, per-IP
// throttle.
func (h *AuthHandler) Resend(c *fiber.Ctx) error {
	var req resendRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if req.Email == "" {
		return utils.BadRequest(c, "email is required")
	}

	if err := h.service.Resend(req.Email, c.IP()); err != nil {
		return utils.DomainFailure(c, err)
	}

	return utils.Success(c, fiber.Map{"message": "verification code sent"})
}
