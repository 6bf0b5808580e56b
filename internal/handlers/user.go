package handlers

import (
	"amparo/internal/repositories"
	"amparo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userRepo repositories.UserRepository
}

func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// Me returns the authenticated user's profile with current credit
// balances.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	user, err := h.userRepo.GetByID(claims.UserID)
	if err != nil {
		return utils.NotFound(c, "user not found")
	}
	return utils.Success(c, user)
}

type deviceTokenRequest struct {
	Token string `json:"token"`
}

// RegisterDevice stores the FCM registration token for push delivery.
func (h *UserHandler) RegisterDevice(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var req deviceTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if req.Token == "" {
		return utils.BadRequest(c, "token is required")
	}

	if err := h.userRepo.SetDeviceToken(claims.UserID, req.Token); err != nil {
		return utils.InternalError(c, "failed to store device token")
	}
	return utils.Success(c, fiber.Map{"message": "device registered"})
}

// ListAll returns every user. Admin only.
func (h *UserHandler) ListAll(c *fiber.Ctx) error {
	users, err := h.userRepo.List()
	if err != nil {
		return utils.InternalError(c, "failed to list users")
	}
	return utils.Success(c, users)
}
