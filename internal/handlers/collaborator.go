package handlers

import (
	"amparo/internal/services/collaborator"
	"amparo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CollaboratorHandler struct {
	service collaborator.Service
}

func NewCollaboratorHandler(service collaborator.Service) *CollaboratorHandler {
	return &CollaboratorHandler{service: service}
}

// Register creates a collaborator account linked to an elder by CPF.
// Public endpoint: the collaborator signs themselves up with the CPF the
// family shared, and the owning chief's quota is charged.
func (h *CollaboratorHandler) Register(c *fiber.Ctx) error {
	var input collaborator.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.Name == "" || input.Email == "" || input.Password == "" || input.ElderCPF == "" {
		return utils.BadRequest(c, "name, email, password and elderCpf are required")
	}

	if err := h.service.Register(input); err != nil {
		return utils.DomainFailure(c, err)
	}

	return utils.Respond(c, fiber.StatusCreated, fiber.Map{
		"message": "verification code sent",
	})
}

// List returns the collaborator links under the authenticated chief.
func (h *CollaboratorHandler) List(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	links, err := h.service.ListByChief(claims.UserID)
	if err != nil {
		return utils.DomainFailure(c, err)
	}
	return utils.Success(c, links)
}

// Remove deletes a collaborator link owned by the chief.
func (h *CollaboratorHandler) Remove(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid collaborator id")
	}

	if err := h.service.Remove(uint(id), claims.UserID); err != nil {
		return utils.DomainFailure(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "collaborator removed"})
}
