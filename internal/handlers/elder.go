package handlers

import (
	"amparo/internal/services/elder"
	"amparo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ElderHandler struct {
	service elder.Service
}

func NewElderHandler(service elder.Service) *ElderHandler {
	return &ElderHandler{service: service}
}

// Create registers a new elder under the authenticated chief.
func (h *ElderHandler) Create(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input elder.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.Name == "" || input.CPF == "" {
		return utils.BadRequest(c, "name and cpf are required")
	}

	created, err := h.service.Create(claims.UserID, input)
	if err != nil {
		return utils.DomainFailure(c, err)
	}

	return utils.Respond(c, fiber.StatusCreated, created)
}

// List returns the chief's elders with their logins and collaborators.
func (h *ElderHandler) List(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	elders, err := h.service.ListByChief(claims.UserID)
	if err != nil {
		return utils.DomainFailure(c, err)
	}
	return utils.Success(c, elders)
}

// ListAll returns every elder. Admin only.
func (h *ElderHandler) ListAll(c *fiber.Ctx) error {
	elders, err := h.service.List()
	if err != nil {
		return utils.DomainFailure(c, err)
	}
	return utils.Success(c, elders)
}

// Update edits an elder owned by the chief.
func (h *ElderHandler) Update(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid elder id")
	}

	var input elder.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	updated, err := h.service.Update(uint(id), claims.UserID, input)
	if err != nil {
		return utils.DomainFailure(c, err)
	}
	return utils.Success(c, updated)
}

// Delete removes an elder owned by the chief together with its login.
func (h *ElderHandler) Delete(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid elder id")
	}

	if err := h.service.Delete(uint(id), claims.UserID); err != nil {
		return utils.DomainFailure(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "elder removed"})
}
