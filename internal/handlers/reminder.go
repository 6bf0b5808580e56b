package handlers

import (
	"amparo/internal/services/reminder"
	"amparo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ReminderHandler struct {
	service reminder.Service
}

func NewReminderHandler(service reminder.Service) *ReminderHandler {
	return &ReminderHandler{service: service}
}

// Create adds a reminder to one of the chief's elders.
func (h *ReminderHandler) Create(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input reminder.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.ElderID == 0 || input.Title == "" || input.Time == "" {
		return utils.BadRequest(c, "elderId, title and time are required")
	}

	created, err := h.service.Create(claims.UserID, input)
	if err != nil {
		return utils.DomainFailure(c, err)
	}
	return utils.Respond(c, fiber.StatusCreated, created)
}

// Update edits a reminder owned by the chief.
func (h *ReminderHandler) Update(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid reminder id")
	}

	var input reminder.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	updated, err := h.service.Update(uint(id), claims.UserID, input)
	if err != nil {
		return utils.DomainFailure(c, err)
	}
	return utils.Success(c, updated)
}

// Delete removes a reminder owned by the chief.
func (h *ReminderHandler) Delete(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid reminder id")
	}

	if err := h.service.Delete(uint(id), claims.UserID); err != nil {
		return utils.DomainFailure(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "reminder removed"})
}

// Daily returns today's pending reminders for the calling elder login.
func (h *ReminderHandler) Daily(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}
	if claims.ElderProfileID == nil {
		return utils.Forbidden(c, "elder login required")
	}

	reminders, err := h.service.Daily(*claims.ElderProfileID)
	if err != nil {
		return utils.DomainFailure(c, err)
	}
	return utils.Success(c, reminders)
}

// MarkDone completes a reminder on behalf of the calling elder login.
func (h *ReminderHandler) MarkDone(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid reminder id")
	}

	if err := h.service.MarkDone(uint(id), claims.ElderProfileID); err != nil {
		return utils.DomainFailure(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "reminder completed"})
}
