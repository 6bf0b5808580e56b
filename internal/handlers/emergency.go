package handlers

import (
	"amparo/internal/services/emergency"
	"amparo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type EmergencyHandler struct {
	service emergency.Service
}

func NewEmergencyHandler(service emergency.Service) *EmergencyHandler {
	return &EmergencyHandler{service: service}
}

// Trigger raises an alert for the calling elder login. The alert is
// persisted first; notification delivery is best-effort.
func (h *EmergencyHandler) Trigger(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	alert, err := h.service.Trigger(claims.ElderProfileID)
	if err != nil {
		return utils.DomainFailure(c, err)
	}

	return utils.Respond(c, fiber.StatusCreated, alert)
}

// List returns the alerts visible to the authenticated user, newest first.
func (h *EmergencyHandler) List(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	alerts, err := h.service.List(claims.UserID)
	if err != nil {
		return utils.DomainFailure(c, err)
	}
	return utils.Success(c, alerts)
}

// Resolve acknowledges an alert.
func (h *EmergencyHandler) Resolve(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid alert id")
	}

	if err := h.service.Resolve(uint(id)); err != nil {
		return utils.DomainFailure(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "alert resolved"})
}
