package handlers

import (
	"amparo/internal/repositories"
	"amparo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports process liveness plus database and cache reachability.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":   "ok",
		"database": "ok",
		"cache":    "ok",
	}

	if repositories.DB == nil {
		status["database"] = "down"
	} else if db, err := repositories.DB.DB(); err != nil || db.Ping() != nil {
		status["database"] = "down"
	}

	if repositories.CacheService == nil {
		status["cache"] = "disabled"
	} else if err := repositories.CacheService.HealthCheck(c.Context()); err != nil {
		status["cache"] = "down"
	}

	if status["database"] == "down" {
		return utils.Respond(c, fiber.StatusServiceUnavailable, status)
	}
	return utils.Success(c, status)
}
