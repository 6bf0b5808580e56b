package handlers

import (
	"amparo/internal/services/payment"
	"amparo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	service payment.Service
}

func NewPaymentHandler(service payment.Service) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type checkoutRequest struct {
	Type string `json:"type"`
}

// Checkout opens a hosted checkout session for a credit purchase and
// returns the redirect URL.
func (h *PaymentHandler) Checkout(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if req.Type == "" {
		return utils.BadRequest(c, "type is required")
	}

	url, err := h.service.OpenCheckout(claims.UserID, req.Type)
	if err != nil {
		return utils.DomainFailure(c, err)
	}

	return utils.Success(c, fiber.Map{"url": url})
}

// Webhook receives provider completion notifications. Unauthenticated by
// design; the signature header is the authentication. Any reconcile
// failure returns 500 so the provider redelivers.
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("Stripe-Signature")

	if err := h.service.HandleCompletionNotification(payload, signature); err != nil {
		return utils.DomainFailure(c, err)
	}

	return utils.Success(c, fiber.Map{"received": true})
}

// History returns the authenticated user's payments, newest first.
func (h *PaymentHandler) History(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	payments, err := h.service.ListByUser(claims.UserID)
	if err != nil {
		return utils.DomainFailure(c, err)
	}
	return utils.Success(c, payments)
}
