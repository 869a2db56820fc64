package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wallet-service/internal/service"
)

// WebhookHandler receives payment provider callbacks.
type WebhookHandler struct {
	webhooks *service.WebhookService
}

// NewWebhookHandler constructs handler.
func NewWebhookHandler(webhooks *service.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks}
}

// Plisio POST /webhooks/plisio. The raw body is handed to the service
// untouched so signature verification sees the exact bytes sent.
func (h *WebhookHandler) Plisio(c *fiber.Ctx) error {
	if err := h.webhooks.ProcessPlisio(c.UserContext(), c.Body()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "ok"}})
}
