package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wallet-service/internal/api/dto"
	"github.com/spec-kit/wallet-service/internal/service"
)

// TokensHandler serves the cached token configuration.
type TokensHandler struct {
	tokens *service.TokenService
}

// NewTokensHandler constructs handler.
func NewTokensHandler(tokens *service.TokenService) *TokensHandler {
	return &TokensHandler{tokens: tokens}
}

// List GET /config/tokens.
func (h *TokensHandler) List(c *fiber.Ctx) error {
	tokens, err := h.tokens.ActiveTokens(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TokenResponse, 0, len(tokens))
	for _, token := range tokens {
		items = append(items, tokenResponse(token))
	}
	return c.JSON(fiber.Map{"data": items})
}
