package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wallet-service/internal/api/dto"
	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/service"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

// TradersHandler serves the public copy-trading surface.
type TradersHandler struct {
	copytrade *service.CopyTradeService
}

// NewTradersHandler constructs handler.
func NewTradersHandler(copytrade *service.CopyTradeService) *TradersHandler {
	return &TradersHandler{copytrade: copytrade}
}

// ListTraders GET /traders.
func (h *TradersHandler) ListTraders(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	traders, err := h.copytrade.ListTraders(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.TraderResponse, 0, len(traders))
	for i := range traders {
		items = append(items, traderResponse(&traders[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTrader GET /traders/:id.
func (h *TradersHandler) GetTrader(c *fiber.Ctx) error {
	trader, err := h.copytrade.GetTrader(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": traderResponse(trader)})
}

// OpenPosition POST /copy-positions.
func (h *TradersHandler) OpenPosition(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	var req dto.OpenCopyPositionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	allocation, err := parseAmount("allocation", req.Allocation)
	if err != nil {
		return err
	}
	position, err := h.copytrade.OpenPosition(c.UserContext(), profile.ID, req.TraderID, req.Symbol, allocation)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": copyPositionResponse(position)})
}

// ListPositions GET /copy-positions.
func (h *TradersHandler) ListPositions(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	limit, offset := parsePagination(c)
	positions, err := h.copytrade.ListPositions(c.UserContext(), profile.ID, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.CopyPositionResponse, 0, len(positions))
	for i := range positions {
		items = append(items, copyPositionResponse(&positions[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ClosePosition POST /copy-positions/:id/close.
func (h *TradersHandler) ClosePosition(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	position, err := h.copytrade.ClosePosition(c.UserContext(), profile.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": copyPositionResponse(position)})
}

func traderResponse(trader *domain.Trader) dto.TraderResponse {
	return dto.TraderResponse{
		ID:          trader.ID,
		Handle:      trader.Handle,
		DisplayName: trader.DisplayName,
		Strategy:    trader.Strategy,
		Profit30d:   trader.Profit30d.String(),
		WinRate:     trader.WinRate.String(),
		Active:      trader.Active,
	}
}

func copyPositionResponse(position *domain.CopyPosition) dto.CopyPositionResponse {
	return dto.CopyPositionResponse{
		ID:         position.ID,
		TraderID:   position.TraderID,
		Symbol:     position.Symbol,
		Allocation: position.Allocation.String(),
		Status:     string(position.Status),
		OpenedAt:   position.OpenedAt,
		ClosedAt:   position.ClosedAt,
	}
}
