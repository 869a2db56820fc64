package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wallet-service/internal/api/dto"
	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/service"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

// EarnHandler serves the public earn surface.
type EarnHandler struct {
	earn *service.EarnService
}

// NewEarnHandler constructs handler.
func NewEarnHandler(earn *service.EarnService) *EarnHandler {
	return &EarnHandler{earn: earn}
}

// ListVaults GET /earn/vaults.
func (h *EarnHandler) ListVaults(c *fiber.Ctx) error {
	vaults, err := h.earn.ListVaults(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.VaultResponse, 0, len(vaults))
	for i := range vaults {
		items = append(items, vaultResponse(&vaults[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Stake POST /earn/positions.
func (h *EarnHandler) Stake(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	var req dto.StakeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return err
	}
	position, err := h.earn.Stake(c.UserContext(), profile.ID, req.VaultID, amount)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": earnPositionResponse(position)})
}

// ListPositions GET /earn/positions.
func (h *EarnHandler) ListPositions(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	limit, offset := parsePagination(c)
	positions, err := h.earn.ListPositions(c.UserContext(), profile.ID, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.EarnPositionResponse, 0, len(positions))
	for i := range positions {
		items = append(items, earnPositionResponse(&positions[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Withdraw POST /earn/positions/:id/withdraw.
func (h *EarnHandler) Withdraw(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	position, err := h.earn.Withdraw(c.UserContext(), profile.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": earnPositionResponse(position)})
}

func vaultResponse(vault *domain.EarnVault) dto.VaultResponse {
	return dto.VaultResponse{
		ID:       vault.ID,
		Symbol:   vault.Symbol,
		Name:     vault.Name,
		APY:      vault.APY.String(),
		LockDays: vault.LockDays,
		MinStake: vault.MinStake.String(),
		Active:   vault.Active,
	}
}

func earnPositionResponse(position *domain.EarnPosition) dto.EarnPositionResponse {
	return dto.EarnPositionResponse{
		ID:         position.ID,
		VaultID:    position.VaultID,
		Symbol:     position.Symbol,
		Amount:     position.Amount.String(),
		Status:     string(position.Status),
		OpenedAt:   position.OpenedAt,
		MaturesAt:  position.MaturesAt,
		ReleasedAt: position.ReleasedAt,
	}
}
