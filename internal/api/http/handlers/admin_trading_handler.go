package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wallet-service/internal/api/dto"
	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/service"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

// AdminTradingHandler manages trader and vault catalogs for staff.
type AdminTradingHandler struct {
	copytrade *service.CopyTradeService
	earn      *service.EarnService
}

// NewAdminTradingHandler constructs handler.
func NewAdminTradingHandler(copytrade *service.CopyTradeService, earn *service.EarnService) *AdminTradingHandler {
	return &AdminTradingHandler{copytrade: copytrade, earn: earn}
}

// ListTraders GET /admin/traders.
func (h *AdminTradingHandler) ListTraders(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	traders, err := h.copytrade.ListTradersForStaff(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.TraderResponse, 0, len(traders))
	for i := range traders {
		items = append(items, traderResponse(&traders[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateTrader POST /admin/traders.
func (h *AdminTradingHandler) CreateTrader(c *fiber.Ctx) error {
	var req dto.TraderUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	trader := domain.Trader{Active: true}
	if err := applyTraderRequest(&trader, req); err != nil {
		return err
	}
	if err := h.copytrade.CreateTrader(c.UserContext(), &trader); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": traderResponse(&trader)})
}

// UpdateTrader PUT /admin/traders/:id.
func (h *AdminTradingHandler) UpdateTrader(c *fiber.Ctx) error {
	trader, err := h.copytrade.GetTraderForStaff(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.TraderUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := applyTraderRequest(trader, req); err != nil {
		return err
	}
	if err := h.copytrade.UpdateTrader(c.UserContext(), trader); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": traderResponse(trader)})
}

// DeleteTrader DELETE /admin/traders/:id.
func (h *AdminTradingHandler) DeleteTrader(c *fiber.Ctx) error {
	if err := h.copytrade.DeleteTrader(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListVaults GET /admin/earn/vaults.
func (h *AdminTradingHandler) ListVaults(c *fiber.Ctx) error {
	vaults, err := h.earn.ListVaultsForStaff(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.VaultResponse, 0, len(vaults))
	for i := range vaults {
		items = append(items, vaultResponse(&vaults[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateVault POST /admin/earn/vaults.
func (h *AdminTradingHandler) CreateVault(c *fiber.Ctx) error {
	var req dto.VaultUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	vault := domain.EarnVault{Active: true}
	if err := applyVaultRequest(&vault, req); err != nil {
		return err
	}
	if err := h.earn.CreateVault(c.UserContext(), &vault); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": vaultResponse(&vault)})
}

// UpdateVault PUT /admin/earn/vaults/:id.
func (h *AdminTradingHandler) UpdateVault(c *fiber.Ctx) error {
	vault, err := h.earn.GetVaultForStaff(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.VaultUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := applyVaultRequest(vault, req); err != nil {
		return err
	}
	if err := h.earn.UpdateVault(c.UserContext(), vault); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": vaultResponse(vault)})
}

// DeleteVault DELETE /admin/earn/vaults/:id.
func (h *AdminTradingHandler) DeleteVault(c *fiber.Ctx) error {
	if err := h.earn.DeleteVault(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func applyTraderRequest(trader *domain.Trader, req dto.TraderUpsertRequest) error {
	if req.Handle != "" {
		trader.Handle = req.Handle
	}
	if req.DisplayName != "" {
		trader.DisplayName = req.DisplayName
	}
	if req.Strategy != "" {
		trader.Strategy = req.Strategy
	}
	if req.Profit30d != "" {
		profit, err := parseAmount("profit_30d", req.Profit30d)
		if err != nil {
			return err
		}
		trader.Profit30d = profit
	}
	if req.WinRate != "" {
		winRate, err := parseAmount("win_rate", req.WinRate)
		if err != nil {
			return err
		}
		trader.WinRate = winRate
	}
	if req.Active != nil {
		trader.Active = *req.Active
	}
	return nil
}

func applyVaultRequest(vault *domain.EarnVault, req dto.VaultUpsertRequest) error {
	if req.Symbol != "" {
		vault.Symbol = req.Symbol
	}
	if req.Name != "" {
		vault.Name = req.Name
	}
	if req.APY != "" {
		apy, err := parseAmount("apy", req.APY)
		if err != nil {
			return err
		}
		vault.APY = apy
	}
	if req.LockDays != 0 {
		vault.LockDays = req.LockDays
	}
	if req.MinStake != "" {
		minStake, err := parseAmount("min_stake", req.MinStake)
		if err != nil {
			return err
		}
		vault.MinStake = minStake
	}
	if req.Active != nil {
		vault.Active = *req.Active
	}
	return nil
}
