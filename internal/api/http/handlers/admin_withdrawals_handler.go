package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wallet-service/internal/api/dto"
	"github.com/spec-kit/wallet-service/internal/service"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

// AdminWithdrawalsHandler serves the withdrawal review queue.
type AdminWithdrawalsHandler struct {
	wallet *service.WalletService
}

// NewAdminWithdrawalsHandler constructs handler.
func NewAdminWithdrawalsHandler(wallet *service.WalletService) *AdminWithdrawalsHandler {
	return &AdminWithdrawalsHandler{wallet: wallet}
}

// List GET /admin/withdrawals. Pending requests, newest first.
func (h *AdminWithdrawalsHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	txns, err := h.wallet.ListWithdrawals(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, transactionResponse(&txns[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Review POST /admin/withdrawals/:id/review.
func (h *AdminWithdrawalsHandler) Review(c *fiber.Ctx) error {
	var req dto.WithdrawalReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	txn, err := h.wallet.ReviewWithdrawal(c.UserContext(), c.Params("id"), req.Approve)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": transactionResponse(txn)})
}
