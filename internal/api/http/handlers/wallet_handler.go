package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wallet-service/internal/api/dto"
	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/repository"
	"github.com/spec-kit/wallet-service/internal/service"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

// WalletHandler serves balances and the transaction ledger.
type WalletHandler struct {
	wallet *service.WalletService
}

// NewWalletHandler constructs handler.
func NewWalletHandler(wallet *service.WalletService) *WalletHandler {
	return &WalletHandler{wallet: wallet}
}

// ListBalances GET /wallet/balances.
func (h *WalletHandler) ListBalances(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	views, err := h.wallet.ListBalances(c.UserContext(), profile.ID)
	if err != nil {
		return err
	}
	items := make([]dto.BalanceResponse, 0, len(views))
	for _, view := range views {
		items = append(items, balanceResponse(view))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListTransactions GET /wallet/transactions.
func (h *WalletHandler) ListTransactions(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	filter := parseTransactionQuery(c)
	txns, err := h.wallet.ListTransactions(c.UserContext(), profile.ID, filter)
	if err != nil {
		return err
	}
	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, transactionResponse(&txns[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTransaction GET /wallet/transactions/:id.
func (h *WalletHandler) GetTransaction(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	txn, err := h.wallet.GetTransaction(c.UserContext(), profile.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": transactionResponse(txn)})
}

// CreateDeposit POST /wallet/deposits.
func (h *WalletHandler) CreateDeposit(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	var req dto.DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return err
	}
	txn, invoiceURL, err := h.wallet.InitiateDeposit(c.UserContext(), profile.ID, req.Symbol, amount)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.DepositResponse{
		Transaction: transactionResponse(txn),
		InvoiceURL:  invoiceURL,
	}})
}

// RequestWithdrawal POST /wallet/withdrawals.
func (h *WalletHandler) RequestWithdrawal(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	var req dto.WithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return err
	}
	txn, err := h.wallet.RequestWithdrawal(c.UserContext(), profile.ID, req.Symbol, req.Address, amount)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": transactionResponse(txn)})
}

func parseTransactionQuery(c *fiber.Ctx) repository.TransactionFilter {
	filter := repository.TransactionFilter{}
	if kindStr := c.Query("kind"); kindStr != "" {
		for _, part := range strings.Split(kindStr, ",") {
			filter.Kinds = append(filter.Kinds, domain.TransactionKind(strings.TrimSpace(part)))
		}
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.TransactionStatus(strings.TrimSpace(part)))
		}
	}
	filter.Limit, filter.Offset = parsePagination(c)
	return filter
}

func balanceResponse(view service.BalanceView) dto.BalanceResponse {
	resp := dto.BalanceResponse{
		Symbol:    view.Balance.Symbol,
		Available: view.Balance.Available.String(),
		Locked:    view.Balance.Locked.String(),
		Total:     view.Balance.Total().String(),
	}
	if view.Token != nil {
		token := tokenResponse(*view.Token)
		resp.Token = &token
	}
	return resp
}

func tokenResponse(token domain.BaseToken) dto.TokenResponse {
	return dto.TokenResponse{
		Symbol:     token.Symbol,
		Name:       token.Name,
		Chain:      token.Chain,
		Decimals:   token.Decimals,
		IconURL:    token.IconURL,
		MinDeposit: token.MinDeposit.String(),
	}
}

func transactionResponse(txn *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:            txn.ID,
		Symbol:        txn.Symbol,
		Kind:          string(txn.Kind),
		Amount:        txn.Amount.String(),
		Status:        string(txn.Status),
		ProviderTxnID: txn.ProviderTxnID,
		Address:       txn.Address,
		CreatedAt:     txn.CreatedAt,
	}
}
