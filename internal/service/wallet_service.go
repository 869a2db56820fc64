package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/payments"
	"github.com/spec-kit/wallet-service/internal/repository"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

// BalanceView joins a fund record with its token metadata.
type BalanceView struct {
	Balance domain.UserBalance
	Token   *domain.BaseToken
}

// InvoiceCreator opens deposit invoices with the payment provider.
// Satisfied by payments.Client.
type InvoiceCreator interface {
	CreateInvoice(ctx context.Context, req payments.InvoiceRequest) (*payments.Invoice, error)
}

// WalletService surfaces balances and the transaction ledger, and drives
// the deposit and withdrawal flows.
type WalletService struct {
	balances     repository.BalanceRepository
	transactions repository.TransactionRepository
	tokens       repository.TokenRepository
	invoices     InvoiceCreator
}

// NewWalletService constructs the service.
func NewWalletService(balances repository.BalanceRepository, transactions repository.TransactionRepository, tokens repository.TokenRepository, invoices InvoiceCreator) *WalletService {
	return &WalletService{balances: balances, transactions: transactions, tokens: tokens, invoices: invoices}
}

// ListBalances returns all fund records for a profile with token metadata
// attached where the token is still known.
func (s *WalletService) ListBalances(ctx context.Context, profileID string) ([]BalanceView, error) {
	balances, err := s.balances.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	views := make([]BalanceView, 0, len(balances))
	for _, balance := range balances {
		view := BalanceView{Balance: balance}
		token, err := s.tokens.GetBySymbol(ctx, balance.Symbol)
		if err == nil {
			view.Token = token
		} else if err != pgx.ErrNoRows {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// ListTransactions returns the profile's ledger entries.
func (s *WalletService) ListTransactions(ctx context.Context, profileID string, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	return s.transactions.ListByProfile(ctx, profileID, filter)
}

// GetTransaction fetches one ledger entry, scoped to its owner. A foreign
// transaction id reads as not found.
func (s *WalletService) GetTransaction(ctx context.Context, profileID, txnID string) (*domain.Transaction, error) {
	txn, err := s.transactions.GetByID(ctx, txnID)
	if err != nil {
		return nil, err
	}
	if txn.ProfileID != profileID {
		return nil, apperrors.NewNotFound("transaction", nil)
	}
	return txn, nil
}

// InitiateDeposit opens a provider invoice and records the pending deposit
// it will settle. The returned URL is where the user pays.
func (s *WalletService) InitiateDeposit(ctx context.Context, profileID, symbol string, amount decimal.Decimal) (*domain.Transaction, string, error) {
	if !amount.IsPositive() {
		return nil, "", apperrors.NewValidationError("amount must be positive", nil)
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	token, err := s.tokens.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, "", err
	}
	if !token.IsActive {
		return nil, "", apperrors.NewValidationError("token is not available for deposit", nil)
	}
	if amount.LessThan(token.MinDeposit) {
		return nil, "", apperrors.NewValidationError("amount below minimum deposit", map[string]any{
			"min_deposit": token.MinDeposit.String(),
		})
	}

	invoice, err := s.invoices.CreateInvoice(ctx, payments.InvoiceRequest{
		Currency:    symbol,
		Amount:      amount.String(),
		OrderNumber: uuid.NewString(),
		OrderName:   symbol + " deposit",
	})
	if err != nil {
		return nil, "", err
	}

	txn := &domain.Transaction{
		ProfileID:     profileID,
		Symbol:        symbol,
		Kind:          domain.TxKindDeposit,
		Amount:        amount,
		Status:        domain.TxStatusPending,
		ProviderTxnID: &invoice.TxnID,
	}
	if err := s.transactions.Create(ctx, txn); err != nil {
		return nil, "", err
	}
	return txn, invoice.InvoiceURL, nil
}

// RequestWithdrawal locks the amount and queues a pending withdrawal for
// review. Funds stay locked until an admin approves or rejects it.
func (s *WalletService) RequestWithdrawal(ctx context.Context, profileID, symbol, address string, amount decimal.Decimal) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount must be positive", nil)
	}
	if strings.TrimSpace(address) == "" {
		return nil, apperrors.NewValidationError("address required", nil)
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if _, err := s.tokens.GetBySymbol(ctx, symbol); err != nil {
		return nil, err
	}

	if err := s.balances.Lock(ctx, profileID, symbol, amount); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		ProfileID: profileID,
		Symbol:    symbol,
		Kind:      domain.TxKindWithdrawal,
		Amount:    amount,
		Status:    domain.TxStatusPending,
		Address:   &address,
	}
	if err := s.transactions.Create(ctx, txn); err != nil {
		_ = s.balances.Unlock(ctx, profileID, symbol, amount)
		return nil, err
	}
	return txn, nil
}

// ListWithdrawals pages through pending withdrawal requests for the admin
// review queue.
func (s *WalletService) ListWithdrawals(ctx context.Context, limit, offset int) ([]domain.Transaction, error) {
	return s.transactions.ListByKindAndStatus(ctx, domain.TxKindWithdrawal, domain.TxStatusPending, limit, offset)
}

// ReviewWithdrawal settles or rejects a pending withdrawal. Approval burns
// the locked funds; rejection releases them back to available.
func (s *WalletService) ReviewWithdrawal(ctx context.Context, txnID string, approve bool) (*domain.Transaction, error) {
	txn, err := s.transactions.GetByID(ctx, txnID)
	if err != nil {
		return nil, err
	}
	if txn.Kind != domain.TxKindWithdrawal {
		return nil, apperrors.NewValidationError("transaction is not a withdrawal", nil)
	}
	if txn.Status != domain.TxStatusPending {
		return nil, apperrors.NewConflict("withdrawal is not pending", nil)
	}

	if approve {
		if err := s.transactions.SetStatus(ctx, txn.ID, domain.TxStatusCompleted); err != nil {
			return nil, err
		}
		if err := s.balances.Spend(ctx, txn.ProfileID, txn.Symbol, txn.Amount); err != nil {
			// put the withdrawal back so the review can be retried
			_ = s.transactions.SetStatus(ctx, txn.ID, domain.TxStatusPending)
			return nil, err
		}
		txn.Status = domain.TxStatusCompleted
		return txn, nil
	}

	if err := s.balances.Unlock(ctx, txn.ProfileID, txn.Symbol, txn.Amount); err != nil {
		return nil, err
	}
	if err := s.transactions.SetStatus(ctx, txn.ID, domain.TxStatusFailed); err != nil {
		_ = s.balances.Lock(ctx, txn.ProfileID, txn.Symbol, txn.Amount)
		return nil, err
	}
	txn.Status = domain.TxStatusFailed
	return txn, nil
}
