package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind enumerates ledger entry categories.
type TransactionKind string

const (
	TxKindDeposit        TransactionKind = "deposit"
	TxKindWithdrawal     TransactionKind = "withdrawal"
	TxKindEarnDeposit    TransactionKind = "earn_deposit"
	TxKindEarnWithdrawal TransactionKind = "earn_withdrawal"
	TxKindCopyTrade      TransactionKind = "copy_trade"
)

// TransactionStatus enumerates lifecycle states for a transaction.
type TransactionStatus string

const (
	TxStatusPending   TransactionStatus = "pending"
	TxStatusCompleted TransactionStatus = "completed"
	TxStatusFailed    TransactionStatus = "failed"
)

// Transaction is a single ledger entry for a profile. ProviderTxnID links
// deposits to the payment provider; Address is the destination of an
// on-chain withdrawal.
type Transaction struct {
	ID            string
	ProfileID     string
	Symbol        string
	Kind          TransactionKind
	Amount        decimal.Decimal
	Status        TransactionStatus
	ProviderTxnID *string
	Address       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
