package dto

import "time"

// BalanceResponse is one fund record with token metadata.
type BalanceResponse struct {
	Symbol    string         `json:"symbol"`
	Available string         `json:"available"`
	Locked    string         `json:"locked"`
	Total     string         `json:"total"`
	Token     *TokenResponse `json:"token,omitempty"`
}

// TokenResponse is asset metadata served to clients.
type TokenResponse struct {
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	Chain      string `json:"chain"`
	Decimals   int    `json:"decimals"`
	IconURL    string `json:"icon_url"`
	MinDeposit string `json:"min_deposit"`
}

// TransactionResponse is one ledger entry.
type TransactionResponse struct {
	ID            string    `json:"id"`
	Symbol        string    `json:"symbol"`
	Kind          string    `json:"kind"`
	Amount        string    `json:"amount"`
	Status        string    `json:"status"`
	ProviderTxnID *string   `json:"provider_txn_id,omitempty"`
	Address       *string   `json:"address,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// DepositRequest opens a provider invoice for an on-chain deposit.
type DepositRequest struct {
	Symbol string `json:"symbol"`
	Amount string `json:"amount"`
}

// DepositResponse carries the recorded transaction and where to pay.
type DepositResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	InvoiceURL  string              `json:"invoice_url"`
}

// WithdrawalRequest queues an on-chain withdrawal for review.
type WithdrawalRequest struct {
	Symbol  string `json:"symbol"`
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

// WithdrawalReviewRequest settles or rejects a pending withdrawal.
type WithdrawalReviewRequest struct {
	Approve bool `json:"approve"`
}
