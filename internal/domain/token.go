package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseToken describes an asset supported by the wallet.
type BaseToken struct {
	Symbol     string
	Name       string
	Chain      string
	Decimals   int
	IconURL    string
	IsActive   bool
	MinDeposit decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UserBalance holds per-token funds for a profile. Locked covers amounts
// committed to copy positions or earn stakes.
type UserBalance struct {
	ID        string
	ProfileID string
	Symbol    string
	Available decimal.Decimal
	Locked    decimal.Decimal
	UpdatedAt time.Time
}

// Total returns available plus locked funds.
func (b UserBalance) Total() decimal.Decimal {
	return b.Available.Add(b.Locked)
}
