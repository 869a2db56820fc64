package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trader is a strategy account that users can allocate funds to copy.
type Trader struct {
	ID          string
	Handle      string
	DisplayName string
	Strategy    string
	Profit30d   decimal.Decimal
	WinRate     decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CopyPositionStatus enumerates copy position lifecycle states.
type CopyPositionStatus string

const (
	CopyPositionActive CopyPositionStatus = "active"
	CopyPositionClosed CopyPositionStatus = "closed"
)

// CopyPosition is a user's allocation following a trader.
type CopyPosition struct {
	ID         string
	ProfileID  string
	TraderID   string
	Symbol     string
	Allocation decimal.Decimal
	Status     CopyPositionStatus
	OpenedAt   time.Time
	ClosedAt   *time.Time
}
