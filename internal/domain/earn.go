package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EarnVault is a staking product paying yield on a locked token amount.
type EarnVault struct {
	ID        string
	Symbol    string
	Name      string
	APY       decimal.Decimal
	LockDays  int
	MinStake  decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EarnPositionStatus enumerates earn position lifecycle states.
type EarnPositionStatus string

const (
	EarnPositionActive   EarnPositionStatus = "active"
	EarnPositionReleased EarnPositionStatus = "released"
)

// EarnPosition is a user's stake in a vault.
type EarnPosition struct {
	ID         string
	ProfileID  string
	VaultID    string
	Symbol     string
	Amount     decimal.Decimal
	Status     EarnPositionStatus
	OpenedAt   time.Time
	MaturesAt  time.Time
	ReleasedAt *time.Time
}

// Matured reports whether the lock period has elapsed at the given time.
func (p EarnPosition) Matured(now time.Time) bool {
	return !now.Before(p.MaturesAt)
}
