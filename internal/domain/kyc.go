package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// KYCSubmissionStatus enumerates review states for a verification request.
type KYCSubmissionStatus string

const (
	KYCStatusPending  KYCSubmissionStatus = "pending"
	KYCStatusApproved KYCSubmissionStatus = "approved"
	KYCStatusRejected KYCSubmissionStatus = "rejected"
)

// KYCSubmission is a user's request to move to a higher verification tier.
type KYCSubmission struct {
	ID            string
	ProfileID     string
	RequestedTier int
	DocumentType  string
	DocumentRef   string
	Status        KYCSubmissionStatus
	ReviewerID    *string
	ReviewNote    *string
	CreatedAt     time.Time
	ReviewedAt    *time.Time
}

// KYCTransactionLimit holds the per-tier transaction ceilings.
type KYCTransactionLimit struct {
	Tier           int
	DailyLimit     decimal.Decimal
	SingleTxnLimit decimal.Decimal
}

// RemainingToday clamps daily_limit minus spent at zero.
func (l KYCTransactionLimit) RemainingToday(spent decimal.Decimal) decimal.Decimal {
	remaining := l.DailyLimit.Sub(spent)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
