package dto

import "time"

// VaultResponse is a public earn product.
type VaultResponse struct {
	ID       string `json:"id"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	APY      string `json:"apy"`
	LockDays int    `json:"lock_days"`
	MinStake string `json:"min_stake"`
	Active   bool   `json:"active"`
}

// VaultUpsertRequest payload for admin vault management.
type VaultUpsertRequest struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	APY      string `json:"apy"`
	LockDays int    `json:"lock_days"`
	MinStake string `json:"min_stake"`
	Active   *bool  `json:"active"`
}

// StakeRequest payload.
type StakeRequest struct {
	VaultID string `json:"vault_id"`
	Amount  string `json:"amount"`
}

// EarnPositionResponse is a user's stake.
type EarnPositionResponse struct {
	ID         string     `json:"id"`
	VaultID    string     `json:"vault_id"`
	Symbol     string     `json:"symbol"`
	Amount     string     `json:"amount"`
	Status     string     `json:"status"`
	OpenedAt   time.Time  `json:"opened_at"`
	MaturesAt  time.Time  `json:"matures_at"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`
}
