package dto

import "time"

// TraderResponse is a public strategy account.
type TraderResponse struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	Strategy    string `json:"strategy"`
	Profit30d   string `json:"profit_30d"`
	WinRate     string `json:"win_rate"`
	Active      bool   `json:"active"`
}

// TraderUpsertRequest payload for admin trader management.
type TraderUpsertRequest struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	Strategy    string `json:"strategy"`
	Profit30d   string `json:"profit_30d"`
	WinRate     string `json:"win_rate"`
	Active      *bool  `json:"active"`
}

// OpenCopyPositionRequest payload.
type OpenCopyPositionRequest struct {
	TraderID   string `json:"trader_id"`
	Symbol     string `json:"symbol"`
	Allocation string `json:"allocation"`
}

// CopyPositionResponse is a user's allocation.
type CopyPositionResponse struct {
	ID         string     `json:"id"`
	TraderID   string     `json:"trader_id"`
	Symbol     string     `json:"symbol"`
	Allocation string     `json:"allocation"`
	Status     string     `json:"status"`
	OpenedAt   time.Time  `json:"opened_at"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
}
