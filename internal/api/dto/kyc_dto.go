package dto

import "time"

// KYCSubmitRequest payload.
type KYCSubmitRequest struct {
	RequestedTier int    `json:"requested_tier"`
	DocumentType  string `json:"document_type"`
	DocumentRef   string `json:"document_ref"`
}

// KYCReviewRequest payload for the admin review endpoint.
type KYCReviewRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// KYCSubmissionResponse is a verification request.
type KYCSubmissionResponse struct {
	ID            string     `json:"id"`
	ProfileID     string     `json:"profile_id"`
	RequestedTier int        `json:"requested_tier"`
	DocumentType  string     `json:"document_type"`
	Status        string     `json:"status"`
	ReviewNote    *string    `json:"review_note,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
}

// KYCLimitsResponse carries tier ceilings; null when the tier has no row.
type KYCLimitsResponse struct {
	DailyLimit     string `json:"daily_limit"`
	SingleTxnLimit string `json:"single_txn_limit"`
	SpentToday     string `json:"spent_today"`
	RemainingToday string `json:"remaining_today"`
}

// KYCStatusResponse is the advisory report served to clients.
type KYCStatusResponse struct {
	Tier             int                    `json:"tier"`
	LatestSubmission *KYCSubmissionResponse `json:"latest_submission"`
	Limits           *KYCLimitsResponse     `json:"limits"`
}
