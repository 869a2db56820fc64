package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/wallet-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDepositConfirmed   EventType = "deposit_confirmed"
	EventKYCReviewed        EventType = "kyc_reviewed"
	EventTicketCreated      EventType = "ticket_created"
	EventTicketReplied      EventType = "ticket_replied"
	EventCopyPositionOpened EventType = "copy_position_opened"
	EventEarnPositionOpened EventType = "earn_position_opened"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ProfileID string      `json:"profile_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// DepositConfirmedPayload payload.
type DepositConfirmedPayload struct {
	TransactionID string          `json:"transaction_id"`
	Symbol        string          `json:"symbol"`
	Amount        decimal.Decimal `json:"amount"`
	ProviderTxnID string          `json:"provider_txn_id"`
}

// KYCReviewedPayload payload.
type KYCReviewedPayload struct {
	SubmissionID string                     `json:"submission_id"`
	Status       domain.KYCSubmissionStatus `json:"status"`
	Tier         int                        `json:"tier"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID    string `json:"ticket_id"`
	ReferenceID string `json:"reference_id"`
	Subject     string `json:"subject"`
}

// TicketRepliedPayload payload.
type TicketRepliedPayload struct {
	TicketID   string                   `json:"ticket_id"`
	MessageID  string                   `json:"message_id"`
	AuthorType domain.MessageAuthorType `json:"author_type"`
}

// CopyPositionOpenedPayload payload.
type CopyPositionOpenedPayload struct {
	PositionID string          `json:"position_id"`
	TraderID   string          `json:"trader_id"`
	Allocation decimal.Decimal `json:"allocation"`
}

// EarnPositionOpenedPayload payload.
type EarnPositionOpenedPayload struct {
	PositionID string          `json:"position_id"`
	VaultID    string          `json:"vault_id"`
	Amount     decimal.Decimal `json:"amount"`
	MaturesAt  time.Time       `json:"matures_at"`
}
