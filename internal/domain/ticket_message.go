package domain

import "time"

// MessageAuthorType indicates who authored a ticket message.
type MessageAuthorType string

const (
	AuthorTypeUser   MessageAuthorType = "user"
	AuthorTypeStaff  MessageAuthorType = "staff"
	AuthorTypeSystem MessageAuthorType = "system"
)

// TicketMessage captures one entry in a support ticket thread.
type TicketMessage struct {
	ID         string
	TicketID   string
	AuthorType MessageAuthorType
	AuthorID   *string
	Body       string
	CreatedAt  time.Time
}
