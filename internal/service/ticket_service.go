package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/events"
	"github.com/spec-kit/wallet-service/internal/repository"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

// TicketService coordinates support ticket workflows for users and staff.
type TicketService struct {
	tickets    repository.TicketRepository
	messages   repository.TicketMessageRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, messages repository.TicketMessageRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, messages: messages, dispatcher: dispatcher, now: time.Now}
}

// Create opens a new ticket for a user.
func (s *TicketService) Create(ctx context.Context, profileID, subject, body string) (*domain.SupportTicket, error) {
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)
	if subject == "" || body == "" {
		return nil, apperrors.NewValidationError("subject and body required", nil)
	}

	ticket := &domain.SupportTicket{
		ReferenceID: generateReferenceID("TCK"),
		ProfileID:   profileID,
		Subject:     subject,
		Body:        body,
		Status:      domain.TicketStatusOpen,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventTicketCreated,
		ProfileID: profileID,
		Payload: events.TicketCreatedPayload{
			TicketID:    ticket.ID,
			ReferenceID: ticket.ReferenceID,
			Subject:     ticket.Subject,
		},
	})
	return ticket, nil
}

// ListForUser returns the profile's own tickets.
func (s *TicketService) ListForUser(ctx context.Context, profileID string, statuses []domain.TicketStatus, limit, offset int) ([]domain.SupportTicket, error) {
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		ProfileID: &profileID,
		Statuses:  statuses,
		Limit:     limit,
		Offset:    offset,
	})
}

// GetForUser fetches a ticket with its thread, enforcing ownership. Foreign
// tickets read as not found.
func (s *TicketService) GetForUser(ctx context.Context, profileID, ticketID string) (*domain.SupportTicket, []domain.TicketMessage, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	if ticket.ProfileID != profileID {
		return nil, nil, apperrors.NewNotFound("ticket", nil)
	}
	msgs, err := s.messages.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, nil, err
	}
	return ticket, msgs, nil
}

// Reply appends a message to a ticket. User replies reopen an answered
// ticket; staff replies mark it answered. Closed tickets reject replies.
func (s *TicketService) Reply(ctx context.Context, authorType domain.MessageAuthorType, authorID, ticketID, body string) (*domain.TicketMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("body required", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	switch authorType {
	case domain.AuthorTypeUser:
		if ticket.ProfileID != authorID {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
	case domain.AuthorTypeStaff:
	default:
		return nil, apperrors.NewValidationError("unknown author type", nil)
	}
	if ticket.Status == domain.TicketStatusClosed {
		return nil, apperrors.NewConflict("ticket is closed", nil)
	}

	msg := &domain.TicketMessage{
		TicketID:   ticket.ID,
		AuthorType: authorType,
		AuthorID:   &authorID,
		Body:       body,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	newStatus := domain.TicketStatusOpen
	if authorType == domain.AuthorTypeStaff {
		newStatus = domain.TicketStatusAnswered
	}
	if ticket.Status != newStatus {
		ticket.Status = newStatus
		if err := s.tickets.Update(ctx, ticket); err != nil {
			return nil, err
		}
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventTicketReplied,
		ProfileID: ticket.ProfileID,
		Payload: events.TicketRepliedPayload{
			TicketID:   ticket.ID,
			MessageID:  msg.ID,
			AuthorType: authorType,
		},
	})
	return msg, nil
}

// CloseForUser closes a user's own ticket.
func (s *TicketService) CloseForUser(ctx context.Context, profileID, ticketID string) (*domain.SupportTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.ProfileID != profileID {
		return nil, apperrors.NewNotFound("ticket", nil)
	}
	return s.close(ctx, ticket)
}

// ListAll returns tickets across all users (admin surface).
func (s *TicketService) ListAll(ctx context.Context, statuses []domain.TicketStatus, limit, offset int) ([]domain.SupportTicket, error) {
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Statuses: statuses,
		Limit:    limit,
		Offset:   offset,
	})
}

// GetForStaff fetches any ticket with its thread (admin surface).
func (s *TicketService) GetForStaff(ctx context.Context, ticketID string) (*domain.SupportTicket, []domain.TicketMessage, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	msgs, err := s.messages.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, nil, err
	}
	return ticket, msgs, nil
}

// CloseForStaff closes any ticket (admin surface).
func (s *TicketService) CloseForStaff(ctx context.Context, ticketID string) (*domain.SupportTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return s.close(ctx, ticket)
}

func (s *TicketService) close(ctx context.Context, ticket *domain.SupportTicket) (*domain.SupportTicket, error) {
	if ticket.Status == domain.TicketStatusClosed {
		return nil, apperrors.NewConflict("ticket already closed", nil)
	}
	now := s.now()
	ticket.Status = domain.TicketStatusClosed
	ticket.ClosedAt = &now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}
