package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wallet-service/internal/api/dto"
	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/service"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

// TicketsHandler serves the user-facing support surface.
type TicketsHandler struct {
	tickets *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets}
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	ticket, err := h.tickets.Create(c.UserContext(), profile.ID, req.Subject, req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	limit, offset := parsePagination(c)
	tickets, err := h.tickets.ListForUser(c.UserContext(), profile.ID, parseTicketStatuses(c), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	ticket, messages, err := h.tickets.GetForUser(c.UserContext(), profile.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, messages)})
}

// Reply POST /tickets/:id/messages.
func (h *TicketsHandler) Reply(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	var req dto.TicketReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if _, _, err := h.tickets.GetForUser(c.UserContext(), profile.ID, c.Params("id")); err != nil {
		return err
	}
	message, err := h.tickets.Reply(c.UserContext(), domain.AuthorTypeUser, profile.ID, c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketMessageResponse(message)})
}

// Close POST /tickets/:id/close.
func (h *TicketsHandler) Close(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	ticket, err := h.tickets.CloseForUser(c.UserContext(), profile.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

func parseTicketStatuses(c *fiber.Ctx) []domain.TicketStatus {
	raw := c.Query("status")
	if raw == "" {
		return nil
	}
	var statuses []domain.TicketStatus
	for _, part := range strings.Split(raw, ",") {
		statuses = append(statuses, domain.TicketStatus(strings.TrimSpace(part)))
	}
	return statuses
}

func ticketSummary(ticket *domain.SupportTicket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:          ticket.ID,
		ReferenceID: ticket.ReferenceID,
		Subject:     ticket.Subject,
		Status:      string(ticket.Status),
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
		ClosedAt:    ticket.ClosedAt,
	}
}

func ticketDetail(ticket *domain.SupportTicket, messages []domain.TicketMessage) dto.TicketDetailResponse {
	detail := dto.TicketDetailResponse{
		TicketSummary: ticketSummary(ticket),
		Body:          ticket.Body,
		Messages:      make([]dto.TicketMessageResponse, 0, len(messages)),
	}
	for i := range messages {
		detail.Messages = append(detail.Messages, ticketMessageResponse(&messages[i]))
	}
	return detail
}

func ticketMessageResponse(message *domain.TicketMessage) dto.TicketMessageResponse {
	return dto.TicketMessageResponse{
		ID:         message.ID,
		AuthorType: string(message.AuthorType),
		AuthorID:   message.AuthorID,
		Body:       message.Body,
		CreatedAt:  message.CreatedAt,
	}
}
