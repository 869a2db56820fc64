package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wallet-service/internal/api/dto"
	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/service"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

// AdminTicketsHandler serves the staff support queue.
type AdminTicketsHandler struct {
	tickets *service.TicketService
}

// NewAdminTicketsHandler constructs handler.
func NewAdminTicketsHandler(tickets *service.TicketService) *AdminTicketsHandler {
	return &AdminTicketsHandler{tickets: tickets}
}

// List GET /admin/tickets.
func (h *AdminTicketsHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	tickets, err := h.tickets.ListAll(c.UserContext(), parseTicketStatuses(c), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /admin/tickets/:id.
func (h *AdminTicketsHandler) Get(c *fiber.Ctx) error {
	ticket, messages, err := h.tickets.GetForStaff(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, messages)})
}

// Reply POST /admin/tickets/:id/messages.
func (h *AdminTicketsHandler) Reply(c *fiber.Ctx) error {
	staff, err := requireProfile(c)
	if err != nil {
		return err
	}
	var req dto.TicketReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	message, err := h.tickets.Reply(c.UserContext(), domain.AuthorTypeStaff, staff.ID, c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketMessageResponse(message)})
}

// Close POST /admin/tickets/:id/close.
func (h *AdminTicketsHandler) Close(c *fiber.Ctx) error {
	ticket, err := h.tickets.CloseForStaff(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}
