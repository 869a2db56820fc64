package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wallet-service/internal/api/dto"
	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/service"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

// AdminUsersHandler serves profile management for staff.
type AdminUsersHandler struct {
	admin *service.AdminService
}

// NewAdminUsersHandler constructs handler.
func NewAdminUsersHandler(admin *service.AdminService) *AdminUsersHandler {
	return &AdminUsersHandler{admin: admin}
}

// List GET /admin/users.
func (h *AdminUsersHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	profiles, err := h.admin.ListProfiles(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		items = append(items, profileResponse(&profiles[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Ban POST /admin/users/:id/ban.
func (h *AdminUsersHandler) Ban(c *fiber.Ctx) error {
	return h.setBanned(c, true)
}

// Unban POST /admin/users/:id/unban.
func (h *AdminUsersHandler) Unban(c *fiber.Ctx) error {
	return h.setBanned(c, false)
}

func (h *AdminUsersHandler) setBanned(c *fiber.Ctx, banned bool) error {
	actor, err := requireProfile(c)
	if err != nil {
		return err
	}
	if err := h.admin.SetBanned(c.UserContext(), actor.ID, c.Params("id"), banned); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"banned": banned}})
}

// SetRole POST /admin/users/:id/role. Restricted to super admins at the
// route level.
func (h *AdminUsersHandler) SetRole(c *fiber.Ctx) error {
	actor, err := requireProfile(c)
	if err != nil {
		return err
	}
	var req dto.SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := h.admin.SetRole(c.UserContext(), actor.ID, c.Params("id"), domain.Role(req.Role)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"role": req.Role}})
}
