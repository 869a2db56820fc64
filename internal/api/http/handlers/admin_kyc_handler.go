package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wallet-service/internal/api/dto"
	"github.com/spec-kit/wallet-service/internal/service"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

// AdminKYCHandler serves the verification review queue.
type AdminKYCHandler struct {
	kyc *service.KYCService
}

// NewAdminKYCHandler constructs handler.
func NewAdminKYCHandler(kyc *service.KYCService) *AdminKYCHandler {
	return &AdminKYCHandler{kyc: kyc}
}

// ListPending GET /admin/kyc/submissions.
func (h *AdminKYCHandler) ListPending(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	submissions, err := h.kyc.ListPending(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.KYCSubmissionResponse, 0, len(submissions))
	for i := range submissions {
		items = append(items, kycSubmissionResponse(&submissions[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Review POST /admin/kyc/submissions/:id/review.
func (h *AdminKYCHandler) Review(c *fiber.Ctx) error {
	reviewer, err := requireProfile(c)
	if err != nil {
		return err
	}
	var req dto.KYCReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	submission, err := h.kyc.Review(c.UserContext(), reviewer.ID, c.Params("id"), req.Approve, req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": kycSubmissionResponse(submission)})
}
