package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wallet-service/internal/api/dto"
	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/service"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

// KYCHandler serves verification status and submissions.
type KYCHandler struct {
	kyc *service.KYCService
}

// NewKYCHandler constructs handler.
func NewKYCHandler(kyc *service.KYCService) *KYCHandler {
	return &KYCHandler{kyc: kyc}
}

// Status GET /kyc/status.
func (h *KYCHandler) Status(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	status, err := h.kyc.Status(c.UserContext(), profile.ID)
	if err != nil {
		return err
	}
	resp := dto.KYCStatusResponse{Tier: status.Tier}
	if status.LatestSubmission != nil {
		sub := kycSubmissionResponse(status.LatestSubmission)
		resp.LatestSubmission = &sub
	}
	if status.Limits != nil {
		resp.Limits = &dto.KYCLimitsResponse{
			DailyLimit:     status.Limits.DailyLimit.String(),
			SingleTxnLimit: status.Limits.SingleTxnLimit.String(),
			SpentToday:     status.Limits.SpentToday.String(),
			RemainingToday: status.Limits.RemainingToday.String(),
		}
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Submit POST /kyc/submissions.
func (h *KYCHandler) Submit(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}
	var req dto.KYCSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	submission, err := h.kyc.Submit(c.UserContext(), profile.ID, req.RequestedTier, req.DocumentType, req.DocumentRef)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": kycSubmissionResponse(submission)})
}

func kycSubmissionResponse(sub *domain.KYCSubmission) dto.KYCSubmissionResponse {
	return dto.KYCSubmissionResponse{
		ID:            sub.ID,
		ProfileID:     sub.ProfileID,
		RequestedTier: sub.RequestedTier,
		DocumentType:  sub.DocumentType,
		Status:        string(sub.Status),
		ReviewNote:    sub.ReviewNote,
		CreatedAt:     sub.CreatedAt,
		ReviewedAt:    sub.ReviewedAt,
	}
}
