package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/events"
	"github.com/spec-kit/wallet-service/internal/repository"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

// KYCStatus is the advisory limit report surfaced to the client. Limits is
// nil when no limit row exists for the profile's tier.
type KYCStatus struct {
	Tier             int
	LatestSubmission *domain.KYCSubmission
	Limits           *KYCLimitReport
}

// KYCLimitReport carries the tier ceilings and today's consumption.
type KYCLimitReport struct {
	DailyLimit     decimal.Decimal
	SingleTxnLimit decimal.Decimal
	SpentToday     decimal.Decimal
	RemainingToday decimal.Decimal
}

// KYCService handles verification submissions and the tier limit check.
type KYCService struct {
	profiles     repository.ProfileRepository
	submissions  repository.KYCRepository
	transactions repository.TransactionRepository
	dispatcher   events.Dispatcher
	now          func() time.Time
}

// NewKYCService constructs the service.
func NewKYCService(profiles repository.ProfileRepository, submissions repository.KYCRepository, transactions repository.TransactionRepository, dispatcher events.Dispatcher) *KYCService {
	return &KYCService{
		profiles:     profiles,
		submissions:  submissions,
		transactions: transactions,
		dispatcher:   dispatcher,
		now:          time.Now,
	}
}

// Status computes the advisory limit report for a profile. No enforcement
// happens here; remaining is clamped at zero.
func (s *KYCService) Status(ctx context.Context, profileID string) (*KYCStatus, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	status := &KYCStatus{Tier: profile.KYCTier}

	latest, err := s.submissions.LatestByProfile(ctx, profileID)
	if err == nil {
		status.LatestSubmission = latest
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	limit, err := s.submissions.GetLimit(ctx, profile.KYCTier)
	if err == pgx.ErrNoRows {
		return status, nil
	}
	if err != nil {
		return nil, err
	}

	startOfDay := s.startOfToday()
	spent, err := s.transactions.SumCompletedSince(ctx, profileID, startOfDay)
	if err != nil {
		return nil, err
	}

	status.Limits = &KYCLimitReport{
		DailyLimit:     limit.DailyLimit,
		SingleTxnLimit: limit.SingleTxnLimit,
		SpentToday:     spent,
		RemainingToday: limit.RemainingToday(spent),
	}
	return status, nil
}

// Submit records a verification request for a higher tier. Only one pending
// submission is allowed at a time.
func (s *KYCService) Submit(ctx context.Context, profileID string, requestedTier int, documentType, documentRef string) (*domain.KYCSubmission, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if requestedTier <= profile.KYCTier {
		return nil, apperrors.NewValidationError("requested tier must exceed current tier", map[string]any{
			"current_tier": profile.KYCTier,
		})
	}
	if strings.TrimSpace(documentType) == "" || strings.TrimSpace(documentRef) == "" {
		return nil, apperrors.NewValidationError("document_type and document_ref required", nil)
	}

	pending, err := s.submissions.HasPending(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperrors.NewConflict("a pending submission already exists", nil)
	}

	sub := &domain.KYCSubmission{
		ProfileID:     profileID,
		RequestedTier: requestedTier,
		DocumentType:  strings.TrimSpace(documentType),
		DocumentRef:   strings.TrimSpace(documentRef),
		Status:        domain.KYCStatusPending,
	}
	if err := s.submissions.CreateSubmission(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ListPending returns submissions awaiting review.
func (s *KYCService) ListPending(ctx context.Context, limit, offset int) ([]domain.KYCSubmission, error) {
	return s.submissions.ListByStatus(ctx, domain.KYCStatusPending, limit, offset)
}

// Review resolves a pending submission. Approval raises the profile tier to
// the requested tier.
func (s *KYCService) Review(ctx context.Context, reviewerID, submissionID string, approve bool, note string) (*domain.KYCSubmission, error) {
	sub, err := s.submissions.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != domain.KYCStatusPending {
		return nil, apperrors.NewConflict("submission already reviewed", nil)
	}

	status := domain.KYCStatusRejected
	if approve {
		status = domain.KYCStatusApproved
	}
	var notePtr *string
	if trimmed := strings.TrimSpace(note); trimmed != "" {
		notePtr = &trimmed
	}
	if err := s.submissions.Review(ctx, submissionID, reviewerID, status, notePtr); err != nil {
		return nil, err
	}

	tier := sub.RequestedTier
	if approve {
		if err := s.profiles.SetKYCTier(ctx, sub.ProfileID, tier); err != nil {
			return nil, err
		}
	}

	sub.Status = status
	sub.ReviewerID = &reviewerID
	sub.ReviewNote = notePtr
	reviewedAt := s.now()
	sub.ReviewedAt = &reviewedAt

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventKYCReviewed,
		ProfileID: sub.ProfileID,
		Payload: events.KYCReviewedPayload{
			SubmissionID: sub.ID,
			Status:       status,
			Tier:         tier,
		},
	})
	return sub, nil
}

func (s *KYCService) startOfToday() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
