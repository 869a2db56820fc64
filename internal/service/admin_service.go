package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/repository"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

// AdminService covers account management surfaces.
type AdminService struct {
	profiles repository.ProfileRepository
}

// NewAdminService constructs the service.
func NewAdminService(profiles repository.ProfileRepository) *AdminService {
	return &AdminService{profiles: profiles}
}

// ListProfiles returns paginated accounts.
func (s *AdminService) ListProfiles(ctx context.Context, limit, offset int) ([]domain.Profile, error) {
	return s.profiles.List(ctx, limit, offset)
}

// SetBanned bans or unbans a target account. Callers cannot target
// themselves.
func (s *AdminService) SetBanned(ctx context.Context, actorID, targetID string, banned bool) error {
	if actorID == targetID {
		return apperrors.NewForbidden("cannot change ban state on own account")
	}
	if err := s.requireProfile(ctx, targetID); err != nil {
		return err
	}
	return s.profiles.SetBanned(ctx, targetID, banned)
}

// SetRole changes a target account's role. Only super admins may call this;
// the route gate enforces that, this check covers self-targeting and role
// validity.
func (s *AdminService) SetRole(ctx context.Context, actorID, targetID string, role domain.Role) error {
	if actorID == targetID {
		return apperrors.NewForbidden("cannot change own role")
	}
	if !domain.ValidRole(role) {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}
	if err := s.requireProfile(ctx, targetID); err != nil {
		return err
	}
	return s.profiles.SetRole(ctx, targetID, role)
}

func (s *AdminService) requireProfile(ctx context.Context, id string) error {
	if _, err := s.profiles.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	return nil
}
