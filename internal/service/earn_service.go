package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/events"
	"github.com/spec-kit/wallet-service/internal/repository"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

// EarnService manages vault products and user stakes.
type EarnService struct {
	vaults       repository.VaultRepository
	positions    repository.EarnPositionRepository
	balances     repository.BalanceRepository
	transactions repository.TransactionRepository
	dispatcher   events.Dispatcher
	now          func() time.Time
}

// NewEarnService constructs the service.
func NewEarnService(vaults repository.VaultRepository, positions repository.EarnPositionRepository, balances repository.BalanceRepository, transactions repository.TransactionRepository, dispatcher events.Dispatcher) *EarnService {
	return &EarnService{
		vaults:       vaults,
		positions:    positions,
		balances:     balances,
		transactions: transactions,
		dispatcher:   dispatcher,
		now:          time.Now,
	}
}

// ListVaults returns active vault products.
func (s *EarnService) ListVaults(ctx context.Context) ([]domain.EarnVault, error) {
	return s.vaults.ListActive(ctx)
}

// Stake opens a position in a vault, moving funds from available to locked.
func (s *EarnService) Stake(ctx context.Context, profileID, vaultID string, amount decimal.Decimal) (*domain.EarnPosition, error) {
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount must be positive", nil)
	}
	vault, err := s.vaults.GetByID(ctx, vaultID)
	if err != nil {
		return nil, err
	}
	if !vault.Active {
		return nil, apperrors.NewValidationError("vault is not active", nil)
	}
	if amount.LessThan(vault.MinStake) {
		return nil, apperrors.NewValidationError("amount below vault minimum stake", map[string]any{
			"min_stake": vault.MinStake.String(),
		})
	}

	if err := s.balances.Lock(ctx, profileID, vault.Symbol, amount); err != nil {
		return nil, err
	}

	entry := &domain.Transaction{
		ProfileID: profileID,
		Symbol:    vault.Symbol,
		Kind:      domain.TxKindEarnDeposit,
		Amount:    amount,
		Status:    domain.TxStatusCompleted,
	}
	if err := s.transactions.Create(ctx, entry); err != nil {
		_ = s.balances.Unlock(ctx, profileID, vault.Symbol, amount)
		return nil, err
	}

	position := &domain.EarnPosition{
		ProfileID: profileID,
		VaultID:   vaultID,
		Symbol:    vault.Symbol,
		Amount:    amount,
		Status:    domain.EarnPositionActive,
		MaturesAt: s.now().Add(time.Duration(vault.LockDays) * 24 * time.Hour),
	}
	if err := s.positions.Create(ctx, position); err != nil {
		_ = s.balances.Unlock(ctx, profileID, vault.Symbol, amount)
		_ = s.transactions.SetStatus(ctx, entry.ID, domain.TxStatusFailed)
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventEarnPositionOpened,
		ProfileID: profileID,
		Payload: events.EarnPositionOpenedPayload{
			PositionID: position.ID,
			VaultID:    vaultID,
			Amount:     amount,
			MaturesAt:  position.MaturesAt,
		},
	})
	return position, nil
}

// Withdraw releases a matured position back to the available balance.
func (s *EarnService) Withdraw(ctx context.Context, profileID, positionID string) (*domain.EarnPosition, error) {
	position, err := s.positions.GetByID(ctx, positionID)
	if err != nil {
		return nil, err
	}
	if position.ProfileID != profileID {
		return nil, apperrors.NewNotFound("earn position", nil)
	}
	if position.Status != domain.EarnPositionActive {
		return nil, apperrors.NewConflict("position already released", nil)
	}
	if !position.Matured(s.now()) {
		return nil, apperrors.NewConflict("position has not matured", map[string]any{
			"matures_at": position.MaturesAt,
		})
	}

	// release the funds first: a failure here leaves the position active
	// and the withdrawal retryable
	if err := s.balances.Unlock(ctx, profileID, position.Symbol, position.Amount); err != nil {
		return nil, err
	}

	entry := &domain.Transaction{
		ProfileID: profileID,
		Symbol:    position.Symbol,
		Kind:      domain.TxKindEarnWithdrawal,
		Amount:    position.Amount,
		Status:    domain.TxStatusCompleted,
	}
	if err := s.transactions.Create(ctx, entry); err != nil {
		_ = s.balances.Lock(ctx, profileID, position.Symbol, position.Amount)
		return nil, err
	}

	if err := s.positions.Release(ctx, positionID); err != nil {
		// re-lock so the still-active record and the balance stay in step
		_ = s.balances.Lock(ctx, profileID, position.Symbol, position.Amount)
		_ = s.transactions.SetStatus(ctx, entry.ID, domain.TxStatusFailed)
		return nil, err
	}

	position.Status = domain.EarnPositionReleased
	return position, nil
}

// ListPositions returns the profile's stakes.
func (s *EarnService) ListPositions(ctx context.Context, profileID string, limit, offset int) ([]domain.EarnPosition, error) {
	return s.positions.ListByProfile(ctx, profileID, limit, offset)
}

// GetVaultForStaff fetches a vault regardless of the active flag.
func (s *EarnService) GetVaultForStaff(ctx context.Context, id string) (*domain.EarnVault, error) {
	return s.vaults.GetByID(ctx, id)
}

// ListVaultsForStaff returns all vault products, inactive included.
func (s *EarnService) ListVaultsForStaff(ctx context.Context) ([]domain.EarnVault, error) {
	return s.vaults.ListAll(ctx)
}

// CreateVault registers a vault product (admin surface).
func (s *EarnService) CreateVault(ctx context.Context, vault *domain.EarnVault) error {
	if vault.LockDays < 0 {
		return apperrors.NewValidationError("lock_days cannot be negative", nil)
	}
	return s.vaults.Create(ctx, vault)
}

// UpdateVault modifies a vault product (admin surface).
func (s *EarnService) UpdateVault(ctx context.Context, vault *domain.EarnVault) error {
	return s.vaults.Update(ctx, vault)
}

// DeleteVault removes a vault, refusing while stakes remain active.
func (s *EarnService) DeleteVault(ctx context.Context, vaultID string) error {
	if _, err := s.vaults.GetByID(ctx, vaultID); err != nil {
		return err
	}
	active, err := s.positions.CountActiveByVault(ctx, vaultID)
	if err != nil {
		return err
	}
	if active > 0 {
		return apperrors.NewConflict("vault has active positions", map[string]any{
			"active_positions": active,
		})
	}
	return s.vaults.Delete(ctx, vaultID)
}
