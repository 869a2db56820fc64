package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/events"
	"github.com/spec-kit/wallet-service/internal/repository"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

// CopyTradeService manages traders and user copy positions.
type CopyTradeService struct {
	traders      repository.TraderRepository
	positions    repository.CopyPositionRepository
	balances     repository.BalanceRepository
	tokens       repository.TokenRepository
	transactions repository.TransactionRepository
	dispatcher   events.Dispatcher
}

// NewCopyTradeService constructs the service.
func NewCopyTradeService(traders repository.TraderRepository, positions repository.CopyPositionRepository, balances repository.BalanceRepository, tokens repository.TokenRepository, transactions repository.TransactionRepository, dispatcher events.Dispatcher) *CopyTradeService {
	return &CopyTradeService{
		traders:      traders,
		positions:    positions,
		balances:     balances,
		tokens:       tokens,
		transactions: transactions,
		dispatcher:   dispatcher,
	}
}

// ListTraders returns active traders for the public surface.
func (s *CopyTradeService) ListTraders(ctx context.Context, limit, offset int) ([]domain.Trader, error) {
	return s.traders.List(ctx, true, limit, offset)
}

// GetTrader fetches an active trader.
func (s *CopyTradeService) GetTrader(ctx context.Context, id string) (*domain.Trader, error) {
	trader, err := s.traders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !trader.Active {
		return nil, apperrors.NewNotFound("trader", nil)
	}
	return trader, nil
}

// OpenPosition allocates funds from the user's available balance into a
// locked copy position.
func (s *CopyTradeService) OpenPosition(ctx context.Context, profileID, traderID, symbol string, allocation decimal.Decimal) (*domain.CopyPosition, error) {
	if !allocation.IsPositive() {
		return nil, apperrors.NewValidationError("allocation must be positive", nil)
	}
	trader, err := s.traders.GetByID(ctx, traderID)
	if err != nil {
		return nil, err
	}
	if !trader.Active {
		return nil, apperrors.NewValidationError("trader is not active", nil)
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if _, err := s.tokens.GetBySymbol(ctx, symbol); err != nil {
		return nil, err
	}

	if err := s.balances.Lock(ctx, profileID, symbol, allocation); err != nil {
		return nil, err
	}

	entry := &domain.Transaction{
		ProfileID: profileID,
		Symbol:    symbol,
		Kind:      domain.TxKindCopyTrade,
		Amount:    allocation,
		Status:    domain.TxStatusCompleted,
	}
	if err := s.transactions.Create(ctx, entry); err != nil {
		_ = s.balances.Unlock(ctx, profileID, symbol, allocation)
		return nil, err
	}

	position := &domain.CopyPosition{
		ProfileID:  profileID,
		TraderID:   traderID,
		Symbol:     symbol,
		Allocation: allocation,
		Status:     domain.CopyPositionActive,
	}
	if err := s.positions.Create(ctx, position); err != nil {
		// roll the funds back so a storage failure does not strand them
		_ = s.balances.Unlock(ctx, profileID, symbol, allocation)
		_ = s.transactions.SetStatus(ctx, entry.ID, domain.TxStatusFailed)
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventCopyPositionOpened,
		ProfileID: profileID,
		Payload: events.CopyPositionOpenedPayload{
			PositionID: position.ID,
			TraderID:   traderID,
			Allocation: allocation,
		},
	})
	return position, nil
}

// ClosePosition releases an active position's allocation back to the
// owner's available balance.
func (s *CopyTradeService) ClosePosition(ctx context.Context, profileID, positionID string) (*domain.CopyPosition, error) {
	position, err := s.positions.GetByID(ctx, positionID)
	if err != nil {
		return nil, err
	}
	if position.ProfileID != profileID {
		return nil, apperrors.NewNotFound("copy position", nil)
	}
	if position.Status != domain.CopyPositionActive {
		return nil, apperrors.NewConflict("position already closed", nil)
	}

	// release the funds first: a failure here leaves the position active
	// and the close retryable
	if err := s.balances.Unlock(ctx, profileID, position.Symbol, position.Allocation); err != nil {
		return nil, err
	}
	if err := s.positions.Close(ctx, positionID); err != nil {
		// re-lock so the still-active record and the balance stay in step
		_ = s.balances.Lock(ctx, profileID, position.Symbol, position.Allocation)
		return nil, err
	}

	position.Status = domain.CopyPositionClosed
	return position, nil
}

// ListPositions returns the profile's copy positions.
func (s *CopyTradeService) ListPositions(ctx context.Context, profileID string, limit, offset int) ([]domain.CopyPosition, error) {
	return s.positions.ListByProfile(ctx, profileID, limit, offset)
}

// GetTraderForStaff fetches a trader regardless of the active flag.
func (s *CopyTradeService) GetTraderForStaff(ctx context.Context, id string) (*domain.Trader, error) {
	return s.traders.GetByID(ctx, id)
}

// ListTradersForStaff returns all traders, inactive included.
func (s *CopyTradeService) ListTradersForStaff(ctx context.Context, limit, offset int) ([]domain.Trader, error) {
	return s.traders.List(ctx, false, limit, offset)
}

// CreateTrader registers a new strategy account (admin surface).
func (s *CopyTradeService) CreateTrader(ctx context.Context, trader *domain.Trader) error {
	if strings.TrimSpace(trader.Handle) == "" || strings.TrimSpace(trader.DisplayName) == "" {
		return apperrors.NewValidationError("handle and display_name required", nil)
	}
	return s.traders.Create(ctx, trader)
}

// UpdateTrader modifies an existing trader (admin surface).
func (s *CopyTradeService) UpdateTrader(ctx context.Context, trader *domain.Trader) error {
	return s.traders.Update(ctx, trader)
}

// DeleteTrader removes a trader, refusing while any active copy position
// still references it.
func (s *CopyTradeService) DeleteTrader(ctx context.Context, traderID string) error {
	if _, err := s.traders.GetByID(ctx, traderID); err != nil {
		return err
	}
	active, err := s.positions.CountActiveByTrader(ctx, traderID)
	if err != nil {
		return err
	}
	if active > 0 {
		return apperrors.NewConflict("trader has active copy positions", map[string]any{
			"active_positions": active,
		})
	}
	return s.traders.Delete(ctx, traderID)
}
