package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/wallet-service/internal/domain"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

// BalanceRepository manages per-token fund records. Balance arithmetic runs
// inside single SQL statements so concurrent requests cannot observe
// intermediate states.
type BalanceRepository interface {
	ListByProfile(ctx context.Context, profileID string) ([]domain.UserBalance, error)
	Get(ctx context.Context, profileID, symbol string) (*domain.UserBalance, error)
	Credit(ctx context.Context, profileID, symbol string, amount decimal.Decimal) error
	Lock(ctx context.Context, profileID, symbol string, amount decimal.Decimal) error
	Unlock(ctx context.Context, profileID, symbol string, amount decimal.Decimal) error
	Spend(ctx context.Context, profileID, symbol string, amount decimal.Decimal) error
}

type balanceRepository struct {
	pool *pgxpool.Pool
}

// NewBalanceRepository builds repository.
func NewBalanceRepository(pool *pgxpool.Pool) BalanceRepository {
	return &balanceRepository{pool: pool}
}

func (r *balanceRepository) ListByProfile(ctx context.Context, profileID string) ([]domain.UserBalance, error) {
	const query = `
        SELECT id, profile_id, symbol, available, locked, updated_at
        FROM user_balances WHERE profile_id=$1 ORDER BY symbol ASC`
	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.UserBalance
	for rows.Next() {
		var balance domain.UserBalance
		if err := rows.Scan(
			&balance.ID,
			&balance.ProfileID,
			&balance.Symbol,
			&balance.Available,
			&balance.Locked,
			&balance.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, balance)
	}
	return result, rows.Err()
}

func (r *balanceRepository) Get(ctx context.Context, profileID, symbol string) (*domain.UserBalance, error) {
	const query = `
        SELECT id, profile_id, symbol, available, locked, updated_at
        FROM user_balances WHERE profile_id=$1 AND symbol=$2`
	var balance domain.UserBalance
	if err := r.pool.QueryRow(ctx, query, profileID, symbol).Scan(
		&balance.ID,
		&balance.ProfileID,
		&balance.Symbol,
		&balance.Available,
		&balance.Locked,
		&balance.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &balance, nil
}

func (r *balanceRepository) Credit(ctx context.Context, profileID, symbol string, amount decimal.Decimal) error {
	const query = `
        INSERT INTO user_balances (profile_id, symbol, available, locked)
        VALUES ($1,$2,$3,0)
        ON CONFLICT (profile_id, symbol)
        DO UPDATE SET available = user_balances.available + EXCLUDED.available, updated_at = NOW()`
	_, err := r.pool.Exec(ctx, query, profileID, symbol, amount)
	return err
}

// Lock moves funds from available to locked, failing when available funds
// do not cover the amount.
func (r *balanceRepository) Lock(ctx context.Context, profileID, symbol string, amount decimal.Decimal) error {
	const query = `
        UPDATE user_balances
        SET available = available - $3, locked = locked + $3, updated_at = NOW()
        WHERE profile_id=$1 AND symbol=$2 AND available >= $3`
	cmd, err := r.pool.Exec(ctx, query, profileID, symbol, amount)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewValidationError("insufficient available balance", map[string]any{"symbol": symbol})
	}
	return nil
}

// Unlock releases locked funds back to available.
func (r *balanceRepository) Unlock(ctx context.Context, profileID, symbol string, amount decimal.Decimal) error {
	const query = `
        UPDATE user_balances
        SET available = available + $3, locked = locked - $3, updated_at = NOW()
        WHERE profile_id=$1 AND symbol=$2 AND locked >= $3`
	cmd, err := r.pool.Exec(ctx, query, profileID, symbol, amount)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewConflict("locked balance below release amount", map[string]any{"symbol": symbol})
	}
	return nil
}

// Spend burns locked funds, used when a withdrawal settles on-chain.
func (r *balanceRepository) Spend(ctx context.Context, profileID, symbol string, amount decimal.Decimal) error {
	const query = `
        UPDATE user_balances
        SET locked = locked - $3, updated_at = NOW()
        WHERE profile_id=$1 AND symbol=$2 AND locked >= $3`
	cmd, err := r.pool.Exec(ctx, query, profileID, symbol, amount)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewConflict("locked balance below spend amount", map[string]any{"symbol": symbol})
	}
	return nil
}
