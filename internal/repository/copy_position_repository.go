package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/wallet-service/internal/domain"
)

// CopyPositionRepository manages user allocations to traders.
type CopyPositionRepository interface {
	Create(ctx context.Context, position *domain.CopyPosition) error
	GetByID(ctx context.Context, id string) (*domain.CopyPosition, error)
	ListByProfile(ctx context.Context, profileID string, limit, offset int) ([]domain.CopyPosition, error)
	Close(ctx context.Context, id string) error
	CountActiveByTrader(ctx context.Context, traderID string) (int, error)
}

type copyPositionRepository struct {
	pool *pgxpool.Pool
}

// NewCopyPositionRepository builds repository.
func NewCopyPositionRepository(pool *pgxpool.Pool) CopyPositionRepository {
	return &copyPositionRepository{pool: pool}
}

const copyPositionColumns = `id, profile_id, trader_id, symbol, allocation, status, opened_at, closed_at`

func (r *copyPositionRepository) Create(ctx context.Context, position *domain.CopyPosition) error {
	const query = `
        INSERT INTO copy_positions (profile_id, trader_id, symbol, allocation, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, opened_at`
	return r.pool.QueryRow(ctx, query,
		position.ProfileID,
		position.TraderID,
		position.Symbol,
		position.Allocation,
		position.Status,
	).Scan(&position.ID, &position.OpenedAt)
}

func (r *copyPositionRepository) GetByID(ctx context.Context, id string) (*domain.CopyPosition, error) {
	const query = `SELECT ` + copyPositionColumns + ` FROM copy_positions WHERE id=$1`
	var position domain.CopyPosition
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&position.ID,
		&position.ProfileID,
		&position.TraderID,
		&position.Symbol,
		&position.Allocation,
		&position.Status,
		&position.OpenedAt,
		&position.ClosedAt,
	); err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *copyPositionRepository) ListByProfile(ctx context.Context, profileID string, limit, offset int) ([]domain.CopyPosition, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT ` + copyPositionColumns + `
        FROM copy_positions WHERE profile_id=$1 ORDER BY opened_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, profileID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CopyPosition
	for rows.Next() {
		var position domain.CopyPosition
		if err := rows.Scan(
			&position.ID,
			&position.ProfileID,
			&position.TraderID,
			&position.Symbol,
			&position.Allocation,
			&position.Status,
			&position.OpenedAt,
			&position.ClosedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, position)
	}
	return result, rows.Err()
}

func (r *copyPositionRepository) Close(ctx context.Context, id string) error {
	const query = `
        UPDATE copy_positions SET status=$1, closed_at=NOW()
        WHERE id=$2 AND status=$3`
	cmd, err := r.pool.Exec(ctx, query, domain.CopyPositionClosed, id, domain.CopyPositionActive)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *copyPositionRepository) CountActiveByTrader(ctx context.Context, traderID string) (int, error) {
	const query = `SELECT COUNT(*) FROM copy_positions WHERE trader_id=$1 AND status=$2`
	var count int
	if err := r.pool.QueryRow(ctx, query, traderID, domain.CopyPositionActive).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
