package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/wallet-service/internal/domain"
)

// EarnPositionRepository manages user stakes in vaults.
type EarnPositionRepository interface {
	Create(ctx context.Context, position *domain.EarnPosition) error
	GetByID(ctx context.Context, id string) (*domain.EarnPosition, error)
	ListByProfile(ctx context.Context, profileID string, limit, offset int) ([]domain.EarnPosition, error)
	Release(ctx context.Context, id string) error
	CountActiveByVault(ctx context.Context, vaultID string) (int, error)
}

type earnPositionRepository struct {
	pool *pgxpool.Pool
}

// NewEarnPositionRepository builds repository.
func NewEarnPositionRepository(pool *pgxpool.Pool) EarnPositionRepository {
	return &earnPositionRepository{pool: pool}
}

const earnPositionColumns = `id, profile_id, vault_id, symbol, amount, status, opened_at, matures_at, released_at`

func (r *earnPositionRepository) Create(ctx context.Context, position *domain.EarnPosition) error {
	const query = `
        INSERT INTO earn_positions (profile_id, vault_id, symbol, amount, status, matures_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, opened_at`
	return r.pool.QueryRow(ctx, query,
		position.ProfileID,
		position.VaultID,
		position.Symbol,
		position.Amount,
		position.Status,
		position.MaturesAt,
	).Scan(&position.ID, &position.OpenedAt)
}

func (r *earnPositionRepository) GetByID(ctx context.Context, id string) (*domain.EarnPosition, error) {
	const query = `SELECT ` + earnPositionColumns + ` FROM earn_positions WHERE id=$1`
	var position domain.EarnPosition
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&position.ID,
		&position.ProfileID,
		&position.VaultID,
		&position.Symbol,
		&position.Amount,
		&position.Status,
		&position.OpenedAt,
		&position.MaturesAt,
		&position.ReleasedAt,
	); err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *earnPositionRepository) ListByProfile(ctx context.Context, profileID string, limit, offset int) ([]domain.EarnPosition, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT ` + earnPositionColumns + `
        FROM earn_positions WHERE profile_id=$1 ORDER BY opened_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, profileID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EarnPosition
	for rows.Next() {
		var position domain.EarnPosition
		if err := rows.Scan(
			&position.ID,
			&position.ProfileID,
			&position.VaultID,
			&position.Symbol,
			&position.Amount,
			&position.Status,
			&position.OpenedAt,
			&position.MaturesAt,
			&position.ReleasedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, position)
	}
	return result, rows.Err()
}

func (r *earnPositionRepository) Release(ctx context.Context, id string) error {
	const query = `
        UPDATE earn_positions SET status=$1, released_at=NOW()
        WHERE id=$2 AND status=$3`
	cmd, err := r.pool.Exec(ctx, query, domain.EarnPositionReleased, id, domain.EarnPositionActive)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *earnPositionRepository) CountActiveByVault(ctx context.Context, vaultID string) (int, error) {
	const query = `SELECT COUNT(*) FROM earn_positions WHERE vault_id=$1 AND status=$2`
	var count int
	if err := r.pool.QueryRow(ctx, query, vaultID, domain.EarnPositionActive).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
