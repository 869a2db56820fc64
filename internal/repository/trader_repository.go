package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/wallet-service/internal/domain"
)

// TraderRepository manages copy-trading strategy accounts.
type TraderRepository interface {
	Create(ctx context.Context, trader *domain.Trader) error
	Update(ctx context.Context, trader *domain.Trader) error
	GetByID(ctx context.Context, id string) (*domain.Trader, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Trader, error)
	Delete(ctx context.Context, id string) error
}

type traderRepository struct {
	pool *pgxpool.Pool
}

// NewTraderRepository builds repository.
func NewTraderRepository(pool *pgxpool.Pool) TraderRepository {
	return &traderRepository{pool: pool}
}

const traderColumns = `id, handle, display_name, strategy, profit_30d, win_rate, active, created_at, updated_at`

func (r *traderRepository) Create(ctx context.Context, trader *domain.Trader) error {
	const query = `
        INSERT INTO traders (handle, display_name, strategy, profit_30d, win_rate, active)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		trader.Handle,
		trader.DisplayName,
		trader.Strategy,
		trader.Profit30d,
		trader.WinRate,
		trader.Active,
	).Scan(&trader.ID, &trader.CreatedAt, &trader.UpdatedAt)
}

func (r *traderRepository) Update(ctx context.Context, trader *domain.Trader) error {
	const query = `
        UPDATE traders SET handle=$1, display_name=$2, strategy=$3, profit_30d=$4, win_rate=$5, active=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		trader.Handle,
		trader.DisplayName,
		trader.Strategy,
		trader.Profit30d,
		trader.WinRate,
		trader.Active,
		trader.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *traderRepository) GetByID(ctx context.Context, id string) (*domain.Trader, error) {
	const query = `SELECT ` + traderColumns + ` FROM traders WHERE id=$1`
	var trader domain.Trader
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&trader.ID,
		&trader.Handle,
		&trader.DisplayName,
		&trader.Strategy,
		&trader.Profit30d,
		&trader.WinRate,
		&trader.Active,
		&trader.CreatedAt,
		&trader.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &trader, nil
}

func (r *traderRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Trader, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + traderColumns + ` FROM traders`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY profit_30d DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Trader
	for rows.Next() {
		var trader domain.Trader
		if err := rows.Scan(
			&trader.ID,
			&trader.Handle,
			&trader.DisplayName,
			&trader.Strategy,
			&trader.Profit30d,
			&trader.WinRate,
			&trader.Active,
			&trader.CreatedAt,
			&trader.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, trader)
	}
	return result, rows.Err()
}

func (r *traderRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM traders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
