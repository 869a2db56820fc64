package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/wallet-service/internal/domain"
)

// TokenRepository reads supported asset metadata.
type TokenRepository interface {
	ListActive(ctx context.Context) ([]domain.BaseToken, error)
	GetBySymbol(ctx context.Context, symbol string) (*domain.BaseToken, error)
}

type tokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository builds repository.
func NewTokenRepository(pool *pgxpool.Pool) TokenRepository {
	return &tokenRepository{pool: pool}
}

const tokenColumns = `symbol, name, chain, decimals, icon_url, is_active, min_deposit, created_at, updated_at`

func (r *tokenRepository) ListActive(ctx context.Context) ([]domain.BaseToken, error) {
	const query = `SELECT ` + tokenColumns + ` FROM base_tokens WHERE is_active ORDER BY symbol ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BaseToken
	for rows.Next() {
		var token domain.BaseToken
		if err := rows.Scan(
			&token.Symbol,
			&token.Name,
			&token.Chain,
			&token.Decimals,
			&token.IconURL,
			&token.IsActive,
			&token.MinDeposit,
			&token.CreatedAt,
			&token.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, token)
	}
	return result, rows.Err()
}

func (r *tokenRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.BaseToken, error) {
	const query = `SELECT ` + tokenColumns + ` FROM base_tokens WHERE symbol=$1`
	var token domain.BaseToken
	if err := r.pool.QueryRow(ctx, query, symbol).Scan(
		&token.Symbol,
		&token.Name,
		&token.Chain,
		&token.Decimals,
		&token.IconURL,
		&token.IsActive,
		&token.MinDeposit,
		&token.CreatedAt,
		&token.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &token, nil
}
