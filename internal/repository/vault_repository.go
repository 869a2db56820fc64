package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/wallet-service/internal/domain"
)

// VaultRepository manages earn vault products.
type VaultRepository interface {
	Create(ctx context.Context, vault *domain.EarnVault) error
	Update(ctx context.Context, vault *domain.EarnVault) error
	GetByID(ctx context.Context, id string) (*domain.EarnVault, error)
	ListActive(ctx context.Context) ([]domain.EarnVault, error)
	ListAll(ctx context.Context) ([]domain.EarnVault, error)
	Delete(ctx context.Context, id string) error
}

type vaultRepository struct {
	pool *pgxpool.Pool
}

// NewVaultRepository builds repository.
func NewVaultRepository(pool *pgxpool.Pool) VaultRepository {
	return &vaultRepository{pool: pool}
}

const vaultColumns = `id, symbol, name, apy, lock_days, min_stake, active, created_at, updated_at`

func (r *vaultRepository) Create(ctx context.Context, vault *domain.EarnVault) error {
	const query = `
        INSERT INTO earn_vaults (symbol, name, apy, lock_days, min_stake, active)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		vault.Symbol,
		vault.Name,
		vault.APY,
		vault.LockDays,
		vault.MinStake,
		vault.Active,
	).Scan(&vault.ID, &vault.CreatedAt, &vault.UpdatedAt)
}

func (r *vaultRepository) Update(ctx context.Context, vault *domain.EarnVault) error {
	const query = `
        UPDATE earn_vaults SET symbol=$1, name=$2, apy=$3, lock_days=$4, min_stake=$5, active=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		vault.Symbol,
		vault.Name,
		vault.APY,
		vault.LockDays,
		vault.MinStake,
		vault.Active,
		vault.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vaultRepository) GetByID(ctx context.Context, id string) (*domain.EarnVault, error) {
	const query = `SELECT ` + vaultColumns + ` FROM earn_vaults WHERE id=$1`
	var vault domain.EarnVault
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&vault.ID,
		&vault.Symbol,
		&vault.Name,
		&vault.APY,
		&vault.LockDays,
		&vault.MinStake,
		&vault.Active,
		&vault.CreatedAt,
		&vault.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &vault, nil
}

func (r *vaultRepository) ListActive(ctx context.Context) ([]domain.EarnVault, error) {
	const query = `SELECT ` + vaultColumns + ` FROM earn_vaults WHERE active ORDER BY apy DESC`
	return r.list(ctx, query)
}

func (r *vaultRepository) ListAll(ctx context.Context) ([]domain.EarnVault, error) {
	const query = `SELECT ` + vaultColumns + ` FROM earn_vaults ORDER BY apy DESC`
	return r.list(ctx, query)
}

func (r *vaultRepository) list(ctx context.Context, query string) ([]domain.EarnVault, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EarnVault
	for rows.Next() {
		var vault domain.EarnVault
		if err := rows.Scan(
			&vault.ID,
			&vault.Symbol,
			&vault.Name,
			&vault.APY,
			&vault.LockDays,
			&vault.MinStake,
			&vault.Active,
			&vault.CreatedAt,
			&vault.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, vault)
	}
	return result, rows.Err()
}

func (r *vaultRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM earn_vaults WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
