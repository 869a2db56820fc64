package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/wallet-service/internal/domain"
)

// TransactionFilter captures listing parameters.
type TransactionFilter struct {
	Kinds    []domain.TransactionKind
	Statuses []domain.TransactionStatus
	Limit    int
	Offset   int
}

// TransactionRepository encapsulates ledger persistence.
type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByProviderTxnID(ctx context.Context, providerTxnID string) (*domain.Transaction, error)
	ListByProfile(ctx context.Context, profileID string, filter TransactionFilter) ([]domain.Transaction, error)
	ListByKindAndStatus(ctx context.Context, kind domain.TransactionKind, status domain.TransactionStatus, limit, offset int) ([]domain.Transaction, error)
	SetStatus(ctx context.Context, id string, status domain.TransactionStatus) error
	SumCompletedSince(ctx context.Context, profileID string, since time.Time) (decimal.Decimal, error)
}

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository instantiates repository.
func NewTransactionRepository(pool *pgxpool.Pool) TransactionRepository {
	return &transactionRepository{pool: pool}
}

const txnColumns = `id, profile_id, symbol, kind, amount, status, provider_txn_id, address, created_at, updated_at`

func (r *transactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	const query = `
        INSERT INTO transactions (profile_id, symbol, kind, amount, status, provider_txn_id, address)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		txn.ProfileID,
		txn.Symbol,
		txn.Kind,
		txn.Amount,
		txn.Status,
		txn.ProviderTxnID,
		txn.Address,
	).Scan(&txn.ID, &txn.CreatedAt, &txn.UpdatedAt)
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	return r.fetchSingle(ctx, `SELECT `+txnColumns+` FROM transactions WHERE id=$1`, id)
}

func (r *transactionRepository) GetByProviderTxnID(ctx context.Context, providerTxnID string) (*domain.Transaction, error) {
	return r.fetchSingle(ctx, `SELECT `+txnColumns+` FROM transactions WHERE provider_txn_id=$1`, providerTxnID)
}

func (r *transactionRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Transaction, error) {
	var txn domain.Transaction
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&txn.ID,
		&txn.ProfileID,
		&txn.Symbol,
		&txn.Kind,
		&txn.Amount,
		&txn.Status,
		&txn.ProviderTxnID,
		&txn.Address,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) ListByProfile(ctx context.Context, profileID string, filter TransactionFilter) ([]domain.Transaction, error) {
	clauses := []string{"profile_id=$1"}
	args := []any{profileID}

	if len(filter.Kinds) > 0 {
		placeholders := make([]string, len(filter.Kinds))
		for i, kind := range filter.Kinds {
			args = append(args, kind)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("kind IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		txnColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		if err := rows.Scan(
			&txn.ID,
			&txn.ProfileID,
			&txn.Symbol,
			&txn.Kind,
			&txn.Amount,
			&txn.Status,
			&txn.ProviderTxnID,
			&txn.Address,
			&txn.CreatedAt,
			&txn.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, txn)
	}
	return result, rows.Err()
}

// ListByKindAndStatus pages through ledger entries of one kind in one
// state, newest first. Serves the admin withdrawal queue.
func (r *transactionRepository) ListByKindAndStatus(ctx context.Context, kind domain.TransactionKind, status domain.TransactionStatus, limit, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE kind=$1 AND status=$2 ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		txnColumns, limit, offset)

	rows, err := r.pool.Query(ctx, query, kind, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		if err := rows.Scan(
			&txn.ID,
			&txn.ProfileID,
			&txn.Symbol,
			&txn.Kind,
			&txn.Amount,
			&txn.Status,
			&txn.ProviderTxnID,
			&txn.Address,
			&txn.CreatedAt,
			&txn.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, txn)
	}
	return result, rows.Err()
}

func (r *transactionRepository) SetStatus(ctx context.Context, id string, status domain.TransactionStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE transactions SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SumCompletedSince totals completed deposit and withdrawal volume for a
// profile from the given instant onward. Internal movements (earn stakes,
// copy allocations) do not count against the limit, so they are excluded.
// Feeds the advisory KYC limit check.
func (r *transactionRepository) SumCompletedSince(ctx context.Context, profileID string, since time.Time) (decimal.Decimal, error) {
	const query = `
        SELECT COALESCE(SUM(amount), 0)
        FROM transactions
        WHERE profile_id=$1 AND status=$2 AND created_at >= $3 AND kind IN ($4,$5)`
	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, profileID, domain.TxStatusCompleted, since,
		domain.TxKindDeposit, domain.TxKindWithdrawal).Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}
