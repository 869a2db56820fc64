package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/wallet-service/internal/domain"
)

// KYCRepository manages verification submissions and tier limits.
type KYCRepository interface {
	CreateSubmission(ctx context.Context, sub *domain.KYCSubmission) error
	GetSubmission(ctx context.Context, id string) (*domain.KYCSubmission, error)
	LatestByProfile(ctx context.Context, profileID string) (*domain.KYCSubmission, error)
	HasPending(ctx context.Context, profileID string) (bool, error)
	ListByStatus(ctx context.Context, status domain.KYCSubmissionStatus, limit, offset int) ([]domain.KYCSubmission, error)
	Review(ctx context.Context, id, reviewerID string, status domain.KYCSubmissionStatus, note *string) error
	GetLimit(ctx context.Context, tier int) (*domain.KYCTransactionLimit, error)
}

type kycRepository struct {
	pool *pgxpool.Pool
}

// NewKYCRepository builds repository.
func NewKYCRepository(pool *pgxpool.Pool) KYCRepository {
	return &kycRepository{pool: pool}
}

const kycColumns = `id, profile_id, requested_tier, document_type, document_ref, status, reviewer_id, review_note, created_at, reviewed_at`

func (r *kycRepository) CreateSubmission(ctx context.Context, sub *domain.KYCSubmission) error {
	const query = `
        INSERT INTO kyc_submissions (profile_id, requested_tier, document_type, document_ref, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		sub.ProfileID,
		sub.RequestedTier,
		sub.DocumentType,
		sub.DocumentRef,
		sub.Status,
	).Scan(&sub.ID, &sub.CreatedAt)
}

func (r *kycRepository) GetSubmission(ctx context.Context, id string) (*domain.KYCSubmission, error) {
	return r.fetchSingle(ctx, `SELECT `+kycColumns+` FROM kyc_submissions WHERE id=$1`, id)
}

func (r *kycRepository) LatestByProfile(ctx context.Context, profileID string) (*domain.KYCSubmission, error) {
	const query = `
        SELECT ` + kycColumns + `
        FROM kyc_submissions WHERE profile_id=$1 ORDER BY created_at DESC LIMIT 1`
	return r.fetchSingle(ctx, query, profileID)
}

func (r *kycRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.KYCSubmission, error) {
	var sub domain.KYCSubmission
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&sub.ID,
		&sub.ProfileID,
		&sub.RequestedTier,
		&sub.DocumentType,
		&sub.DocumentRef,
		&sub.Status,
		&sub.ReviewerID,
		&sub.ReviewNote,
		&sub.CreatedAt,
		&sub.ReviewedAt,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *kycRepository) HasPending(ctx context.Context, profileID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM kyc_submissions WHERE profile_id=$1 AND status=$2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, profileID, domain.KYCStatusPending).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *kycRepository) ListByStatus(ctx context.Context, status domain.KYCSubmissionStatus, limit, offset int) ([]domain.KYCSubmission, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT ` + kycColumns + `
        FROM kyc_submissions WHERE status=$1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.KYCSubmission
	for rows.Next() {
		var sub domain.KYCSubmission
		if err := rows.Scan(
			&sub.ID,
			&sub.ProfileID,
			&sub.RequestedTier,
			&sub.DocumentType,
			&sub.DocumentRef,
			&sub.Status,
			&sub.ReviewerID,
			&sub.ReviewNote,
			&sub.CreatedAt,
			&sub.ReviewedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	return result, rows.Err()
}

// Review resolves a pending submission; resolving an already-reviewed
// submission affects no rows.
func (r *kycRepository) Review(ctx context.Context, id, reviewerID string, status domain.KYCSubmissionStatus, note *string) error {
	const query = `
        UPDATE kyc_submissions SET status=$1, reviewer_id=$2, review_note=$3, reviewed_at=NOW()
        WHERE id=$4 AND status=$5`
	cmd, err := r.pool.Exec(ctx, query, status, reviewerID, note, id, domain.KYCStatusPending)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *kycRepository) GetLimit(ctx context.Context, tier int) (*domain.KYCTransactionLimit, error) {
	const query = `SELECT tier, daily_limit, single_txn_limit FROM kyc_transaction_limits WHERE tier=$1`
	var limit domain.KYCTransactionLimit
	if err := r.pool.QueryRow(ctx, query, tier).Scan(
		&limit.Tier,
		&limit.DailyLimit,
		&limit.SingleTxnLimit,
	); err != nil {
		return nil, err
	}
	return &limit, nil
}
