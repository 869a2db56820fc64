package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/wallet-service/internal/config"
	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/events"
	"github.com/spec-kit/wallet-service/internal/payments"
	"github.com/spec-kit/wallet-service/internal/repository"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

const webhookDedupePrefix = "wallet:webhook:plisio:"

// DedupeStore remembers processed callback ids. Satisfied by the Redis
// wrapper in persistence.
type DedupeStore interface {
	MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ClearMark(ctx context.Context, key string) error
}

// WebhookService ingests payment provider callbacks: signature check,
// replay suppression, then deposit settlement.
type WebhookService struct {
	cfg          config.PlisioConfig
	transactions repository.TransactionRepository
	balances     repository.BalanceRepository
	dedupe       DedupeStore
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// NewWebhookService constructs the service.
func NewWebhookService(cfg config.PlisioConfig, transactions repository.TransactionRepository, balances repository.BalanceRepository, dedupe DedupeStore, dispatcher events.Dispatcher, logger *zap.Logger) *WebhookService {
	return &WebhookService{
		cfg:          cfg,
		transactions: transactions,
		balances:     balances,
		dedupe:       dedupe,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

// ProcessPlisio handles one raw callback body. Unverifiable callbacks are
// rejected outright; there is no retry or partial trust.
func (s *WebhookService) ProcessPlisio(ctx context.Context, rawBody []byte) error {
	if !payments.VerifyCallback(rawBody, s.cfg.SecretKey) {
		return apperrors.NewUnauthorized("callback verification failed")
	}

	var callback payments.Callback
	if err := json.Unmarshal(rawBody, &callback); err != nil {
		return apperrors.NewValidationError("malformed callback payload", nil)
	}
	if callback.TxnID == "" {
		return apperrors.NewValidationError("txn_id required", nil)
	}

	switch callback.Status {
	case payments.CallbackStatusCompleted, payments.CallbackStatusMismatch:
		return s.settleDeposit(ctx, callback)
	case payments.CallbackStatusExpired, payments.CallbackStatusCancelled, payments.CallbackStatusError:
		return s.failDeposit(ctx, callback)
	default:
		// intermediate statuses are acknowledged without state changes
		s.logger.Debug("ignoring non-terminal callback",
			zap.String("txn_id", callback.TxnID),
			zap.String("status", callback.Status))
		return nil
	}
}

func (s *WebhookService) settleDeposit(ctx context.Context, callback payments.Callback) error {
	key := webhookDedupePrefix + callback.TxnID
	first, err := s.dedupe.MarkOnce(ctx, key, s.cfg.DedupeTTL())
	marked := err == nil
	if err != nil {
		// without the marker we still settle; the completed-status check
		// below keeps the operation idempotent
		s.logger.Warn("webhook dedupe unavailable", zap.Error(err))
	} else if !first {
		s.logger.Info("duplicate callback suppressed", zap.String("txn_id", callback.TxnID))
		return nil
	}

	if err := s.completeDeposit(ctx, callback); err != nil {
		// a set marker would make the provider's retry read as a duplicate,
		// so it must not outlive a failed settlement
		if marked {
			if clearErr := s.dedupe.ClearMark(ctx, key); clearErr != nil {
				s.logger.Warn("webhook dedupe marker left behind",
					zap.String("txn_id", callback.TxnID), zap.Error(clearErr))
			}
		}
		return err
	}
	return nil
}

func (s *WebhookService) completeDeposit(ctx context.Context, callback payments.Callback) error {
	txn, err := s.transactions.GetByProviderTxnID(ctx, callback.TxnID)
	if err != nil {
		return err
	}
	if txn.Status == domain.TxStatusCompleted {
		return nil
	}
	if txn.Status != domain.TxStatusPending {
		return apperrors.NewConflict("transaction is not pending", nil)
	}

	if err := s.transactions.SetStatus(ctx, txn.ID, domain.TxStatusCompleted); err != nil {
		return err
	}
	if err := s.balances.Credit(ctx, txn.ProfileID, txn.Symbol, txn.Amount); err != nil {
		// put the transaction back so the provider's retry can settle it
		_ = s.transactions.SetStatus(ctx, txn.ID, domain.TxStatusPending)
		return err
	}

	s.logger.Info("deposit settled",
		zap.String("transaction_id", txn.ID),
		zap.String("provider_txn_id", callback.TxnID),
		zap.String("symbol", txn.Symbol))

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventDepositConfirmed,
		ProfileID: txn.ProfileID,
		Payload: events.DepositConfirmedPayload{
			TransactionID: txn.ID,
			Symbol:        txn.Symbol,
			Amount:        txn.Amount,
			ProviderTxnID: callback.TxnID,
		},
	})
	return nil
}

func (s *WebhookService) failDeposit(ctx context.Context, callback payments.Callback) error {
	txn, err := s.transactions.GetByProviderTxnID(ctx, callback.TxnID)
	if err != nil {
		return err
	}
	if txn.Status != domain.TxStatusPending {
		return nil
	}
	s.logger.Info("deposit failed",
		zap.String("transaction_id", txn.ID),
		zap.String("provider_status", callback.Status))
	return s.transactions.SetStatus(ctx, txn.ID, domain.TxStatusFailed)
}
