package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/wallet-service/internal/config"
	"github.com/spec-kit/wallet-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventDepositConfirmed, n.handleDepositConfirmed)
	n.dispatcher.Subscribe(events.EventKYCReviewed, n.handleKYCReviewed)
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketReplied, n.handleTicketReplied)
	n.dispatcher.Subscribe(events.EventCopyPositionOpened, n.handleCopyPositionOpened)
	n.dispatcher.Subscribe(events.EventEarnPositionOpened, n.handleEarnPositionOpened)
}

func (n *NotificationService) handleDepositConfirmed(ctx context.Context, event events.Event) error {
	n.logger.Info("DepositConfirmed", zap.String("profile_id", event.ProfileID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleKYCReviewed(ctx context.Context, event events.Event) error {
	n.logger.Info("KYCReviewed", zap.String("profile_id", event.ProfileID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketCreated", zap.String("profile_id", event.ProfileID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTicketReplied(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketReplied", zap.String("profile_id", event.ProfileID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleCopyPositionOpened(ctx context.Context, event events.Event) error {
	n.logger.Info("CopyPositionOpened", zap.String("profile_id", event.ProfileID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleEarnPositionOpened(ctx context.Context, event events.Event) error {
	n.logger.Info("EarnPositionOpened", zap.String("profile_id", event.ProfileID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("profile_id", event.ProfileID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("profile_id", event.ProfileID),
		zap.String("event_type", string(event.Type)))
}
