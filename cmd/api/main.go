package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/wallet-service/internal/api/http"
	"github.com/spec-kit/wallet-service/internal/api/http/handlers"
	"github.com/spec-kit/wallet-service/internal/auth"
	"github.com/spec-kit/wallet-service/internal/config"
	"github.com/spec-kit/wallet-service/internal/events"
	"github.com/spec-kit/wallet-service/internal/observability"
	"github.com/spec-kit/wallet-service/internal/payments"
	"github.com/spec-kit/wallet-service/internal/persistence"
	"github.com/spec-kit/wallet-service/internal/repository"
	"github.com/spec-kit/wallet-service/internal/service"
	"github.com/spec-kit/wallet-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	profileRepo := repository.NewProfileRepository(pool)
	balanceRepo := repository.NewBalanceRepository(pool)
	transactionRepo := repository.NewTransactionRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)
	traderRepo := repository.NewTraderRepository(pool)
	copyPositionRepo := repository.NewCopyPositionRepository(pool)
	vaultRepo := repository.NewVaultRepository(pool)
	earnPositionRepo := repository.NewEarnPositionRepository(pool)
	kycRepo := repository.NewKYCRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	ticketMessageRepo := repository.NewTicketMessageRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	plisioClient := payments.NewClient(cfg.Plisio.APIKey, cfg.Plisio.APIBaseURL)

	authService := service.NewAuthService(*cfg, profileRepo)
	walletService := service.NewWalletService(balanceRepo, transactionRepo, tokenRepo, plisioClient)
	tokenService := service.NewTokenService(tokenRepo)
	kycService := service.NewKYCService(profileRepo, kycRepo, transactionRepo, dispatcher)
	copyTradeService := service.NewCopyTradeService(traderRepo, copyPositionRepo, balanceRepo, tokenRepo, transactionRepo, dispatcher)
	earnService := service.NewEarnService(vaultRepo, earnPositionRepo, balanceRepo, transactionRepo, dispatcher)
	ticketService := service.NewTicketService(ticketRepo, ticketMessageRepo, dispatcher)
	adminService := service.NewAdminService(profileRepo)
	webhookService := service.NewWebhookService(cfg.Plisio, transactionRepo, balanceRepo, redis, dispatcher, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), profileRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:           handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:             handlers.NewAuthHandler(authService),
		Wallet:           handlers.NewWalletHandler(walletService),
		Tokens:           handlers.NewTokensHandler(tokenService),
		KYC:              handlers.NewKYCHandler(kycService),
		Traders:          handlers.NewTradersHandler(copyTradeService),
		Earn:             handlers.NewEarnHandler(earnService),
		Tickets:          handlers.NewTicketsHandler(ticketService),
		AdminUsers:       handlers.NewAdminUsersHandler(adminService),
		AdminKYC:         handlers.NewAdminKYCHandler(kycService),
		AdminTrading:     handlers.NewAdminTradingHandler(copyTradeService, earnService),
		AdminTickets:     handlers.NewAdminTicketsHandler(ticketService),
		AdminWithdrawals: handlers.NewAdminWithdrawalsHandler(walletService),
		Metrics:          handlers.NewMetricsHandler(metrics),
		Webhooks:         handlers.NewWebhookHandler(webhookService),

		AuthMiddleware:   authMiddleware,
		EarnEnabled:      cfg.Features.EarnEnabled,
		CopyTradeEnabled: cfg.Features.CopyTradeEnabled,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
