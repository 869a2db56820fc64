package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wallet-service/internal/api/http/handlers"
	"github.com/spec-kit/wallet-service/internal/auth"
	"github.com/spec-kit/wallet-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health           *handlers.HealthHandler
	Auth             *handlers.AuthHandler
	Wallet           *handlers.WalletHandler
	Tokens           *handlers.TokensHandler
	KYC              *handlers.KYCHandler
	Traders          *handlers.TradersHandler
	Earn             *handlers.EarnHandler
	Tickets          *handlers.TicketsHandler
	AdminUsers       *handlers.AdminUsersHandler
	AdminKYC         *handlers.AdminKYCHandler
	AdminTrading     *handlers.AdminTradingHandler
	AdminTickets     *handlers.AdminTicketsHandler
	AdminWithdrawals *handlers.AdminWithdrawalsHandler
	Metrics          *handlers.MetricsHandler
	Webhooks         *handlers.WebhookHandler

	AuthMiddleware   *auth.AuthMiddleware
	EarnEnabled      bool
	CopyTradeEnabled bool
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.ChangePassword)

	// Unauthenticated; verified by HMAC signature instead.
	app.Post("/webhooks/plisio", cfg.Webhooks.Plisio)

	app.Get("/config/tokens", cfg.Tokens.List)

	user := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	wallet := user.Group("/wallet")
	wallet.Get("/balances", cfg.Wallet.ListBalances)
	wallet.Get("/transactions", cfg.Wallet.ListTransactions)
	wallet.Get("/transactions/:id", cfg.Wallet.GetTransaction)
	wallet.Post("/deposits", cfg.Wallet.CreateDeposit)
	wallet.Post("/withdrawals", cfg.Wallet.RequestWithdrawal)

	kyc := user.Group("/kyc")
	kyc.Get("/status", cfg.KYC.Status)
	kyc.Post("/submissions", cfg.KYC.Submit)

	copyGate := FeatureGate(cfg.CopyTradeEnabled)
	traders := user.Group("/traders", copyGate)
	traders.Get("/", cfg.Traders.ListTraders)
	traders.Get("/:id", cfg.Traders.GetTrader)

	copyPositions := user.Group("/copy-positions", copyGate)
	copyPositions.Post("/", cfg.Traders.OpenPosition)
	copyPositions.Get("/", cfg.Traders.ListPositions)
	copyPositions.Post("/:id/close", cfg.Traders.ClosePosition)

	earn := user.Group("/earn", FeatureGate(cfg.EarnEnabled))
	earn.Get("/vaults", cfg.Earn.ListVaults)
	earn.Post("/positions", cfg.Earn.Stake)
	earn.Get("/positions", cfg.Earn.ListPositions)
	earn.Post("/positions/:id/withdraw", cfg.Earn.Withdraw)

	tickets := user.Group("/tickets")
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Post("/:id/messages", cfg.Tickets.Reply)
	tickets.Post("/:id/close", cfg.Tickets.Close)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin))
	admin.Get("/users", cfg.AdminUsers.List)
	admin.Post("/users/:id/ban", cfg.AdminUsers.Ban)
	admin.Post("/users/:id/unban", cfg.AdminUsers.Unban)
	admin.Post("/users/:id/role", auth.RequireRole(domain.RoleSuperAdmin), cfg.AdminUsers.SetRole)

	admin.Get("/withdrawals", cfg.AdminWithdrawals.List)
	admin.Post("/withdrawals/:id/review", cfg.AdminWithdrawals.Review)

	admin.Get("/kyc/submissions", cfg.AdminKYC.ListPending)
	admin.Post("/kyc/submissions/:id/review", cfg.AdminKYC.Review)

	admin.Get("/traders", cfg.AdminTrading.ListTraders)
	admin.Post("/traders", cfg.AdminTrading.CreateTrader)
	admin.Put("/traders/:id", cfg.AdminTrading.UpdateTrader)
	admin.Delete("/traders/:id", cfg.AdminTrading.DeleteTrader)

	admin.Get("/earn/vaults", cfg.AdminTrading.ListVaults)
	admin.Post("/earn/vaults", cfg.AdminTrading.CreateVault)
	admin.Put("/earn/vaults/:id", cfg.AdminTrading.UpdateVault)
	admin.Delete("/earn/vaults/:id", cfg.AdminTrading.DeleteVault)

	admin.Get("/metrics", cfg.Metrics.Snapshot)

	admin.Get("/tickets", cfg.AdminTickets.List)
	admin.Get("/tickets/:id", cfg.AdminTickets.Get)
	admin.Post("/tickets/:id/messages", cfg.AdminTickets.Reply)
	admin.Post("/tickets/:id/close", cfg.AdminTickets.Close)
}
