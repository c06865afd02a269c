// Package routes defines the API routing configuration.
// It wires repositories, services and handlers, and groups routes by
// authentication requirements.
package routes

import (
	"solifin/internal/config"
	"solifin/internal/handlers"
	"solifin/internal/middleware"
	"solifin/internal/models"
	"solifin/internal/repositories"
	"solifin/internal/services/auth"
	"solifin/internal/services/cards"
	"solifin/internal/services/commission"
	"solifin/internal/services/currency"
	"solifin/internal/services/exchange"
	"solifin/internal/services/fee"
	"solifin/internal/services/notification"
	"solifin/internal/services/packs"
	"solifin/internal/services/registration"
	"solifin/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	walletRepo := repositories.NewWalletRepository(db)
	feeRepo := repositories.NewFeeRepository(db)
	packRepo := repositories.NewPackRepository(db)

	// Currency core: live rate client with static fallback tables. Rates
	// are fetched per request, never cached.
	rateClient := exchange.NewAPIClient(
		config.GetEnv("EXCHANGE_API_URL", "https://open.er-api.com/v6/latest"),
		config.GetDurationEnv("EXCHANGE_API_TIMEOUT", exchange.DefaultTimeout),
	)
	rateSource := exchange.NewSource(rateClient, config.LoadRateTables())
	normalizer := currency.NewNormalizer(rateSource)

	// Services
	feeService := fee.NewService(feeRepo)
	authService := auth.NewService(userRepo)
	walletService := wallet.NewService(walletRepo, repositories.CacheService, feeService, notification.NewService())
	tokenizer := cards.NewStripeTokenizer(config.GetEnv("STRIPE_SECRET_KEY", ""))
	distributor := commission.NewDistributor()
	packService := packs.NewService(db, packRepo, normalizer, distributor, tokenizer)
	registrationService := registration.NewService(db, userRepo, packRepo, normalizer, distributor, tokenizer)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(registrationService)
	feeHandler := handlers.NewFeeHandler(feeService)
	currencyHandler := handlers.NewCurrencyHandler(normalizer)
	walletHandler := handlers.NewWalletHandler(walletService)
	packHandler := handlers.NewPackHandler(packService)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", userHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Get("/packs", packHandler.ListPacks)
	api.Post("/fees/transfer", feeHandler.CalculateTransferFee)
	api.Post("/fees/withdrawal", feeHandler.CalculateWithdrawalFee)
	api.Post("/currency/convert", currencyHandler.Convert)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Solifin API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	// Protected endpoints
	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	walletGroup := protected.Group("/wallet")
	walletGroup.Get("/", middleware.HasPermission(models.PermissionWalletRead), walletHandler.GetWallet)
	walletGroup.Post("/transfer", middleware.HasPermission(models.PermissionWalletWrite), walletHandler.Transfer)
	walletGroup.Post("/withdraw", middleware.HasPermission(models.PermissionWalletWrite), walletHandler.Withdraw)
	walletGroup.Get("/transactions", middleware.HasPermission(models.PermissionTransactionRead), walletHandler.GetTransactions)

	protected.Get("/me", authHandler.Me)
	protected.Post("/packs/purchase", middleware.HasPermission(models.PermissionPackPurchase), packHandler.PurchasePack)
	protected.Post("/logout", authHandler.Logout)
	protected.Post("/change-password", authHandler.ChangePassword)
}
