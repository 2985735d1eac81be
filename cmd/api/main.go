package main

import (
	"fmt"
	"net/http"
	"os"

	"defter/internal/config"
	"defter/internal/database"
	"defter/internal/handlers"
	"defter/internal/ledger"
	"defter/internal/logger"
	"defter/internal/middleware"
	"defter/internal/models"
	"defter/internal/rates"
	"defter/internal/services"
	"defter/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "defter/internal/docs" // Import swagger docs
)

// @title           Defter API
// @version         1.0
// @description     Defter is the hosted backend of a small-business bookkeeping client: multi-account ledgers with TRY normalization, stock and daily orders, imports, contacts, and shared credentials.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	transactionService := services.NewTransactionService(db, accountService)
	stockService := services.NewStockService(db)
	orderService := services.NewOrderService(db)
	contactService := services.NewContactService(db)
	passwordService := services.NewPasswordService(db)
	importService := services.NewImportService(db)
	versionService := services.NewVersionService(db)

	// Seed the dashboard accounts and the balance aggregator
	if err := accountService.EnsureDefaultAccounts(); err != nil {
		return fmt.Errorf("failed to seed default accounts: %w", err)
	}
	accounts, err := accountService.GetAccounts()
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}
	accountNames := make([]string, 0, len(accounts))
	for _, account := range accounts {
		accountNames = append(accountNames, account.Name)
	}
	aggregator := ledger.NewAggregator(accountNames)
	ledgerService := services.NewLedgerService(transactionService, accountService, aggregator)

	// Exchange rate fetcher with the last-known-rate fallback
	rateFetcher := rates.NewFetcher(
		&http.Client{Timeout: appConfig.RateTimeout},
		appConfig.RateEndpoint,
		appConfig.RateFallback,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	accountHandler := handlers.NewAccountHandler(accountService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	rateHandler := handlers.NewRateHandler(rateFetcher)
	stockHandler := handlers.NewStockHandler(stockService)
	orderHandler := handlers.NewOrderHandler(orderService)
	contactHandler := handlers.NewContactHandler(contactService)
	passwordHandler := handlers.NewPasswordHandler(passwordService)
	importHandler := handlers.NewImportHandler(importService)
	versionHandler := handlers.NewVersionHandler(versionService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		if err := dbManager.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes: login and the client self-update check
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/version/latest", versionHandler.GetLatestVersion)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/profile", authHandler.GetProfile)
	protected.GET("/rates/usd-try", rateHandler.GetRate)

	// Ledger pages, the transaction store, registered accounts, stored
	// credentials and user administration are admin territory.
	admin := protected.Group("/")
	admin.Use(middleware.RequireRole(models.RoleAdmin))

	admin.POST("/auth/users", authHandler.CreateUser)
	admin.POST("/version", versionHandler.PublishVersion)

	accountsGroup := admin.Group("/accounts")
	accountsGroup.POST("", accountHandler.CreateAccount)
	accountsGroup.GET("", accountHandler.GetAccounts)

	transactions := admin.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	ledgers := admin.Group("/ledgers")
	ledgers.GET("/:id", ledgerHandler.GetLedger)
	ledgers.DELETE("/:id/transactions/:txid", ledgerHandler.DeleteLedgerTransaction)
	admin.GET("/dashboard", ledgerHandler.GetDashboard)

	passwords := admin.Group("/passwords")
	passwords.POST("", passwordHandler.CreatePasswordEntry)
	passwords.GET("", passwordHandler.GetPasswordEntries)
	passwords.PUT("/:id", passwordHandler.UpdatePasswordEntry)
	passwords.DELETE("/:id", passwordHandler.DeletePasswordEntry)
	passwords.DELETE("", passwordHandler.DeleteAllPasswordEntries)

	// Operational pages: every role may read, observers may not write.
	operational := protected.Group("/")
	operational.Use(middleware.RequireRole(models.RoleAdmin, models.RolePersonnel, models.RoleObserver))
	operational.Use(middleware.ObserverReadOnly())

	stock := operational.Group("/stock")
	stock.POST("", stockHandler.CreateStockItem)
	stock.GET("", stockHandler.GetStockItems)
	stock.GET("/:code", stockHandler.GetStockItem)
	stock.PUT("/:id", stockHandler.UpdateStockItem)
	stock.DELETE("/:id", stockHandler.DeleteStockItem)

	orders := operational.Group("/orders")
	orders.POST("", orderHandler.PlaceOrder)
	orders.GET("", orderHandler.GetOrders)
	orders.GET("/summary", orderHandler.GetOrderSummary)
	orders.PUT("/:id", orderHandler.UpdateOrder)
	orders.DELETE("/:id", orderHandler.DeleteOrder)

	imports := operational.Group("/imports")
	imports.POST("", importHandler.CreateShipment)
	imports.GET("", importHandler.GetShipments)
	imports.PUT("/:id", importHandler.UpdateShipment)
	imports.DELETE("/:id", importHandler.DeleteShipment)

	contacts := operational.Group("/contacts")
	contacts.POST("", contactHandler.CreateContact)
	contacts.GET("", contactHandler.GetContacts)
	contacts.PUT("/:id", contactHandler.UpdateContact)
	contacts.DELETE("/:id", contactHandler.DeleteContact)

	log.Infof("Starting Defter backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
