package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"defter/internal/handlers"
	"defter/internal/ledger"
	"defter/internal/logger"
	"defter/internal/middleware"
	"defter/internal/models"
	"defter/internal/services"
	"defter/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB          *gorm.DB
	Router      *gin.Engine
	UserService services.UserServicer
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Account{},
		&models.Transaction{},
		&models.StockItem{},
		&models.DailyOrder{},
		&models.Contact{},
		&models.PasswordEntry{},
		&models.ImportShipment{},
		&models.AppVersion{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	transactionService := services.NewTransactionService(db, accountService)
	stockService := services.NewStockService(db)
	orderService := services.NewOrderService(db)
	contactService := services.NewContactService(db)
	passwordService := services.NewPasswordService(db)
	importService := services.NewImportService(db)
	versionService := services.NewVersionService(db)

	if err := accountService.EnsureDefaultAccounts(); err != nil {
		t.Fatalf("failed to seed default accounts: %v", err)
	}
	aggregator := ledger.NewAggregator(models.DefaultAccountNames)
	ledgerService := services.NewLedgerService(transactionService, accountService, aggregator)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	accountHandler := handlers.NewAccountHandler(accountService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	stockHandler := handlers.NewStockHandler(stockService)
	orderHandler := handlers.NewOrderHandler(orderService)
	contactHandler := handlers.NewContactHandler(contactService)
	passwordHandler := handlers.NewPasswordHandler(passwordService)
	importHandler := handlers.NewImportHandler(importService)
	versionHandler := handlers.NewVersionHandler(versionService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public routes
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/version/latest", versionHandler.GetLatestVersion)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/profile", authHandler.GetProfile)

	admin := protected.Group("/")
	admin.Use(middleware.RequireRole(models.RoleAdmin))

	admin.POST("/auth/users", authHandler.CreateUser)
	admin.POST("/version", versionHandler.PublishVersion)

	accounts := admin.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)

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

	return &testApp{DB: db, Router: router, UserService: userService}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// seedUser creates a user directly through the service layer. The desktop
// client has no self-registration; accounts are provisioned by an admin.
func (app *testApp) seedUser(t *testing.T, username string, role models.Role) {
	t.Helper()
	if _, err := app.UserService.CreateUser(username, "password123", role); err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
}

// loginAs seeds a user with the given role and returns a valid token for it.
func (app *testApp) loginAs(t *testing.T, username string, role models.Role) string {
	t.Helper()
	app.seedUser(t, username, role)
	return app.loginUser(t, username, "password123")
}

// loginUser logs in and returns the access token.
func (app *testApp) loginUser(t *testing.T, username, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["token"].(string)
}

// errorCode extracts the error code from an error response body.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in body: %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}
