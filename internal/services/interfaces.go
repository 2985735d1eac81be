package services

import (
	"time"

	"github.com/shopspring/decimal"

	"defter/internal/ledger"
	"defter/internal/models"
	"defter/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, password string, role models.Role) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	AttemptLogin(username, password string) (*models.User, error)
}

// AccountServicer defines the contract for registered-account business logic.
type AccountServicer interface {
	EnsureDefaultAccounts() error
	CreateAccount(name, description string) (*models.Account, error)
	GetAccounts() ([]models.Account, error)
	GetAccountByID(accountID uint) (*models.Account, error)
	GetAccountByName(name string) (*models.Account, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Type      *models.TransactionType
	AccountID *uint
	FromDate  *time.Time
	ToDate    *time.Time
	Search    string

	// IncludeInactive also returns soft-deleted rows; audit views only.
	IncludeInactive bool
}

// TransactionUpdateFields holds the partial fields of an in-place update.
// HomeAmount is recomputed only when Amount, ExchangeRate, or Currency is
// present; it is never re-derived from a freshly fetched rate.
type TransactionUpdateFields struct {
	AccountID    *uint
	Date         *time.Time
	Description  *string
	Currency     *models.Currency
	Amount       *decimal.Decimal
	ExchangeRate *decimal.Decimal
}

// TransactionServicer defines the contract for the transaction store.
type TransactionServicer interface {
	Create(accountID uint, txType models.TransactionType, date time.Time, description string, cur models.Currency, amount decimal.Decimal, exchangeRate *decimal.Decimal) (*models.Transaction, error)
	List(filter TransactionFilter) ([]models.Transaction, error)
	ListPage(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetByID(transactionID uint) (*models.Transaction, error)
	Update(transactionID uint, fields TransactionUpdateFields) (*models.Transaction, error)
	Delete(transactionID uint, soft bool) error
}

// LedgerFilter narrows a per-account ledger load.
type LedgerFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.TransactionType
}

// LedgerView is one account page: the filtered transactions plus their totals.
type LedgerView struct {
	Account      models.Account       `json:"account"`
	Transactions []models.Transaction `json:"transactions"`
	TotalIncome  decimal.Decimal      `json:"total_income"`
	TotalExpense decimal.Decimal      `json:"total_expense"`
	Balance      decimal.Decimal      `json:"balance"`
}

// LedgerServicer projects the transaction store onto single accounts and
// keeps the dashboard aggregator current.
type LedgerServicer interface {
	Load(accountID uint, filter LedgerFilter) (*LedgerView, error)
	DeleteTransaction(accountID, transactionID uint, soft bool, filter LedgerFilter) (*LedgerView, error)
	Dashboard() ledger.Snapshot
}

// StockUpdateFields holds the partial fields of a stock item update.
type StockUpdateFields struct {
	ProductName *string
	Quantity    *int
	RealStock   *int
	UnitPrice   *decimal.Decimal
}

// StockServicer defines the contract for inventory business logic.
type StockServicer interface {
	CreateItem(productCode, productName string, quantity int, unitPrice decimal.Decimal, realStock *int) (*models.StockItem, error)
	GetItems() ([]models.StockItem, error)
	GetItemByCode(productCode string) (*models.StockItem, error)
	UpdateItem(itemID uint, fields StockUpdateFields) (*models.StockItem, error)
	DeleteItem(itemID uint) error
}

// OrderInput is everything needed to place a daily order. AllowOversell
// mirrors the client's confirmation dialog: without it, ordering more than
// the bookable stock fails.
type OrderInput struct {
	ProductCode   string
	CustomerName  string
	ProductName   string
	Quantity      int
	UnitPrice     decimal.Decimal
	OrderDate     *time.Time
	IsRealOrder   bool
	AllowOversell bool
}

// OrderUpdateFields holds the partial fields of an order update. TotalAmount
// is recomputed when Quantity or UnitPrice changes.
type OrderUpdateFields struct {
	CustomerName *string
	ProductName  *string
	Quantity     *int
	UnitPrice    *decimal.Decimal
	OrderDate    *time.Time
}

// OrderSummary is the per-day totals strip above the orders table.
type OrderSummary struct {
	TotalOrders int             `json:"total_orders"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// OrderServicer defines the contract for daily-order business logic.
type OrderServicer interface {
	PlaceOrder(input OrderInput) (*models.DailyOrder, error)
	GetOrders(orderDate *time.Time) ([]models.DailyOrder, error)
	SearchOrders(term string, orderDate *time.Time) ([]models.DailyOrder, error)
	UpdateOrder(orderID uint, fields OrderUpdateFields) (*models.DailyOrder, error)
	DeleteOrder(orderID uint) error
	Summary(orderDate *time.Time) (*OrderSummary, error)
}

// ContactServicer defines the contract for the contacts page.
type ContactServicer interface {
	CreateContact(name, phone, description string) (*models.Contact, error)
	GetContacts() ([]models.Contact, error)
	GetContactByID(contactID uint) (*models.Contact, error)
	SearchContacts(term string) ([]models.Contact, error)
	UpdateContact(contactID uint, name, phone, description string) (*models.Contact, error)
	DeleteContact(contactID uint) error
}

// PasswordServicer defines the contract for the stored-credentials page.
type PasswordServicer interface {
	CreateEntry(platform, username, password, description string) (*models.PasswordEntry, error)
	GetEntries() ([]models.PasswordEntry, error)
	SearchEntries(term string) ([]models.PasswordEntry, error)
	UpdateEntry(entryID uint, platform, username, password, description string) (*models.PasswordEntry, error)
	DeleteEntry(entryID uint) error
	DeleteAllEntries() error
}

// ImportUpdateFields holds the partial fields of an import shipment update.
type ImportUpdateFields struct {
	ProductName *string
	Quantity    *int
	Date        *time.Time
	Status      *string
	SubStatus   *string
	Notes       *string
}

// ImportServicer defines the contract for the import-shipments page.
type ImportServicer interface {
	CreateShipment(productName string, quantity int, date time.Time, status, subStatus, notes string) (*models.ImportShipment, error)
	GetShipments() ([]models.ImportShipment, error)
	UpdateShipment(shipmentID uint, fields ImportUpdateFields) (*models.ImportShipment, error)
	DeleteShipment(shipmentID uint) error
}

// VersionServicer exposes the desktop client's version-control table.
type VersionServicer interface {
	Latest() (*models.AppVersion, error)
	Publish(version, downloadURL, notes string, mandatory bool) (*models.AppVersion, error)
}
