package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"defter/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active user with a hashed password and unique
// username.
func CreateTestUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	username := fmt.Sprintf("user%d", nextID())
	return CreateTestUserWithUsername(t, db, username, role)
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates an active account with a unique name.
func CreateTestAccount(t *testing.T, db *gorm.DB) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:     fmt.Sprintf("Test Account %d", nextID()),
		IsActive: true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestTransaction creates an active TRY transaction of the given type
// and amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, accountID uint, txType models.TransactionType, amount decimal.Decimal) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		AccountID:   accountID,
		Type:        txType,
		Date:        time.Now().UTC().Truncate(24 * time.Hour),
		Description: fmt.Sprintf("test entry %d", nextID()),
		Currency:    models.CurrencyTRY,
		Amount:      amount,
		HomeAmount:  amount,
		Active:      true,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestStockItem creates a stock item with the given quantities.
func CreateTestStockItem(t *testing.T, db *gorm.DB, quantity, realStock int) *models.StockItem {
	t.Helper()

	n := nextID()
	item := &models.StockItem{
		ProductCode: fmt.Sprintf("SKU%d", n),
		ProductName: fmt.Sprintf("Test Product %d", n),
		Quantity:    quantity,
		RealStock:   realStock,
		UnitPrice:   decimal.NewFromInt(100),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test stock item: %v", err)
	}
	return item
}

// CreateTestContact creates a contact with a unique name.
func CreateTestContact(t *testing.T, db *gorm.DB) *models.Contact {
	t.Helper()

	contact := &models.Contact{
		Name:  fmt.Sprintf("Test Contact %d", nextID()),
		Phone: "0555 123 45 67",
	}
	if err := db.Create(contact).Error; err != nil {
		t.Fatalf("failed to create test contact: %v", err)
	}
	return contact
}
