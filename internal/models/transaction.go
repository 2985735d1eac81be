package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a ledger entry
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Currency represents the currency a transaction was entered in. TRY is the
// home currency; foreign amounts are normalized to TRY at insert time.
type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// IsForeign reports whether the currency needs an exchange rate to be
// normalized to TRY.
func (c Currency) IsForeign() bool {
	return c != CurrencyTRY
}

// Transaction is a single ledger entry on one account.
//
// ExchangeRate and HomeAmount are snapshots taken at insert time and are never
// recomputed when the displayed rate later changes; the audit trail wins over
// real-time accuracy.
type Transaction struct {
	Base
	AccountID    uint             `gorm:"not null;index" json:"account_id"`
	Type         TransactionType  `gorm:"not null;index" json:"type"`
	Date         time.Time        `gorm:"type:date;not null" json:"date"`
	Description  string           `gorm:"not null" json:"description"`
	Currency     Currency         `gorm:"not null;default:'TRY'" json:"currency"`
	Amount       decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"amount"`
	ExchangeRate *decimal.Decimal `gorm:"type:decimal(20,4)" json:"exchange_rate,omitempty"`
	HomeAmount   decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"home_amount"`

	// Active is false for soft-deleted rows. Soft-deleted rows are excluded
	// from every ledger read but retained for audit.
	Active bool `gorm:"not null;default:true;index" json:"active"`

	Account Account `gorm:"foreignKey:AccountID" json:"account"`
}
