// Package ledger holds the balance arithmetic shared by the per-account
// ledger views and the dashboard aggregator.
package ledger

import (
	"github.com/shopspring/decimal"

	"defter/internal/models"
)

// ComputeBalance returns the net balance of a loaded transaction set: the sum
// of home-currency amounts of income entries minus the sum for expense
// entries. It is a pure function of its input; order does not matter.
func ComputeBalance(transactions []models.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionTypeIncome:
			balance = balance.Add(tx.HomeAmount)
		case models.TransactionTypeExpense:
			balance = balance.Sub(tx.HomeAmount)
		}
	}
	return balance
}
