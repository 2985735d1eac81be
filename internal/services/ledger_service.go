package services

import (
	"github.com/shopspring/decimal"

	apperrors "defter/internal/errors"
	"defter/internal/ledger"
	"defter/internal/models"
)

// ledgerService projects the transaction store onto one account at a time
// and pushes every computed balance into the dashboard aggregator.
type ledgerService struct {
	transactionService TransactionServicer
	accountService     AccountServicer
	aggregator         *ledger.Aggregator
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(transactionService TransactionServicer, accountService AccountServicer, aggregator *ledger.Aggregator) LedgerServicer {
	return &ledgerService{
		transactionService: transactionService,
		accountService:     accountService,
		aggregator:         aggregator,
	}
}

// Load returns one account page: active transactions filtered by the given
// date range and type, with income/expense totals and the net balance.
// Every successful load notifies the aggregator with the computed balance;
// that notification is the load's only side effect.
func (s *ledgerService) Load(accountID uint, filter LedgerFilter) (*LedgerView, error) {
	account, err := s.accountService.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionService.List(TransactionFilter{
		AccountID: &account.ID,
		FromDate:  filter.FromDate,
		ToDate:    filter.ToDate,
		Type:      filter.Type,
	})
	if err != nil {
		return nil, err
	}

	view := &LedgerView{
		Account:      *account,
		Transactions: transactions,
		TotalIncome:  sumByType(transactions, models.TransactionTypeIncome),
		TotalExpense: sumByType(transactions, models.TransactionTypeExpense),
		Balance:      ledger.ComputeBalance(transactions),
	}

	s.aggregator.OnBalanceChanged(account.Name, view.Balance)

	return view, nil
}

// DeleteTransaction removes one entry through the ledger view, then reloads
// the page and recomputes. The delete is never assumed to have succeeded:
// a failed delete surfaces its error and the view is left unrefreshed.
func (s *ledgerService) DeleteTransaction(accountID, transactionID uint, soft bool, filter LedgerFilter) (*LedgerView, error) {
	if _, err := s.accountService.GetAccountByID(accountID); err != nil {
		return nil, err
	}

	// A ledger page may only delete its own entries.
	tx, err := s.transactionService.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if tx.AccountID != accountID {
		return nil, apperrors.ErrTransactionNotFound
	}

	if err := s.transactionService.Delete(transactionID, soft); err != nil {
		return nil, err
	}

	return s.Load(accountID, filter)
}

// Dashboard returns the aggregator's current per-account balances and their
// grand total, taken as one consistent snapshot.
func (s *ledgerService) Dashboard() ledger.Snapshot {
	return s.aggregator.Snapshot()
}

func sumByType(transactions []models.Transaction, txType models.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		if tx.Type == txType {
			total = total.Add(tx.HomeAmount)
		}
	}
	return total
}
