package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"defter/internal/currency"
	apperrors "defter/internal/errors"
	"defter/internal/models"
	"defter/internal/pagination"
)

// transactionService handles the shared transactions table.
type transactionService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer) TransactionServicer {
	return &transactionService{
		db:             db,
		accountService: accountService,
	}
}

// Create validates and inserts a new ledger entry. The home-currency amount
// is computed here, once, from the rate passed in; it is persisted and never
// recomputed on read.
func (s *transactionService) Create(
	accountID uint,
	txType models.TransactionType,
	date time.Time,
	description string,
	cur models.Currency,
	amount decimal.Decimal,
	exchangeRate *decimal.Decimal,
) (*models.Transaction, error) {
	// Validate input
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}

	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	if txType != models.TransactionTypeIncome && txType != models.TransactionTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported transaction type")
	}

	// Default date to today if not provided
	if date.IsZero() {
		date = time.Now()
	}

	// The account must be registered; free-form tags are not accepted.
	account, err := s.accountService.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}

	homeAmount, err := currency.Normalize(amount, cur, exchangeRate)
	if err != nil {
		return nil, err
	}

	// Rates are only stored for foreign-currency rows.
	var rateSnapshot *decimal.Decimal
	if cur.IsForeign() {
		rateSnapshot = exchangeRate
	}

	transaction := &models.Transaction{
		AccountID:    account.ID,
		Type:         txType,
		Date:         truncateToDay(date),
		Description:  description,
		Currency:     cur,
		Amount:       amount,
		ExchangeRate: rateSnapshot,
		HomeAmount:   homeAmount,
		Active:       true,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	return transaction, nil
}

// List returns matching transactions ordered by date descending. An empty
// result is an empty slice, not an error.
func (s *transactionService) List(filter TransactionFilter) ([]models.Transaction, error) {
	var transactions []models.Transaction
	q := applyTransactionFilters(s.db.Model(&models.Transaction{}), filter)
	if err := q.Order("date DESC, id DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return transactions, nil
}

// ListPage returns one page of matching transactions with totals metadata.
func (s *transactionService) ListPage(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := applyTransactionFilters(s.db.Model(&models.Transaction{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if !f.IncludeInactive {
		q = q.Where("active = ?", true)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.AccountID != nil {
		q = q.Where("account_id = ?", *f.AccountID)
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", truncateToDay(*f.FromDate))
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", truncateToDay(*f.ToDate))
	}
	if f.Search != "" {
		q = q.Where("description LIKE ?", "%"+f.Search+"%")
	}
	return q
}

// GetByID retrieves a transaction by id, soft-deleted rows included.
func (s *transactionService) GetByID(transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return &transaction, nil
}

// Update applies a partial in-place update, preserving the row's id and
// creation metadata. The home amount is recomputed only when the amount,
// rate, or currency changed, and only from the values stored or passed in,
// never from a freshly fetched rate.
func (s *transactionService) Update(transactionID uint, fields TransactionUpdateFields) (*models.Transaction, error) {
	transaction, err := s.GetByID(transactionID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if fields.AccountID != nil {
		if _, err := s.accountService.GetAccountByID(*fields.AccountID); err != nil {
			return nil, err
		}
		updates["account_id"] = *fields.AccountID
	}
	if fields.Date != nil {
		updates["date"] = truncateToDay(*fields.Date)
	}
	if fields.Description != nil {
		if strings.TrimSpace(*fields.Description) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
		}
		updates["description"] = *fields.Description
	}

	if fields.Amount != nil || fields.ExchangeRate != nil || fields.Currency != nil {
		cur := transaction.Currency
		if fields.Currency != nil {
			cur = *fields.Currency
			updates["currency"] = cur
		}

		amount := transaction.Amount
		if fields.Amount != nil {
			if !fields.Amount.IsPositive() {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
			}
			amount = *fields.Amount
			updates["amount"] = amount
		}

		rate := transaction.ExchangeRate
		if fields.ExchangeRate != nil {
			rate = fields.ExchangeRate
		}

		homeAmount, err := currency.Normalize(amount, cur, rate)
		if err != nil {
			return nil, err
		}
		updates["home_amount"] = homeAmount
		if cur.IsForeign() {
			updates["exchange_rate"] = rate
		} else {
			updates["exchange_rate"] = nil
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
		}
		if err := s.db.Where("id = ?", transaction.ID).First(transaction).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
		}
	}

	return transaction, nil
}

// Delete removes a transaction. The soft path flips the active flag and keeps
// the row for audit; the hard path removes it permanently. The choice is the
// caller's, per call site.
func (s *transactionService) Delete(transactionID uint, soft bool) error {
	transaction, err := s.GetByID(transactionID)
	if err != nil {
		return err
	}

	if soft {
		if err := s.db.Model(transaction).Update("active", false).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrPersistence, err)
		}
		return nil
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return nil
}

// truncateToDay drops the time-of-day component; transaction dates are
// calendar dates.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
