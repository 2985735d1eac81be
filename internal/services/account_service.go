package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "defter/internal/errors"
	"defter/internal/models"
)

// accountService handles the registered-account table.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// EnsureDefaultAccounts registers the dashboard's account cards if they do
// not exist yet. Safe to call on every startup.
func (s *accountService) EnsureDefaultAccounts() error {
	for _, name := range models.DefaultAccountNames {
		var count int64
		if err := s.db.Model(&models.Account{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrPersistence, err)
		}
		if count > 0 {
			continue
		}
		account := &models.Account{Name: name, IsActive: true}
		if err := s.db.Create(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrPersistence, err)
		}
	}
	return nil
}

// CreateAccount registers a new named account.
func (s *accountService) CreateAccount(name, description string) (*models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	var count int64
	if err := s.db.Model(&models.Account{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateAccount
	}

	account := &models.Account{
		Name:        name,
		Description: description,
		IsActive:    true,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return account, nil
}

// GetAccounts returns every active account in registration order.
func (s *accountService) GetAccounts() ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Where("is_active = ?", true).Order("id").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return accounts, nil
}

// GetAccountByID retrieves an active account by id.
func (s *accountService) GetAccountByID(accountID uint) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ? AND is_active = ?", accountID, true).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return &account, nil
}

// GetAccountByName retrieves an active account by its exact name. Account
// names are case-sensitive tags; "cash" does not match "CASH".
func (s *accountService) GetAccountByName(name string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("name = ? AND is_active = ?", name, true).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return &account, nil
}
