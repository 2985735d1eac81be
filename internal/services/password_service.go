package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "defter/internal/errors"
	"defter/internal/models"
)

// passwordService stores shared platform credentials for the office.
type passwordService struct {
	db *gorm.DB
}

// NewPasswordService creates a new PasswordServicer.
func NewPasswordService(db *gorm.DB) PasswordServicer {
	return &passwordService{db: db}
}

// CreateEntry inserts a new credential record.
func (s *passwordService) CreateEntry(platform, username, password, description string) (*models.PasswordEntry, error) {
	if strings.TrimSpace(platform) == "" || strings.TrimSpace(password) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "platform and password are required")
	}

	entry := &models.PasswordEntry{
		Platform:    platform,
		Username:    username,
		Password:    password,
		Description: description,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return entry, nil
}

// GetEntries returns all stored credentials ordered by platform.
func (s *passwordService) GetEntries() ([]models.PasswordEntry, error) {
	var entries []models.PasswordEntry
	if err := s.db.Order("platform").Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return entries, nil
}

// SearchEntries matches the term against platform, username and description.
func (s *passwordService) SearchEntries(term string) ([]models.PasswordEntry, error) {
	pattern := "%" + term + "%"
	var entries []models.PasswordEntry
	if err := s.db.
		Where("platform LIKE ? OR username LIKE ? OR description LIKE ?", pattern, pattern, pattern).
		Order("platform").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return entries, nil
}

// UpdateEntry replaces a credential's fields.
func (s *passwordService) UpdateEntry(entryID uint, platform, username, password, description string) (*models.PasswordEntry, error) {
	if strings.TrimSpace(platform) == "" || strings.TrimSpace(password) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "platform and password are required")
	}

	var entry models.PasswordEntry
	if err := s.db.First(&entry, entryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPasswordNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	updates := map[string]interface{}{
		"platform":    platform,
		"username":    username,
		"password":    password,
		"description": description,
	}
	if err := s.db.Model(&entry).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return &entry, nil
}

// DeleteEntry removes a single credential record.
func (s *passwordService) DeleteEntry(entryID uint) error {
	result := s.db.Delete(&models.PasswordEntry{}, entryID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrPasswordNotFound
	}
	return nil
}

// DeleteAllEntries wipes the whole table. Admin only, used when rotating
// everything after an employee leaves.
func (s *passwordService) DeleteAllEntries() error {
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.PasswordEntry{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return nil
}
