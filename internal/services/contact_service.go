package services

import (
	"errors"
	"strings"
	"unicode"

	"gorm.io/gorm"

	apperrors "defter/internal/errors"
	"defter/internal/models"
)

// contactService handles the contacts page.
type contactService struct {
	db *gorm.DB
}

// NewContactService creates a new ContactServicer.
func NewContactService(db *gorm.DB) ContactServicer {
	return &contactService{db: db}
}

func validateContact(name, phone string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(phone) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "name and phone are required")
	}

	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '+':
			return -1
		}
		return r
	}, phone)
	if len(cleaned) < 10 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "phone number must have at least 10 digits")
	}
	for _, r := range cleaned {
		if !unicode.IsDigit(r) {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "phone number may only contain digits and separators")
		}
	}
	return nil
}

// CreateContact validates and inserts a new contact.
func (s *contactService) CreateContact(name, phone, description string) (*models.Contact, error) {
	if err := validateContact(name, phone); err != nil {
		return nil, err
	}

	contact := &models.Contact{Name: name, Phone: phone, Description: description}
	if err := s.db.Create(contact).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return contact, nil
}

// GetContacts returns all contacts, newest first.
func (s *contactService) GetContacts() ([]models.Contact, error) {
	var contacts []models.Contact
	if err := s.db.Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return contacts, nil
}

// GetContactByID retrieves a contact by id.
func (s *contactService) GetContactByID(contactID uint) (*models.Contact, error) {
	var contact models.Contact
	if err := s.db.First(&contact, contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return &contact, nil
}

// SearchContacts matches the term against name, phone and description.
func (s *contactService) SearchContacts(term string) ([]models.Contact, error) {
	pattern := "%" + term + "%"
	var contacts []models.Contact
	if err := s.db.
		Where("name LIKE ? OR phone LIKE ? OR description LIKE ?", pattern, pattern, pattern).
		Order("name").
		Find(&contacts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return contacts, nil
}

// UpdateContact replaces a contact's fields.
func (s *contactService) UpdateContact(contactID uint, name, phone, description string) (*models.Contact, error) {
	if err := validateContact(name, phone); err != nil {
		return nil, err
	}

	contact, err := s.GetContactByID(contactID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":        name,
		"phone":       phone,
		"description": description,
	}
	if err := s.db.Model(contact).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return contact, nil
}

// DeleteContact removes a contact permanently.
func (s *contactService) DeleteContact(contactID uint) error {
	result := s.db.Delete(&models.Contact{}, contactID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrContactNotFound
	}
	return nil
}
