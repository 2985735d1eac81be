package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "defter/internal/errors"
	"defter/internal/models"
)

// importService tracks inbound product shipments through customs.
type importService struct {
	db *gorm.DB
}

// NewImportService creates a new ImportServicer.
func NewImportService(db *gorm.DB) ImportServicer {
	return &importService{db: db}
}

// CreateShipment registers a new shipment. Status defaults to the customs
// stage when not supplied.
func (s *importService) CreateShipment(productName string, quantity int, date time.Time, status, subStatus, notes string) (*models.ImportShipment, error) {
	if strings.TrimSpace(productName) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "product name is required")
	}
	if quantity <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be positive")
	}
	if status == "" {
		status = models.ImportStatusCustoms
	}
	if date.IsZero() {
		date = time.Now()
	}

	shipment := &models.ImportShipment{
		ProductName: productName,
		Quantity:    quantity,
		Date:        truncateToDay(date),
		Status:      status,
		SubStatus:   subStatus,
		Notes:       notes,
	}
	if err := s.db.Create(shipment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return shipment, nil
}

// GetShipments returns all shipments, newest first.
func (s *importService) GetShipments() ([]models.ImportShipment, error) {
	var shipments []models.ImportShipment
	if err := s.db.Order("date DESC, id DESC").Find(&shipments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return shipments, nil
}

// UpdateShipment applies a partial update to a shipment.
func (s *importService) UpdateShipment(shipmentID uint, fields ImportUpdateFields) (*models.ImportShipment, error) {
	var shipment models.ImportShipment
	if err := s.db.First(&shipment, shipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrImportNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	updates := make(map[string]interface{})
	if fields.ProductName != nil {
		if strings.TrimSpace(*fields.ProductName) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "product name cannot be empty")
		}
		updates["product_name"] = *fields.ProductName
	}
	if fields.Quantity != nil {
		if *fields.Quantity <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be positive")
		}
		updates["quantity"] = *fields.Quantity
	}
	if fields.Date != nil {
		updates["date"] = truncateToDay(*fields.Date)
	}
	if fields.Status != nil {
		updates["status"] = *fields.Status
	}
	if fields.SubStatus != nil {
		updates["sub_status"] = *fields.SubStatus
	}
	if fields.Notes != nil {
		updates["notes"] = *fields.Notes
	}

	if len(updates) == 0 {
		return &shipment, nil
	}
	if err := s.db.Model(&shipment).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return &shipment, nil
}

// DeleteShipment removes a shipment record.
func (s *importService) DeleteShipment(shipmentID uint) error {
	result := s.db.Delete(&models.ImportShipment{}, shipmentID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrImportNotFound
	}
	return nil
}
