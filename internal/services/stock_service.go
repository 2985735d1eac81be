package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "defter/internal/errors"
	"defter/internal/models"
)

// stockService handles inventory business logic.
type stockService struct {
	db *gorm.DB
}

// NewStockService creates a new StockServicer.
func NewStockService(db *gorm.DB) StockServicer {
	return &stockService{db: db}
}

// CreateItem registers a new product. When realStock is not given it starts
// equal to the bookable quantity.
func (s *stockService) CreateItem(productCode, productName string, quantity int, unitPrice decimal.Decimal, realStock *int) (*models.StockItem, error) {
	if strings.TrimSpace(productCode) == "" || strings.TrimSpace(productName) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "product code and name are required")
	}
	if quantity < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity cannot be negative")
	}
	if !unitPrice.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unit price must be greater than zero")
	}

	var count int64
	if err := s.db.Model(&models.StockItem{}).Where("product_code = ?", productCode).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateProductCode
	}

	real := quantity
	if realStock != nil {
		if *realStock < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "real stock cannot be negative")
		}
		real = *realStock
	}

	item := &models.StockItem{
		ProductCode: productCode,
		ProductName: productName,
		Quantity:    quantity,
		RealStock:   real,
		UnitPrice:   unitPrice,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return item, nil
}

// GetItems returns the whole inventory ordered by product name.
func (s *stockService) GetItems() ([]models.StockItem, error) {
	var items []models.StockItem
	if err := s.db.Order("product_name").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return items, nil
}

// GetItemByCode retrieves a stock item by its product code.
func (s *stockService) GetItemByCode(productCode string) (*models.StockItem, error) {
	var item models.StockItem
	if err := s.db.Where("product_code = ?", productCode).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStockItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return &item, nil
}

// UpdateItem applies a partial update to a stock item. Quantities are clamped
// at zero rather than rejected; a negative unit price is rejected.
func (s *stockService) UpdateItem(itemID uint, fields StockUpdateFields) (*models.StockItem, error) {
	var item models.StockItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStockItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	updates := make(map[string]interface{})
	if fields.ProductName != nil && *fields.ProductName != "" {
		updates["product_name"] = *fields.ProductName
	}
	if fields.Quantity != nil {
		updates["quantity"] = clampZero(*fields.Quantity)
	}
	if fields.RealStock != nil {
		updates["real_stock"] = clampZero(*fields.RealStock)
	}
	if fields.UnitPrice != nil {
		if !fields.UnitPrice.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unit price must be greater than zero")
		}
		updates["unit_price"] = *fields.UnitPrice
	}

	if len(updates) > 0 {
		if err := s.db.Model(&item).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
		}
		if err := s.db.First(&item, item.ID).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
		}
	}

	return &item, nil
}

// DeleteItem removes a stock item permanently.
func (s *stockService) DeleteItem(itemID uint) error {
	result := s.db.Delete(&models.StockItem{}, itemID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrStockItemNotFound
	}
	return nil
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
