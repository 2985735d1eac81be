package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "defter/internal/errors"
	"defter/internal/models"
)

// orderService handles daily orders and the stock movements they cause.
type orderService struct {
	db *gorm.DB
}

// NewOrderService creates a new OrderServicer.
func NewOrderService(db *gorm.DB) OrderServicer {
	return &orderService{db: db}
}

// PlaceOrder inserts an order and decrements the linked stock item inside one
// database transaction. The bookable quantity always moves; real stock moves
// only for real orders. Both are clamped at zero. Ordering more than the
// bookable stock fails unless the caller set AllowOversell.
func (s *orderService) PlaceOrder(input OrderInput) (*models.DailyOrder, error) {
	if strings.TrimSpace(input.ProductCode) == "" ||
		strings.TrimSpace(input.CustomerName) == "" ||
		strings.TrimSpace(input.ProductName) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "product code, customer name and product name are required")
	}
	if input.Quantity <= 0 || !input.UnitPrice.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity and unit price must be greater than zero")
	}

	orderDate := time.Now()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	var order *models.DailyOrder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.StockItem
		if err := tx.Where("product_code = ?", input.ProductCode).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrStockItemNotFound
			}
			return apperrors.Wrap(apperrors.ErrPersistence, err)
		}

		if input.Quantity > item.Quantity && !input.AllowOversell {
			return apperrors.WithMessage(apperrors.ErrInsufficientStock,
				"not enough stock for this order, available: "+strconv.Itoa(item.Quantity))
		}

		updates := map[string]interface{}{
			"quantity": clampZero(item.Quantity - input.Quantity),
		}
		if input.IsRealOrder {
			updates["real_stock"] = clampZero(item.RealStock - input.Quantity)
		}
		if err := tx.Model(&item).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrPersistence, err)
		}

		order = &models.DailyOrder{
			ProductCode:  input.ProductCode,
			CustomerName: input.CustomerName,
			ProductName:  input.ProductName,
			Quantity:     input.Quantity,
			UnitPrice:    input.UnitPrice,
			TotalAmount:  input.UnitPrice.Mul(decimal.NewFromInt(int64(input.Quantity))),
			OrderDate:    truncateToDay(orderDate),
			IsRealOrder:  input.IsRealOrder,
		}
		if err := tx.Create(order).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// GetOrders returns orders, optionally restricted to one calendar day.
func (s *orderService) GetOrders(orderDate *time.Time) ([]models.DailyOrder, error) {
	q := s.db.Model(&models.DailyOrder{})
	if orderDate != nil {
		q = q.Where("order_date = ?", truncateToDay(*orderDate))
	}

	var orders []models.DailyOrder
	if err := q.Order("id DESC").Find(&orders).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return orders, nil
}

// SearchOrders matches the term against customer name, product name and
// product code, optionally within one calendar day.
func (s *orderService) SearchOrders(term string, orderDate *time.Time) ([]models.DailyOrder, error) {
	pattern := "%" + term + "%"
	q := s.db.Model(&models.DailyOrder{}).
		Where("customer_name LIKE ? OR product_name LIKE ? OR product_code LIKE ?", pattern, pattern, pattern)
	if orderDate != nil {
		q = q.Where("order_date = ?", truncateToDay(*orderDate))
	}

	var orders []models.DailyOrder
	if err := q.Order("id DESC").Find(&orders).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return orders, nil
}

// UpdateOrder applies a partial update. The total amount is recomputed when
// quantity or unit price changes. Stock is not re-adjusted on update; the
// client edits stock explicitly when it corrects an order.
func (s *orderService) UpdateOrder(orderID uint, fields OrderUpdateFields) (*models.DailyOrder, error) {
	var order models.DailyOrder
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	updates := make(map[string]interface{})
	if fields.CustomerName != nil && *fields.CustomerName != "" {
		updates["customer_name"] = *fields.CustomerName
	}
	if fields.ProductName != nil && *fields.ProductName != "" {
		updates["product_name"] = *fields.ProductName
	}
	if fields.OrderDate != nil {
		updates["order_date"] = truncateToDay(*fields.OrderDate)
	}

	if fields.Quantity != nil || fields.UnitPrice != nil {
		quantity := order.Quantity
		if fields.Quantity != nil {
			if *fields.Quantity <= 0 {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be greater than zero")
			}
			quantity = *fields.Quantity
			updates["quantity"] = quantity
		}
		unitPrice := order.UnitPrice
		if fields.UnitPrice != nil {
			if !fields.UnitPrice.IsPositive() {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unit price must be greater than zero")
			}
			unitPrice = *fields.UnitPrice
			updates["unit_price"] = unitPrice
		}
		updates["total_amount"] = unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	}

	if len(updates) > 0 {
		if err := s.db.Model(&order).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
		}
		if err := s.db.First(&order, order.ID).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
		}
	}

	return &order, nil
}

// DeleteOrder removes an order permanently. Stock is not restored; the
// client restocks explicitly when a delete means a cancellation.
func (s *orderService) DeleteOrder(orderID uint) error {
	result := s.db.Delete(&models.DailyOrder{}, orderID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrOrderNotFound
	}
	return nil
}

// Summary returns the order count and amount total, optionally for one day.
func (s *orderService) Summary(orderDate *time.Time) (*OrderSummary, error) {
	orders, err := s.GetOrders(orderDate)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, order := range orders {
		total = total.Add(order.TotalAmount)
	}

	return &OrderSummary{
		TotalOrders: len(orders),
		TotalAmount: total,
	}, nil
}
