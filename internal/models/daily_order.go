package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyOrder is a sales order placed against a stock item. TotalAmount is
// derived from quantity and unit price at write time. Orders marked
// IsRealOrder decrement the item's real stock as well as its bookable stock;
// demo orders only decrement the bookable stock.
type DailyOrder struct {
	Base
	ProductCode  string          `gorm:"not null;index" json:"product_code"`
	CustomerName string          `gorm:"not null" json:"customer_name"`
	ProductName  string          `gorm:"not null" json:"product_name"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_amount"`
	OrderDate    time.Time       `gorm:"type:date;not null;index" json:"order_date"`
	IsRealOrder  bool            `gorm:"not null;default:true" json:"is_real_order"`
}
