package models

import "github.com/shopspring/decimal"

// StockItem is one product in the inventory. Quantity is the bookable stock
// shown to order entry; RealStock is the physically counted stock and only
// moves for real orders.
type StockItem struct {
	Base
	ProductCode string          `gorm:"uniqueIndex;not null" json:"product_code"`
	ProductName string          `gorm:"not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	RealStock   int             `gorm:"not null" json:"real_stock"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
}
