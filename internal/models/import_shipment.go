package models

import "time"

// Import shipment statuses used by the imports page. Status is free text so
// the client can extend the workflow without a schema change; these are the
// values it ships with.
const (
	ImportStatusCustoms   = "Gümrük Sürecinde"
	ImportStatusInTransit = "Yolda"
	ImportStatusArrived   = "Teslim Edildi"
)

// ImportShipment tracks one inbound product shipment through customs.
type ImportShipment struct {
	Base
	ProductName string    `gorm:"not null" json:"product_name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Date        time.Time `gorm:"type:date;not null" json:"date"`
	Status      string    `gorm:"not null" json:"status"`
	SubStatus   string    `json:"sub_status"`
	Notes       string    `json:"notes"`
}

// TableName overrides the default pluralization.
func (ImportShipment) TableName() string { return "imports" }
