package models

// Contact is a phone-book entry.
type Contact struct {
	Base
	Name        string `gorm:"not null" json:"name"`
	Phone       string `gorm:"not null" json:"phone"`
	Description string `json:"description"`
}
