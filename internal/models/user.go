package models

// Role gates which pages and actions a user may reach.
type Role string

const (
	// RoleAdmin has full access, including the ledger pages.
	RoleAdmin Role = "admin"
	// RolePersonnel can read and write the operational pages
	// (stock, orders, imports, contacts) but not the ledgers.
	RolePersonnel Role = "personnel"
	// RoleObserver sees the same pages as personnel, read-only.
	RoleObserver Role = "observer"
)

// User represents an application login.
type User struct {
	Base
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"not null;default:'observer'" json:"role"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`
}
