package models

// Account is a registered cash account. Every transaction belongs to exactly
// one account; the account name is what the ledger pages and the dashboard
// display. Accounts are registered entities rather than free-form tags so a
// typo cannot silently create an orphaned balance.
type Account struct {
	Base
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`

	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}

// DefaultAccountNames are the accounts seeded at first startup, matching the
// cards on the dashboard.
var DefaultAccountNames = []string{
	"CASH",
	"Tonboo Ziraat",
	"Tonboo Garanti",
	"Iwant Ziraat",
	"Iwant Garanti",
	"Volkan Amount",
}
