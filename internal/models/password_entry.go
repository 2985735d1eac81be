package models

// PasswordEntry is a stored credential for an external platform.
type PasswordEntry struct {
	Base
	Platform    string `gorm:"not null" json:"platform"`
	Username    string `gorm:"not null" json:"username"`
	Password    string `gorm:"not null" json:"password"`
	Description string `json:"description"`
}

// TableName overrides the default pluralization.
func (PasswordEntry) TableName() string { return "passwords" }
