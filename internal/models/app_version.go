package models

// AppVersion is one published release of the desktop client. The client
// compares its own version against the newest row to decide whether to
// prompt for an update; the update download itself happens client-side.
type AppVersion struct {
	Base
	Version     string `gorm:"not null" json:"version"`
	DownloadURL string `json:"download_url"`
	Notes       string `json:"notes"`
	Mandatory   bool   `gorm:"not null;default:false" json:"mandatory"`
}

// TableName keeps the table name the desktop client already reads.
func (AppVersion) TableName() string { return "version_control" }
