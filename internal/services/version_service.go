package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "defter/internal/errors"
	"defter/internal/models"
)

// versionService exposes the desktop client's self-update channel.
type versionService struct {
	db *gorm.DB
}

// NewVersionService creates a new VersionServicer.
func NewVersionService(db *gorm.DB) VersionServicer {
	return &versionService{db: db}
}

// Latest returns the most recently published release.
func (s *versionService) Latest() (*models.AppVersion, error) {
	var release models.AppVersion
	if err := s.db.Order("created_at DESC, id DESC").First(&release).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVersionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return &release, nil
}

// Publish records a new client release.
func (s *versionService) Publish(version, downloadURL, notes string, mandatory bool) (*models.AppVersion, error) {
	if strings.TrimSpace(version) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "version is required")
	}

	release := &models.AppVersion{
		Version:     version,
		DownloadURL: downloadURL,
		Notes:       notes,
		Mandatory:   mandatory,
	}
	if err := s.db.Create(release).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return release, nil
}
