package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "defter/internal/errors"
	"defter/internal/services"
)

// VersionHandler serves the desktop client's self-update channel.
type VersionHandler struct {
	versionService services.VersionServicer
}

// NewVersionHandler creates a new VersionHandler.
func NewVersionHandler(versionService services.VersionServicer) *VersionHandler {
	return &VersionHandler{versionService: versionService}
}

// PublishVersionRequest represents the payload for publishing a release.
type PublishVersionRequest struct {
	Version     string `json:"version" binding:"required,max=50"`
	DownloadURL string `json:"download_url" binding:"omitempty,url,max=500"`
	Notes       string `json:"notes" binding:"max=2000"`
	Mandatory   bool   `json:"mandatory"`
}

// GetLatestVersion returns the newest published release
// @Summary     Latest client version
// @Description Get the newest published release; clients compare it with their own version
// @Tags        versions
// @Produce     json
// @Success     200 {object} map[string]interface{} "Latest version"
// @Failure     404 {object} ErrorResponse "Nothing published yet"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /version/latest [get]
func (h *VersionHandler) GetLatestVersion(c *gin.Context) {
	release, err := h.versionService.Latest()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"version": release})
}

// PublishVersion records a new release
// @Summary     Publish a client version
// @Description Publish a new desktop client release (admin only)
// @Tags        versions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PublishVersionRequest true "Release details"
// @Success     201 {object} map[string]interface{} "Version published"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /version [post]
func (h *VersionHandler) PublishVersion(c *gin.Context) {
	var req PublishVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	release, err := h.versionService.Publish(req.Version, req.DownloadURL, req.Notes, req.Mandatory)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"version": release})
}
