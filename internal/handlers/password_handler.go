package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "defter/internal/errors"
	"defter/internal/logger"
	"defter/internal/services"
)

// PasswordHandler handles stored-credential requests. Admin only.
type PasswordHandler struct {
	passwordService services.PasswordServicer
}

// NewPasswordHandler creates a new PasswordHandler.
func NewPasswordHandler(passwordService services.PasswordServicer) *PasswordHandler {
	return &PasswordHandler{passwordService: passwordService}
}

// PasswordEntryRequest represents the payload for creating or replacing a
// stored credential.
type PasswordEntryRequest struct {
	Platform    string `json:"platform" binding:"required,max=200"`
	Username    string `json:"username" binding:"required,max=200"`
	Password    string `json:"password" binding:"required,max=500"`
	Description string `json:"description" binding:"max=500"`
}

// CreatePasswordEntry stores a credential
// @Summary     Create a password entry
// @Description Store a credential for an external platform
// @Tags        passwords
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PasswordEntryRequest true "Credential details"
// @Success     201 {object} map[string]interface{} "Entry created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /passwords [post]
func (h *PasswordHandler) CreatePasswordEntry(c *gin.Context) {
	var req PasswordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.passwordService.CreateEntry(req.Platform, req.Username, req.Password, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// GetPasswordEntries lists or searches stored credentials
// @Summary     List password entries
// @Description List all stored credentials, or search them by platform, username or description
// @Tags        passwords
// @Produce     json
// @Security    BearerAuth
// @Param       search query string false "Search term"
// @Success     200 {object} map[string]interface{} "Entries"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /passwords [get]
func (h *PasswordHandler) GetPasswordEntries(c *gin.Context) {
	var (
		entries interface{}
		err     error
	)
	if term := c.Query("search"); term != "" {
		entries, err = h.passwordService.SearchEntries(term)
	} else {
		entries, err = h.passwordService.GetEntries()
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// UpdatePasswordEntry replaces a stored credential
// @Summary     Update a password entry
// @Description Replace a stored credential's fields
// @Tags        passwords
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Entry ID"
// @Param       request body PasswordEntryRequest true "New credential details"
// @Success     200 {object} map[string]interface{} "Updated entry"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /passwords/{id} [put]
func (h *PasswordHandler) UpdatePasswordEntry(c *gin.Context) {
	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PasswordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.passwordService.UpdateEntry(entryID, req.Platform, req.Username, req.Password, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// DeletePasswordEntry removes one stored credential
// @Summary     Delete a password entry
// @Description Delete one stored credential permanently
// @Tags        passwords
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Entry ID"
// @Success     200 {object} MessageResponse "Entry deleted"
// @Failure     400 {object} ErrorResponse "Invalid entry ID"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /passwords/{id} [delete]
func (h *PasswordHandler) DeletePasswordEntry(c *gin.Context) {
	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.passwordService.DeleteEntry(entryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password entry deleted successfully"})
}

// DeleteAllPasswordEntries wipes the credential store
// @Summary     Delete all password entries
// @Description Delete every stored credential, used when rotating everything at once
// @Tags        passwords
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "All entries deleted"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /passwords [delete]
func (h *PasswordHandler) DeleteAllPasswordEntries(c *gin.Context) {
	if err := h.passwordService.DeleteAllEntries(); err != nil {
		respondWithError(c, err)
		return
	}

	// Wiping the vault is unrecoverable, so record who did it.
	userID, _ := getUserID(c)
	role, _ := getRole(c)
	logger.Get().Warnw("password vault emptied",
		"user_id", userID,
		"role", role,
	)

	c.JSON(http.StatusOK, gin.H{"message": "All password entries deleted"})
}
