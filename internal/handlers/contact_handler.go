package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "defter/internal/errors"
	"defter/internal/services"
)

// ContactHandler handles phone-book requests.
type ContactHandler struct {
	contactService services.ContactServicer
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService services.ContactServicer) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRequest represents the payload for creating or replacing a contact.
type ContactRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Phone       string `json:"phone" binding:"required,phone"`
	Description string `json:"description" binding:"max=500"`
}

// CreateContact adds a phone-book entry
// @Summary     Create a contact
// @Description Add a new contact to the shared phone book
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ContactRequest true "Contact details"
// @Success     201 {object} map[string]interface{} "Contact created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts [post]
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	contact, err := h.contactService.CreateContact(req.Name, req.Phone, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"contact": contact})
}

// GetContacts lists or searches the phone book
// @Summary     List contacts
// @Description List all contacts, or search them by name, phone or description
// @Tags        contacts
// @Produce     json
// @Security    BearerAuth
// @Param       search query string false "Search term"
// @Success     200 {object} map[string]interface{} "Contacts"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts [get]
func (h *ContactHandler) GetContacts(c *gin.Context) {
	var (
		contacts interface{}
		err      error
	)
	if term := c.Query("search"); term != "" {
		contacts, err = h.contactService.SearchContacts(term)
	} else {
		contacts, err = h.contactService.GetContacts()
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

// UpdateContact replaces a contact's fields
// @Summary     Update a contact
// @Description Replace a contact's name, phone and description
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Contact ID"
// @Param       request body ContactRequest true "New contact details"
// @Success     200 {object} map[string]interface{} "Updated contact"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Contact not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts/{id} [put]
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	contactID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	contact, err := h.contactService.UpdateContact(contactID, req.Name, req.Phone, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

// DeleteContact removes a contact
// @Summary     Delete a contact
// @Description Delete a contact permanently
// @Tags        contacts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Contact ID"
// @Success     200 {object} MessageResponse "Contact deleted"
// @Failure     400 {object} ErrorResponse "Invalid contact ID"
// @Failure     404 {object} ErrorResponse "Contact not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	contactID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.contactService.DeleteContact(contactID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}
