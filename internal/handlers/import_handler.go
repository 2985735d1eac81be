package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "defter/internal/errors"
	"defter/internal/services"
)

// ImportHandler handles import-shipment requests.
type ImportHandler struct {
	importService services.ImportServicer
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService services.ImportServicer) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// CreateShipmentRequest represents the payload for registering a shipment.
type CreateShipmentRequest struct {
	ProductName string  `json:"product_name" binding:"required,max=200"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	Date        *string `json:"date"`
	Status      string  `json:"status" binding:"max=100"`
	SubStatus   string  `json:"sub_status" binding:"max=100"`
	Notes       string  `json:"notes" binding:"max=500"`
}

// UpdateShipmentRequest represents a partial shipment update.
type UpdateShipmentRequest struct {
	ProductName *string `json:"product_name" binding:"omitempty,max=200"`
	Quantity    *int    `json:"quantity"`
	Date        *string `json:"date"`
	Status      *string `json:"status" binding:"omitempty,max=100"`
	SubStatus   *string `json:"sub_status" binding:"omitempty,max=100"`
	Notes       *string `json:"notes" binding:"omitempty,max=500"`
}

// CreateShipment registers an inbound shipment
// @Summary     Create an import shipment
// @Description Register an inbound shipment; status defaults to the customs stage
// @Tags        imports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateShipmentRequest true "Shipment details"
// @Success     201 {object} map[string]interface{} "Shipment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /imports [post]
func (h *ImportHandler) CreateShipment(c *gin.Context) {
	var req CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date := time.Now()
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format, use RFC3339 or YYYY-MM-DD"))
			return
		}
		date = parsed
	}

	shipment, err := h.importService.CreateShipment(req.ProductName, req.Quantity, date, req.Status, req.SubStatus, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"shipment": shipment})
}

// GetShipments lists shipments
// @Summary     List import shipments
// @Description List every tracked shipment, newest first
// @Tags        imports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Shipments"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /imports [get]
func (h *ImportHandler) GetShipments(c *gin.Context) {
	shipments, err := h.importService.GetShipments()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shipments": shipments})
}

// UpdateShipment applies a partial update
// @Summary     Update an import shipment
// @Description Update a shipment's fields, typically its customs status
// @Tags        imports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Shipment ID"
// @Param       request body UpdateShipmentRequest true "Fields to change"
// @Success     200 {object} map[string]interface{} "Updated shipment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Shipment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /imports/{id} [put]
func (h *ImportHandler) UpdateShipment(c *gin.Context) {
	shipmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.ImportUpdateFields{
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Status:      req.Status,
		SubStatus:   req.SubStatus,
		Notes:       req.Notes,
	}
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format, use RFC3339 or YYYY-MM-DD"))
			return
		}
		fields.Date = &parsed
	}

	shipment, err := h.importService.UpdateShipment(shipmentID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shipment": shipment})
}

// DeleteShipment removes a shipment
// @Summary     Delete an import shipment
// @Description Delete a shipment record permanently
// @Tags        imports
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Shipment ID"
// @Success     200 {object} MessageResponse "Shipment deleted"
// @Failure     400 {object} ErrorResponse "Invalid shipment ID"
// @Failure     404 {object} ErrorResponse "Shipment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /imports/{id} [delete]
func (h *ImportHandler) DeleteShipment(c *gin.Context) {
	shipmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.importService.DeleteShipment(shipmentID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Import shipment deleted successfully"})
}
