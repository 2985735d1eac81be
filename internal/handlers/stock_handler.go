package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "defter/internal/errors"
	"defter/internal/services"
)

// StockHandler handles inventory requests.
type StockHandler struct {
	stockService services.StockServicer
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService services.StockServicer) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// CreateStockItemRequest represents the payload for registering a product.
type CreateStockItemRequest struct {
	ProductCode string          `json:"product_code" binding:"required,max=100"`
	ProductName string          `json:"product_name" binding:"required,max=200"`
	Quantity    int             `json:"quantity" binding:"min=0"`
	RealStock   *int            `json:"real_stock"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdateStockItemRequest represents a partial stock item update.
type UpdateStockItemRequest struct {
	ProductName *string          `json:"product_name" binding:"omitempty,max=200"`
	Quantity    *int             `json:"quantity"`
	RealStock   *int             `json:"real_stock"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// CreateStockItem registers a new product
// @Summary     Create a stock item
// @Description Register a new product; real stock defaults to the bookable quantity
// @Tags        stock
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateStockItemRequest true "Product details"
// @Success     201 {object} map[string]interface{} "Stock item created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Product code already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stock [post]
func (h *StockHandler) CreateStockItem(c *gin.Context) {
	var req CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.stockService.CreateItem(req.ProductCode, req.ProductName, req.Quantity, req.UnitPrice, req.RealStock)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"stock_item": item})
}

// GetStockItems lists the inventory
// @Summary     List stock items
// @Description List the whole inventory ordered by product name
// @Tags        stock
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Stock items"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stock [get]
func (h *StockHandler) GetStockItems(c *gin.Context) {
	items, err := h.stockService.GetItems()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stock_items": items})
}

// GetStockItem retrieves one product by code
// @Summary     Get a stock item
// @Description Get a stock item by its product code
// @Tags        stock
// @Produce     json
// @Security    BearerAuth
// @Param       code path string true "Product code"
// @Success     200 {object} map[string]interface{} "Stock item"
// @Failure     404 {object} ErrorResponse "Stock item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stock/{code} [get]
func (h *StockHandler) GetStockItem(c *gin.Context) {
	item, err := h.stockService.GetItemByCode(c.Param("code"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stock_item": item})
}

// UpdateStockItem applies a partial update
// @Summary     Update a stock item
// @Description Update a stock item; negative quantities are clamped to zero
// @Tags        stock
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Stock item ID"
// @Param       request body UpdateStockItemRequest true "Fields to change"
// @Success     200 {object} map[string]interface{} "Updated stock item"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Stock item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stock/{id} [put]
func (h *StockHandler) UpdateStockItem(c *gin.Context) {
	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.stockService.UpdateItem(itemID, services.StockUpdateFields{
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		RealStock:   req.RealStock,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stock_item": item})
}

// DeleteStockItem removes a product
// @Summary     Delete a stock item
// @Description Delete a stock item permanently
// @Tags        stock
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Stock item ID"
// @Success     200 {object} MessageResponse "Stock item deleted"
// @Failure     400 {object} ErrorResponse "Invalid stock item ID"
// @Failure     404 {object} ErrorResponse "Stock item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stock/{id} [delete]
func (h *StockHandler) DeleteStockItem(c *gin.Context) {
	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.stockService.DeleteItem(itemID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stock item deleted successfully"})
}
