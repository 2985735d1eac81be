package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "defter/internal/errors"
	"defter/internal/services"
)

// OrderHandler handles daily-order requests.
type OrderHandler struct {
	orderService services.OrderServicer
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService services.OrderServicer) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// PlaceOrderRequest represents the payload for placing an order.
type PlaceOrderRequest struct {
	ProductCode   string          `json:"product_code" binding:"required,max=100"`
	CustomerName  string          `json:"customer_name" binding:"required,max=200"`
	ProductName   string          `json:"product_name" binding:"required,max=200"`
	Quantity      int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice     decimal.Decimal `json:"unit_price" binding:"required"`
	OrderDate     *string         `json:"order_date"`
	IsRealOrder   bool            `json:"is_real_order"`
	AllowOversell bool            `json:"allow_oversell"`
}

// UpdateOrderRequest represents a partial order update.
type UpdateOrderRequest struct {
	CustomerName *string          `json:"customer_name" binding:"omitempty,max=200"`
	ProductName  *string          `json:"product_name" binding:"omitempty,max=200"`
	Quantity     *int             `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	OrderDate    *string          `json:"order_date"`
}

// parseOrderDate reads the optional order date query parameter.
func parseOrderDate(c *gin.Context) (*time.Time, error) {
	v := c.Query("date")
	if v == "" {
		return nil, nil
	}
	t, err := parseFlexibleTime(v)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format, use RFC3339 or YYYY-MM-DD")
	}
	return &t, nil
}

// PlaceOrder creates a new order and moves stock
// @Summary     Place an order
// @Description Place a daily order; bookable stock always moves, real stock only for real orders
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PlaceOrderRequest true "Order details"
// @Success     201 {object} map[string]interface{} "Order placed"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient stock"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.OrderInput{
		ProductCode:   req.ProductCode,
		CustomerName:  req.CustomerName,
		ProductName:   req.ProductName,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		IsRealOrder:   req.IsRealOrder,
		AllowOversell: req.AllowOversell,
	}
	if req.OrderDate != nil && *req.OrderDate != "" {
		parsed, parseErr := parseFlexibleTime(*req.OrderDate)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid order_date format, use RFC3339 or YYYY-MM-DD"))
			return
		}
		input.OrderDate = &parsed
	}

	order, err := h.orderService.PlaceOrder(input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetOrders lists orders
// @Summary     List orders
// @Description List orders, optionally restricted to one calendar day
// @Tags        orders
// @Produce     json
// @Security    BearerAuth
// @Param       date query string false "Calendar day (RFC3339 or YYYY-MM-DD)"
// @Param       search query string false "Substring of customer, product name or code"
// @Success     200 {object} map[string]interface{} "Orders"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders [get]
func (h *OrderHandler) GetOrders(c *gin.Context) {
	date, err := parseOrderDate(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var orders interface{}
	if term := c.Query("search"); term != "" {
		orders, err = h.orderService.SearchOrders(term, date)
	} else {
		orders, err = h.orderService.GetOrders(date)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderSummary returns the totals strip
// @Summary     Order summary
// @Description Get the order count and amount total, optionally for one day
// @Tags        orders
// @Produce     json
// @Security    BearerAuth
// @Param       date query string false "Calendar day (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} services.OrderSummary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders/summary [get]
func (h *OrderHandler) GetOrderSummary(c *gin.Context) {
	date, err := parseOrderDate(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.orderService.Summary(date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// UpdateOrder applies a partial update
// @Summary     Update an order
// @Description Update an order; the total is recomputed when quantity or unit price changes
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Order ID"
// @Param       request body UpdateOrderRequest true "Fields to change"
// @Success     200 {object} map[string]interface{} "Updated order"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Order not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	orderID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.OrderUpdateFields{
		CustomerName: req.CustomerName,
		ProductName:  req.ProductName,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
	}
	if req.OrderDate != nil && *req.OrderDate != "" {
		parsed, parseErr := parseFlexibleTime(*req.OrderDate)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid order_date format, use RFC3339 or YYYY-MM-DD"))
			return
		}
		fields.OrderDate = &parsed
	}

	order, err := h.orderService.UpdateOrder(orderID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// DeleteOrder removes an order
// @Summary     Delete an order
// @Description Delete an order permanently; stock is not restored
// @Tags        orders
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Order ID"
// @Success     200 {object} MessageResponse "Order deleted"
// @Failure     400 {object} ErrorResponse "Invalid order ID"
// @Failure     404 {object} ErrorResponse "Order not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	orderID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.orderService.DeleteOrder(orderID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
