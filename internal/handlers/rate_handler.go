package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"defter/internal/rates"
)

// RateHandler serves the current USD/TRY exchange rate.
type RateHandler struct {
	fetcher *rates.Fetcher
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(fetcher *rates.Fetcher) *RateHandler {
	return &RateHandler{fetcher: fetcher}
}

// RateResponse carries the rate and whether it is live or a stale fallback.
type RateResponse struct {
	USDTRY string `json:"usd_try"`
	Live   bool   `json:"live"`
}

// GetRate returns the current USD/TRY rate
// @Summary     Current exchange rate
// @Description Get the current USD/TRY rate; falls back to the last known value when the upstream source is unreachable
// @Tags        rates
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} RateResponse "Current rate"
// @Router      /rates/usd-try [get]
func (h *RateHandler) GetRate(c *gin.Context) {
	rate, live := h.fetcher.USDTRY(c.Request.Context())
	c.JSON(http.StatusOK, RateResponse{
		USDTRY: rate.String(),
		Live:   live,
	})
}
