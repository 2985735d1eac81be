package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "defter/internal/errors"
	"defter/internal/models"
	"defter/internal/services"
)

// LedgerHandler serves the per-account ledger pages and the dashboard.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

func parseLedgerFilter(c *gin.Context) (services.LedgerFilter, error) {
	var filter services.LedgerFilter

	if v := c.Query("from_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.FromDate = &t
	}

	if v := c.Query("to_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.ToDate = &t
	}

	if v := c.Query("type"); v != "" {
		txType := models.TransactionType(v)
		switch txType {
		case models.TransactionTypeIncome, models.TransactionTypeExpense:
			filter.Type = &txType
		default:
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be income or expense")
		}
	}

	return filter, nil
}

// GetLedger loads one account's ledger page
// @Summary     Load a ledger
// @Description Load one account's transactions with income, expense and balance totals
// @Tags        ledgers
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Param       from_date query string false "Start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date query string false "End date (RFC3339 or YYYY-MM-DD)"
// @Param       type query string false "income or expense"
// @Success     200 {object} services.LedgerView "Ledger page"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ledgers/{id} [get]
func (h *LedgerHandler) GetLedger(c *gin.Context) {
	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parseLedgerFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	view, err := h.ledgerService.Load(accountID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// DeleteLedgerTransaction removes one entry from a ledger page
// @Summary     Delete a ledger entry
// @Description Delete one transaction from an account's ledger and return the refreshed page
// @Tags        ledgers
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Param       txid path int true "Transaction ID"
// @Param       hard query bool false "Permanently remove the row"
// @Param       from_date query string false "Start date for the refreshed page"
// @Param       to_date query string false "End date for the refreshed page"
// @Success     200 {object} services.LedgerView "Refreshed ledger page"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account or transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ledgers/{id}/transactions/{txid} [delete]
func (h *LedgerHandler) DeleteLedgerTransaction(c *gin.Context) {
	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "txid")
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parseLedgerFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	soft := c.Query("hard") != "true"
	view, err := h.ledgerService.DeleteTransaction(accountID, transactionID, soft, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetDashboard returns the cross-account grand total
// @Summary     Dashboard totals
// @Description Get the last-known balance per account and their grand total
// @Tags        ledgers
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ledger.Snapshot "Dashboard snapshot"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard [get]
func (h *LedgerHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledgerService.Dashboard())
}
