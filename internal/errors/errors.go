// Package errors provides custom error types for the Defter API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrReadOnly           = &AppError{Code: "READ_ONLY", Message: "This role has read-only access", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrPersistence    = &AppError{Code: "PERSISTENCE_ERROR", Message: "The data store rejected the operation", StatusCode: http.StatusInternalServerError}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "A user with this username already exists", StatusCode: http.StatusConflict}
)

// Ledger errors.
var (
	ErrAccountNotFound     = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrDuplicateAccount    = &AppError{Code: "DUPLICATE_ACCOUNT", Message: "An account with this name already exists", StatusCode: http.StatusConflict}
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidRate         = &AppError{Code: "INVALID_RATE", Message: "Foreign-currency transaction requires a positive exchange rate", StatusCode: http.StatusBadRequest}
)

// Stock and order errors.
var (
	ErrStockItemNotFound    = &AppError{Code: "STOCK_ITEM_NOT_FOUND", Message: "Stock item not found", StatusCode: http.StatusNotFound}
	ErrDuplicateProductCode = &AppError{Code: "DUPLICATE_PRODUCT_CODE", Message: "A stock item with this product code already exists", StatusCode: http.StatusConflict}
	ErrInsufficientStock    = &AppError{Code: "INSUFFICIENT_STOCK", Message: "Not enough stock for this order", StatusCode: http.StatusConflict}
	ErrOrderNotFound        = &AppError{Code: "ORDER_NOT_FOUND", Message: "Order not found", StatusCode: http.StatusNotFound}
)

// Reference-data errors.
var (
	ErrContactNotFound  = &AppError{Code: "CONTACT_NOT_FOUND", Message: "Contact not found", StatusCode: http.StatusNotFound}
	ErrPasswordNotFound = &AppError{Code: "PASSWORD_NOT_FOUND", Message: "Password entry not found", StatusCode: http.StatusNotFound}
	ErrImportNotFound   = &AppError{Code: "IMPORT_NOT_FOUND", Message: "Import shipment not found", StatusCode: http.StatusNotFound}
	ErrVersionNotFound  = &AppError{Code: "VERSION_NOT_FOUND", Message: "No published version", StatusCode: http.StatusNotFound}
)
