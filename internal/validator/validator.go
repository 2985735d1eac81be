// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("currency", validateCurrency)
		_ = v.RegisterValidation("role", validateRole)
		_ = v.RegisterValidation("phone", validatePhone)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateCurrency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "TRY", "USD", "EUR":
		return true
	}
	return false
}

func validateRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "personnel", "observer":
		return true
	}
	return false
}

// validatePhone accepts a number with at least 10 digits once spaces, dashes
// and parentheses are stripped, matching what the contacts page accepts.
func validatePhone(fl validator.FieldLevel) bool {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '+':
			return -1
		}
		return r
	}, fl.Field().String())

	if len(cleaned) < 10 {
		return false
	}
	for _, r := range cleaned {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
