package validation

import (
	"fmt"
	"strings"

	"github.com/hverma/stock-tracker-backend/internal/apperrors"
)

// ValidateHolding checks the fields of a new or updated holding.
// Symbols must be non-empty; quantities must be positive.
func ValidateHolding(symbol string, quantity float64) error {
	if strings.TrimSpace(symbol) == "" {
		return fmt.Errorf("%w: symbol", apperrors.ErrMissingRequiredField)
	}
	return ValidateQuantity(quantity)
}

// ValidateQuantity checks that a holding quantity is positive.
func ValidateQuantity(quantity float64) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: got %v", apperrors.ErrInvalidQuantity, quantity)
	}
	return nil
}
