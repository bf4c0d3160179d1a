package domain

import "errors"

// Input and configuration errors. Callers match them with errors.Is; the
// engine wraps them with the offending value.
var (
	ErrInvalidIncome    = errors.New("invalid income")
	ErrInvalidTax       = errors.New("invalid tax amount")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidSlabTable = errors.New("invalid slab table")
	ErrInvalidRules     = errors.New("invalid tax rules")
)

// ErrorCode maps an error to the stable code reported by collaborators.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidIncome):
		return "INVALID_INCOME"
	case errors.Is(err, ErrInvalidTax):
		return "INVALID_TAX"
	case errors.Is(err, ErrInvalidCategory):
		return "INVALID_CATEGORY"
	case errors.Is(err, ErrInvalidSlabTable):
		return "INVALID_SLAB_TABLE"
	case errors.Is(err, ErrInvalidRules):
		return "INVALID_RULES"
	default:
		return "INTERNAL_ERROR"
	}
}
