package errors

import (
	"errors"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

// Failure kinds surfaced by the ledger services. Lookups filter soft-deleted
// rows, so an already-deleted record surfaces as not found.
var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrForbidden           = errors.New("no permission for the requested record")
)

// ErrInvalidCategory marks a detail line referencing a category number that
// is not among the caller's own live categories.
var ErrInvalidCategory = NewValidationError("category number is not usable")
