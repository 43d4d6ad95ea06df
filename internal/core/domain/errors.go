package domain

import "errors"

// ErrPetNotFound signals that the referenced id does not exist, whether it
// never did or was already deleted.
var ErrPetNotFound = errors.New("pet not found")

// FieldErrors maps a field name to the validation messages it failed with,
// in the shape the response envelope exposes under "errors".
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

func (fe FieldErrors) HasErrors() bool {
	return len(fe) > 0
}

// ValidationError carries a per-field error map out of the service layer.
// Callers branch on it with errors.As, keeping the failure modes of a write
// (validation, not found, storage) distinguishable.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}
