package service

import (
	"fmt"

	"github.com/Slavchick12/api-yamdb/web/entity"
)

// ValidationError carries per-field messages for a 400 response.
type ValidationError struct {
	Fields entity.FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", map[string][]string(e.Fields))
}

func newValidationError(field, msg string) *ValidationError {
	fields := entity.FieldErrors{}
	fields.Add(field, msg)
	return &ValidationError{Fields: fields}
}

// NotFoundError marks a missing target or parent resource.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ConflictError surfaces a storage uniqueness violation that slipped past
// validation, typically a concurrent duplicate create.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return "conflict on " + e.Field
}
