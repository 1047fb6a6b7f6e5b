package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Common error sentinel values
var (
	ErrNotFound         = errors.New("not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrValidation       = errors.New("validation failed")
	ErrStorage          = errors.New("storage failure")
)

// ValidationError carries one or more human-readable rule violations. Callers
// at the boundary (form, HTTP handler) surface Errors verbatim to the user.
type ValidationError struct {
	Errors []string
}

func NewValidationError(violations ...string) *ValidationError {
	return &ValidationError{Errors: violations}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError identifies an unknown record id on get/update/delete/duplicate
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// TemplateNotFoundError identifies an unknown template id on template-based creation
type TemplateNotFoundError struct {
	ID string
}

func NewTemplateNotFoundError(id string) *TemplateNotFoundError {
	return &TemplateNotFoundError{ID: id}
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %q not found", e.ID)
}

func (e *TemplateNotFoundError) Unwrap() error {
	return ErrTemplateNotFound
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsTemplateNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
