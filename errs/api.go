package errs

import (
	"errors"
	"fmt"
	"net/http"
)

type ApiErr struct {
	StatusCode int
	err        error
	Details    string // Additional details about the error
	Field      string // Field that caused the error (for validation errors)
	Cause      error  // The underlying cause of the error
}

func NewApiErr(statusCode int, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		err:        errors.New(message),
	}
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		if apiErr, ok := e.Cause.(*ApiErr); ok {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

// Common error constructors with appropriate HTTP status codes
func NewNotFoundApiErr(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusNotFound, err: errors.New(message)}
}

func NewBadRequestError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusBadRequest, err: errors.New(message)}
}

func NewUnauthorizedError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusUnauthorized, err: errors.New(message)}
}

func NewInternalError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusInternalServerError, err: errors.New(message)}
}

// FromCoreError maps the core error kinds onto HTTP-layer errors so handlers
// can pass anything a service returns straight to the responder. Validation
// messages travel in Details and are surfaced verbatim.
func FromCoreError(err error) *ApiErr {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return &ApiErr{
			StatusCode: http.StatusUnprocessableEntity,
			err:        ErrValidation,
			Details:    vErr.Error(),
			Cause:      vErr,
		}
	}

	switch {
	case IsNotFound(err), IsTemplateNotFound(err):
		return &ApiErr{StatusCode: http.StatusNotFound, err: err}
	default:
		return &ApiErr{StatusCode: http.StatusInternalServerError, err: err}
	}
}

// NewStorageError wraps a persistence failure with context about the operation
func NewStorageError(operation, entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStorage,
		Details:    fmt.Sprintf("failed to %s %s", operation, entity),
		Cause:      cause,
	}
}
