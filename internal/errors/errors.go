package errors

import (
	"errors"
	"fmt"

	"puckval/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Predefined error codes
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeSchemaError      = "SCHEMA_ERROR"
	CodeMissingAttribute = "MISSING_ATTRIBUTE"
	CodeEmptyCategorySet = "EMPTY_CATEGORY_SET"
	CodeNotFound         = "NOT_FOUND"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeExternalService  = "EXTERNAL_SERVICE_ERROR"
	CodeInvalidInput     = "INVALID_INPUT"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code:    CodeExternalService,
		Message: fmt.Sprintf("%s service error", service),
		Cause:   cause,
	}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// FromDomain maps domain sentinel errors onto transport-facing codes so
// handlers can translate them uniformly.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, core.ErrSchema):
		return &AppError{Code: CodeSchemaError, Message: err.Error(), Cause: err}
	case errors.Is(err, core.ErrMissingAttribute):
		return &AppError{Code: CodeMissingAttribute, Message: err.Error(), Cause: err}
	case errors.Is(err, core.ErrEmptyCategorySet):
		return &AppError{Code: CodeEmptyCategorySet, Message: err.Error(), Cause: err}
	case errors.Is(err, core.ErrUnknownPolicy):
		return &AppError{Code: CodeInvalidInput, Message: err.Error(), Cause: err}
	case errors.Is(err, core.ErrNotFound):
		return &AppError{Code: CodeNotFound, Message: err.Error(), Cause: err}
	case errors.Is(err, core.ErrNoData):
		return &AppError{Code: CodeExternalService, Message: err.Error(), Cause: err}
	default:
		return &AppError{Code: CodeInternalError, Message: err.Error(), Cause: err}
	}
}
