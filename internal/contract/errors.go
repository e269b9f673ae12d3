package contract

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrNotFound   ErrorCode = "NOT_FOUND"
	ErrValidation ErrorCode = "VALIDATION_ERROR"
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
)

// PlanError is the structured failure returned by every planning operation.
// Fields lists per-field messages for validation failures.
type PlanError struct {
	Code    ErrorCode         `json:"code" yaml:"code"`
	Message string            `json:"message" yaml:"message"`
	Fields  map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func NotFound(format string, args ...any) *PlanError {
	return &PlanError{Code: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func Invalid(format string, args ...any) *PlanError {
	return &PlanError{Code: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// Internal hides the underlying cause from the caller.
func Internal(operation string) *PlanError {
	return &PlanError{Code: ErrInternal, Message: operation + " failed unexpectedly"}
}

// CodeOf extracts the error code, or "" when err is not a *PlanError.
func CodeOf(err error) ErrorCode {
	var pe *PlanError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
