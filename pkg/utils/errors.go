package utils

import "fmt"

// Error codes returned in API responses
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInvalidStat       = "INVALID_STAT"
	ErrCodeInvalidAdjustment = "INVALID_ADJUSTMENT"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code, message string, details ...string) *AppError {
	err := &AppError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// NotFoundError signals that a player, projection, scenario or team stat
// could not be loaded. The operation aborts with no partial writes.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

func NewNotFoundError(resource, keyFormat string, args ...interface{}) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Key:      fmt.Sprintf(keyFormat, args...),
	}
}

// InvalidStatError signals a statistic name that does not apply to the
// projection's position. Raised before any mutation occurs.
type InvalidStatError struct {
	Stat     string
	Position string
}

func (e *InvalidStatError) Error() string {
	return fmt.Sprintf("stat %q is not valid for position %s", e.Stat, e.Position)
}

// InvalidAdjustmentError signals an unknown adjustment metric or an
// out-of-range factor. Raised before any mutation occurs.
type InvalidAdjustmentError struct {
	Metric string
	Value  float64
	Reason string
}

func (e *InvalidAdjustmentError) Error() string {
	return fmt.Sprintf("invalid adjustment %q=%v: %s", e.Metric, e.Value, e.Reason)
}
