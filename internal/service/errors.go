package service

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all services. Handlers map these onto HTTP
// status codes; everything else surfaces as a 500.
var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrNotFound               = errors.New("not found")
	ErrValidation             = errors.New("validation failed")
	ErrUpstreamStorage        = errors.New("object storage operation failed")
)

// validationError wraps ErrValidation with a human-readable reason.
func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
