package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/genops-api/internal/domain"
)

// Sentinel errors returned by the services. Callers check them with errors.Is;
// the API layer maps each one to a single HTTP status.
var (
	// ErrValidation indicates missing or malformed input. Maps to 400.
	ErrValidation = domain.ErrValidation

	// ErrConflict indicates a uniqueness violation, such as a taken username. Maps to 409.
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidCredentials is returned by login for both unknown users and wrong passwords. Maps to 401.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthenticated indicates a missing, malformed, forged or expired session token. Maps to 401.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrStorage indicates the backing store failed. Maps to 500.
	ErrStorage = errors.New("storage failure")
)

// ServiceError wraps a lower-level error with the service and operation that failed.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service failed to %s: %v", e.Service, e.Operation, e.Err)
}

// Unwrap returns the wrapped error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a ServiceError.
func NewServiceError(service, operation string, err error) *ServiceError {
	return &ServiceError{Service: service, Operation: operation, Err: err}
}

// storageError marks err as ErrStorage while keeping the cause for logs.
func storageError(service, operation string, err error) error {
	return NewServiceError(service, operation, fmt.Errorf("%w: %w", ErrStorage, err))
}
