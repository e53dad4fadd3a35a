package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/genops-api/internal/api/shared"
	"github.com/phrazzld/genops-api/internal/domain"
	"github.com/phrazzld/genops-api/internal/service"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Each
// service sentinel has exactly one status.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.As(err, &validationErrs),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message that never includes
// internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	var validatorErrs validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return service.ErrInvalidCredentials.Error()

	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	case errors.Is(err, service.ErrConflict):
		return "Username or email already exists"

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.As(err, &validatorErrs):
		return SanitizeValidationError(err)

	case errors.As(err, &validationErr):
		if validationErr.Field == "" {
			return "Validation error"
		}
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)

	case errors.Is(err, service.ErrValidation):
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and safe message for err. customMsg, when
// non-empty, replaces the derived message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, customMsg string) {
	status := MapErrorToStatusCode(err)
	msg := customMsg
	if msg == "" {
		msg = GetSafeErrorMessage(err)
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, msg, err, opts...)
}

// SanitizeValidationError turns validator output into a short message such as
// "Invalid username: required field".
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}
	first := validationErrs[0]
	field := strings.ToLower(first.Field())
	return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(first.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
