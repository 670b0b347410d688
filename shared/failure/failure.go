package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	cause   error
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

// Reconciliation outcomes callers branch on with errors.Is.
var (
	ErrBookingNotFound       = &Failure{Code: http.StatusNotFound, Message: "booking not found"}
	ErrAlreadyPaid           = &Failure{Code: http.StatusConflict, Message: "booking already paid"}
	ErrAlreadyConfirmed      = &Failure{Code: http.StatusConflict, Message: "booking already confirmed"}
	ErrAmountMismatch        = &Failure{Code: http.StatusUnprocessableEntity, Message: "amount does not match booking total"}
	ErrProviderNotConfigured = &Failure{Code: http.StatusServiceUnavailable, Message: "payment provider not configured"}
)

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

func (e *Failure) Unwrap() error {
	return e.cause
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// InvalidFormat returns a new Failure for input that could not be parsed.
func InvalidFormat(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
			cause:   err,
		}
	}

	return nil
}

// Unavailable returns a new Failure for a dependency that timed out or is down. The cause stays reachable via errors.Is/As.
func Unavailable(msg string, cause error) error {
	return &Failure{
		Code:    http.StatusServiceUnavailable,
		Message: msg,
		cause:   cause,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsUnavailable reports whether err carries a 503 failure.
func IsUnavailable(err error) bool {
	return err != nil && GetCode(err) == http.StatusServiceUnavailable
}
