package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when login fails. Unknown
	// identifier, unapproved account and password mismatch are
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email/registration number or password")
	// ErrForbidden is returned when the actor's role or scope does not
	// authorize the attempted action.
	ErrForbidden = errors.New("not authorized to perform this action")
	// ErrNotFound is returned when an account, department or section is not found.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidState is returned when a transition is attempted on an
	// account that is not pending, including the loser of a concurrent
	// approve/reject race.
	ErrInvalidState = errors.New("account is not pending approval")
	// ErrValidation is returned for malformed registration payloads.
	ErrValidation = errors.New("invalid request")
	// ErrEmailTaken is returned when the registration email is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrRegNoTaken is returned when the registration number is already in use.
	ErrRegNoTaken = errors.New("registration number already registered")
	// ErrDepartmentInUse is returned when deleting a department still
	// referenced by sections or accounts.
	ErrDepartmentInUse = errors.New("department still has sections or accounts")
	// ErrSectionInUse is returned when deleting a section still referenced by accounts.
	ErrSectionInUse = errors.New("section still has accounts")
)

// ErrorResponse is the standardized error body. Clients surface
// Message as a transient notification.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	case errors.Is(err, ErrInvalidState):
		return NewHTTPError(http.StatusConflict, ErrInvalidState.Error(), "INVALID_STATE")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, ErrEmailTaken.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrRegNoTaken):
		return NewHTTPError(http.StatusConflict, ErrRegNoTaken.Error(), "REG_NO_TAKEN")
	case errors.Is(err, ErrDepartmentInUse):
		return NewHTTPError(http.StatusConflict, ErrDepartmentInUse.Error(), "DEPARTMENT_IN_USE")
	case errors.Is(err, ErrSectionInUse):
		return NewHTTPError(http.StatusConflict, ErrSectionInUse.Error(), "SECTION_IN_USE")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
