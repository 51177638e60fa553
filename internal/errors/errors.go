package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrListingNotFound is returned when a listing is not found.
	ErrListingNotFound = errors.New("listing not found")
	// ErrReservationNotFound is returned when a reservation is not found.
	ErrReservationNotFound = errors.New("reservation not found")
	// ErrApplicationNotFound is returned when a host application is not found.
	ErrApplicationNotFound = errors.New("host application not found")
	// ErrNotFoundOrNotOwner is returned when a conditioned mutation affected
	// zero rows: the row is either absent or owned by someone else, and the
	// statement cannot tell the two apart.
	ErrNotFoundOrNotOwner = errors.New("listing not found or not owned by you")
	// ErrDateConflict is returned when a candidate date range overlaps an
	// active reservation on the same listing.
	ErrDateConflict = errors.New("these dates are already booked")
	// ErrActiveReservations is returned when a listing delete is refused
	// because pending or confirmed reservations still reference it.
	ErrActiveReservations = errors.New("listing has active reservations")
	// ErrInvalidDateRange is returned when check-in is not strictly before check-out.
	ErrInvalidDateRange = errors.New("check-in date must be before check-out date")
	// ErrInvalidStatus is returned when a status value is outside its enumeration.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidTransition is returned when a status change is not permitted
	// by the reservation state machine.
	ErrInvalidTransition = errors.New("status transition not allowed")
	// ErrInvalidRole is returned when a role value is outside the enumeration.
	ErrInvalidRole = errors.New("invalid role")
	// ErrEmailTaken is returned when an email is already registered to another user.
	ErrEmailTaken = errors.New("email already in use")
	// ErrApplicationExists is returned when a user already has a host application.
	ErrApplicationExists = errors.New("host application already submitted")
	// ErrAlreadyHost is returned when a host applies to become a host.
	ErrAlreadyHost = errors.New("user is already a host")
)

// DenialReason tags an authorization denial with the rule that failed.
type DenialReason string

const (
	// DenialNotOwner means the principal does not own the resource.
	DenialNotOwner DenialReason = "NOT_OWNER"
	// DenialWrongRole means the principal's role does not permit the operation.
	DenialWrongRole DenialReason = "WRONG_ROLE"
	// DenialNotSelf means the operation is self-scoped and the principal is
	// not the referenced user.
	DenialNotSelf DenialReason = "NOT_SELF"
)

// DeniedError is a declarative authorization denial. The guard returns it as
// a value; it is never swallowed on the way up.
type DeniedError struct {
	Reason DenialReason
}

func (e *DeniedError) Error() string {
	switch e.Reason {
	case DenialNotOwner:
		return "you do not own this resource"
	case DenialNotSelf:
		return "you can only act on your own resources"
	default:
		return "your role does not permit this operation"
	}
}

// Denied builds a DeniedError with the given reason.
func Denied(reason DenialReason) *DeniedError {
	return &DeniedError{Reason: reason}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Backend diagnostics never
// leak through: anything unrecognized becomes an opaque 500.
func MapErrorToHTTP(err error) *HTTPError {
	var denied *DeniedError
	if errors.As(err, &denied) {
		return NewHTTPError(http.StatusForbidden, denied.Error(), "DENIED_"+string(denied.Reason))
	}

	switch err {
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrListingNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "LISTING_NOT_FOUND")
	case ErrReservationNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "RESERVATION_NOT_FOUND")
	case ErrApplicationNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "APPLICATION_NOT_FOUND")
	case ErrNotFoundOrNotOwner:
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND_OR_NOT_OWNER")
	case ErrDateConflict:
		return NewHTTPError(http.StatusConflict, err.Error(), "DATE_CONFLICT")
	case ErrActiveReservations:
		return NewHTTPError(http.StatusConflict, err.Error(), "ACTIVE_RESERVATIONS_EXIST")
	case ErrInvalidTransition:
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_TRANSITION")
	case ErrInvalidDateRange:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DATE_RANGE")
	case ErrInvalidStatus:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case ErrInvalidRole:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case ErrApplicationExists:
		return NewHTTPError(http.StatusConflict, err.Error(), "APPLICATION_EXISTS")
	case ErrAlreadyHost:
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_HOST")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
