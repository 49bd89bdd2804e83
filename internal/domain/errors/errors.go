package errors

import (
	"net/http"

	"coderr/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Account-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUsernameTaken = NewBaseError(
		http.StatusBadRequest,
		"USERNAME_TAKEN",
		"Username is already taken",
		"",
	)

	ErrEmailTaken = NewBaseError(
		http.StatusBadRequest,
		"EMAIL_TAKEN",
		"Email is already registered",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CREDENTIALS",
		"Invalid username or password",
		"",
	)

	// Offer-related errors
	ErrOfferNotFound = NewBaseError(
		http.StatusNotFound,
		"OFFER_NOT_FOUND",
		"Offer not found",
		"",
	)

	ErrTooFewDetails = NewBaseError(
		http.StatusUnprocessableEntity,
		"TOO_FEW_DETAILS",
		"An offer must contain at least 3 details",
		"",
	)

	ErrDuplicateTiers = NewBaseError(
		http.StatusUnprocessableEntity,
		"DUPLICATE_TIERS",
		"Each offer detail must carry a distinct offer type",
		"",
	)

	ErrDetailNotFound = NewBaseError(
		http.StatusNotFound,
		"OFFER_DETAIL_NOT_FOUND",
		"OfferDetail not found",
		"",
	)

	ErrDetailNotInOffer = NewBaseError(
		http.StatusBadRequest,
		"DETAIL_NOT_IN_OFFER",
		"Detail not found for this offer",
		"",
	)

	ErrNoDetailWithTier = NewBaseError(
		http.StatusBadRequest,
		"NO_DETAIL_WITH_TIER",
		"No detail with this offer type for this offer",
		"",
	)

	ErrAmbiguousTier = NewBaseError(
		http.StatusBadRequest,
		"AMBIGUOUS_TIER",
		"Multiple details with this offer type found; provide 'id' to disambiguate",
		"",
	)

	// Order-related errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		"",
	)

	ErrBusinessUserNotFound = NewBaseError(
		http.StatusNotFound,
		"BUSINESS_USER_NOT_FOUND",
		"Business user not found",
		"",
	)

	ErrStatusOnly = NewBaseError(
		http.StatusBadRequest,
		"STATUS_ONLY",
		"Only 'status' may be updated",
		"",
	)

	// Review-related errors
	ErrReviewNotFound = NewBaseError(
		http.StatusNotFound,
		"REVIEW_NOT_FOUND",
		"Review not found",
		"",
	)

	ErrNotBusinessProfile = NewBaseError(
		http.StatusBadRequest,
		"NOT_BUSINESS_PROFILE",
		"Target user is not a business profile",
		"",
	)

	ErrSelfReview = NewBaseError(
		http.StatusBadRequest,
		"SELF_REVIEW",
		"You cannot review yourself",
		"",
	)

	ErrAlreadyReviewed = NewBaseError(
		http.StatusBadRequest,
		"ALREADY_REVIEWED",
		"You have already reviewed this business user",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Authentication required",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"You do not have permission to perform this action",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
