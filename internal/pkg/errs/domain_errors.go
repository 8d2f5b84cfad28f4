package errs

import "errors"

// Domain-specific sentinel errors for the reservation usecase layer
var (
	// Resource errors
	ErrResourceNotFound    = errors.New("resource not found")
	ErrResourceUnavailable = errors.New("resource unavailable for requested interval")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrAlreadyDeparted     = errors.New("guest already departed")

	// Validation errors
	ErrInvalidDate = errors.New("invalid date format")
	ErrValidation  = errors.New("validation error")

	// Persistence errors
	ErrStoreOperationFailed = errors.New("store operation failed")
)
