package get_booking_view

import "errors"

var (
	// ErrConfigNotFound is returned when the workshop config does not exist
	ErrConfigNotFound = errors.New("get_booking_view: workshop config not found")

	// ErrConfigInactive is returned when the workshop is not open for booking
	ErrConfigInactive = errors.New("get_booking_view: workshop is not open for booking")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("get_booking_view: invalid input data")

	// ErrInternal is returned on internal use case failures
	ErrInternal = errors.New("get_booking_view: internal error")
)
