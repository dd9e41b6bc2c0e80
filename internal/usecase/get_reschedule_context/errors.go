package get_reschedule_context

import "errors"

var (
	// ErrRegistrationNotFound is returned when the registration does not exist
	ErrRegistrationNotFound = errors.New("get_reschedule_context: registration not found")

	// ErrAccessDenied is returned when the caller does not own the registration
	ErrAccessDenied = errors.New("get_reschedule_context: access denied")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("get_reschedule_context: invalid input data")

	// ErrInternal is returned on internal use case failures
	ErrInternal = errors.New("get_reschedule_context: internal error")
)
