package registrations

import "errors"

var (
	// ErrRegistrationNotFound is returned when the registration does not exist
	ErrRegistrationNotFound = errors.New("registration not found")

	// ErrAccessDenied is returned when the user does not own the registration
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel is returned when the registration is not in a cancellable state
	ErrCannotCancel = errors.New("registration cannot be cancelled")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("service: internal error")
)
