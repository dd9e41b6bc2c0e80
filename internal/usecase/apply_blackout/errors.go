package apply_blackout

import "errors"

var (
	// ErrConfigNotFound is returned when the workshop config does not exist
	ErrConfigNotFound = errors.New("apply_blackout: workshop config not found")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("apply_blackout: invalid input data")

	// ErrInternal is returned on internal use case failures
	ErrInternal = errors.New("apply_blackout: internal error")
)
