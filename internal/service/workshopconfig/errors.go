package workshopconfig

import "errors"

var (
	// ErrConfigNotFound is returned when the workshop config does not exist
	ErrConfigNotFound = errors.New("workshop config not found")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("service: internal error")
)
