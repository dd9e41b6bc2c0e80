package create_registration

import "errors"

var (
	// ErrConfigNotFound is returned when the workshop config does not exist
	ErrConfigNotFound = errors.New("create_registration: workshop config not found")

	// ErrConfigInactive is returned when the workshop is not open for booking
	ErrConfigInactive = errors.New("create_registration: workshop is not open for booking")

	// ErrSlotNotAvailable is returned when a selected slot is unknown,
	// blacked out or sold out
	ErrSlotNotAvailable = errors.New("create_registration: slot is not available")

	// ErrSlotInPast is returned when a selected slot has already started
	ErrSlotInPast = errors.New("create_registration: slot is in the past")

	// ErrTooManyParticipants is returned when the requested count exceeds
	// the remaining capacity of a selected slot
	ErrTooManyParticipants = errors.New("create_registration: not enough remaining capacity")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("create_registration: invalid input data")

	// ErrInternal is returned on internal use case failures
	ErrInternal = errors.New("create_registration: internal error")
)
