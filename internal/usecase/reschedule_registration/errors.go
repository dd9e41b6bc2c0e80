package reschedule_registration

import "errors"

var (
	// ErrRegistrationNotFound is returned when the registration does not exist
	ErrRegistrationNotFound = errors.New("reschedule_registration: registration not found")

	// ErrAccessDenied is returned when the caller does not own the registration
	ErrAccessDenied = errors.New("reschedule_registration: access denied")

	// ErrNotReschedulable is returned when the registration carries no
	// reschedule entitlement
	ErrNotReschedulable = errors.New("reschedule_registration: registration cannot be rescheduled")

	// ErrWrongSlotCount is returned when the picked slot count does not
	// match the owed count
	ErrWrongSlotCount = errors.New("reschedule_registration: wrong number of slots selected")

	// ErrSlotNotAvailable is returned when a picked slot is unknown,
	// blacked out or sold out
	ErrSlotNotAvailable = errors.New("reschedule_registration: slot is not available")

	// ErrSlotInPast is returned when a picked slot has already started
	ErrSlotInPast = errors.New("reschedule_registration: slot is in the past")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("reschedule_registration: invalid input data")

	// ErrInternal is returned on internal use case failures
	ErrInternal = errors.New("reschedule_registration: internal error")
)
