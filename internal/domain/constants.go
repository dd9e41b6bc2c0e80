package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 60
	DefaultSlotCapacity        = 6
	DefaultBookingWindowDays   = 30
)

// Business validation constants
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 480 // 8 hours
	SlotDurationStep       = 15  // durations must be a multiple of this
	MinSlotCapacity        = 1
	MaxSlotCapacity        = 100
	MinBookingWindowDays   = 1
	MaxBookingWindowDays   = 90
	MinTierHours           = 1
	MaxReasonLength        = 500
)

// Time format constants
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// InactiveStatuses lists registrations that no longer occupy capacity.
// Used when counting remaining spots per slot.
var InactiveStatuses = []RegistrationStatus{
	StatusCancelled,
	StatusRejected,
}

// ActiveStatuses lists registrations that occupy capacity.
var ActiveStatuses = []RegistrationStatus{
	StatusPending,
	StatusApproved,
	StatusPaid,
	StatusConfirmed,
}
