package domain

import "time"

// BlackoutRule blocks a minute window of one calendar day for a workshop.
// Slots whose local start falls inside [StartMinutes, EndMinutes) become
// unavailable; with AutoCancelOnBlackout set on the config, already-booked
// registrations inside the window are cancelled by the system.
type BlackoutRule struct {
	ID           int64
	ConfigID     int64
	Date         time.Time // calendar day, midnight in the workshop timezone
	StartMinutes int       // minute of day, 0-1439
	EndMinutes   int       // exclusive
	Reason       string
	CreatedAt    time.Time
}

// CoversMinute returns true if the given minute of day falls inside the window
func (b *BlackoutRule) CoversMinute(minuteOfDay int) bool {
	return minuteOfDay >= b.StartMinutes && minuteOfDay < b.EndMinutes
}
