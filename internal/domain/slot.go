package domain

import "time"

// DaySlotRecord groups the bookable slots of one timezone-local calendar day
type DaySlotRecord struct {
	DateKey string // YYYY-MM-DD in the workshop timezone
	Slots   []Slot
}

// Slot is a single bookable time window.
// Availability is computed when the record is materialized (capacity,
// blackout and booking-window rules); downstream consumers never recompute it.
type Slot struct {
	SlotStartAt       time.Time
	SlotEndAt         time.Time
	IsAvailable       bool
	RemainingCapacity int
	Reason            string // human explanation when unavailable
}

// HasAvailability returns true if at least one slot of the day is bookable
func (d *DaySlotRecord) HasAvailability() bool {
	for _, s := range d.Slots {
		if s.IsAvailable {
			return true
		}
	}
	return false
}

// IsFull returns true if the slot has no remaining capacity
func (s *Slot) IsFull() bool {
	return s.RemainingCapacity <= 0
}

// IsPast returns true if the slot has already started relative to now
func (s *Slot) IsPast(now time.Time) bool {
	return !s.SlotStartAt.After(now)
}
