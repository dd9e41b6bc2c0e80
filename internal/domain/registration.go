package domain

import (
	"encoding/json"
	"time"
)

// RegistrationStatus represents the status of a workshop registration
type RegistrationStatus string

const (
	StatusPending   RegistrationStatus = "pending"
	StatusApproved  RegistrationStatus = "approved"
	StatusPaid      RegistrationStatus = "paid"
	StatusConfirmed RegistrationStatus = "confirmed"
	StatusRejected  RegistrationStatus = "rejected"
	StatusCancelled RegistrationStatus = "cancelled"
)

// Registration represents a persisted workshop booking
type Registration struct {
	ID           int64
	Reference    string // public UUID handed out to customers
	UserID       int64
	ConfigID     int64
	Participants int
	Slots        []RegistrationSlot
	TotalHours   int
	SlotsCount   int

	// PricingSnapshot is the pricing state frozen at booking time.
	// It may embed a blackout_recovery block after a partial
	// system-initiated cancellation; the interpreter treats it as opaque
	// JSON and never fails on malformed content.
	PricingSnapshot json.RawMessage

	Status RegistrationStatus

	CancelledAt             *time.Time
	CancelledReason         *string
	CancelledByUserID       *int64
	CancelledByBlackoutRule *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RegistrationSlot is one booked slot of a registration
type RegistrationSlot struct {
	ID             int64
	RegistrationID int64
	SlotStartAt    time.Time
	SlotEndAt      time.Time
}

// BlackoutRecoveryMetadata is the structured record of a partial
// system-initiated cancellation, embedded in the pricing snapshot.
// Derived once at cancellation time, never hand-edited afterwards.
type BlackoutRecoveryMetadata struct {
	PendingSlotStartTimes []string `json:"pending_slot_start_times"`
	RequiredSlots         int      `json:"required_slots"`
	WindowStartMinutes    *int     `json:"window_start_minutes"`
	WindowEndMinutes      *int     `json:"window_end_minutes"`
}

// IsActive returns true if the registration still occupies capacity
func (r *Registration) IsActive() bool {
	return r.Status != StatusCancelled && r.Status != StatusRejected
}

// IsCancelled returns true if the registration has been cancelled
func (r *Registration) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// CanBeCancelled returns true if the registration can still be cancelled
func (r *Registration) CanBeCancelled() bool {
	return r.Status != StatusCancelled && r.Status != StatusRejected
}

// CancelledBySystem returns true if the cancellation fields were written by
// the platform (blackout enforcement) rather than by a user.
func (r *Registration) CancelledBySystem() bool {
	return r.CancelledByUserID == nil &&
		(r.CancelledAt != nil || r.CancelledReason != nil || r.CancelledByBlackoutRule != nil)
}

// HasCancellationNote returns true if both cancellation timestamp and reason are present
func (r *Registration) HasCancellationNote() bool {
	return r.CancelledAt != nil && r.CancelledReason != nil && *r.CancelledReason != ""
}
