package blackout

import (
	"math"
	"time"

	"github.com/craftday/workshop-booking-service/internal/domain"
)

// RescheduleContext is the interpreted reschedule requirement of one
// registration after system-initiated cancellation.
type RescheduleContext struct {
	PartiallyCancelled bool
	FullyCancelled     bool
	CanReschedule      bool

	// RequiredSlots is how many replacement slots the customer is owed.
	RequiredSlots int
	// RequiredHours is the display hour count derived from RequiredSlots
	// and the config slot duration. Tier matching never uses it.
	RequiredHours int

	// PendingSlotStartTimes are the voided slot instants, when known.
	PendingSlotStartTimes []string
	WindowStartMinutes    *int
	WindowEndMinutes      *int

	// DisplayReason is the normalized customer-facing cancellation text.
	DisplayReason string
}

// Classify combines the structured metadata path with the free-text
// heuristic to decide whether, and how much, a registration can reschedule.
//
// A registration is partially cancelled by the system when it is not in
// cancelled status, no user performed the cancellation, and either a
// recovery signal exists or both cancellation timestamp and reason are set.
// It is fully cancelled by the system when it is in cancelled status with no
// cancelling user. Either condition permits rescheduling.
func Classify(reg *domain.Registration, slotDurationMinutes int, loc *time.Location) RescheduleContext {
	meta := ParseRecoveryMetadata(reg.PricingSnapshot)

	reason := ""
	if reg.CancelledReason != nil {
		reason = *reg.CancelledReason
	}
	inferred := InferPartialRecoverySlotCountFromReason(reason)

	// Strongest signal wins across both sources.
	signal := inferred
	var pending []string
	ctx := RescheduleContext{}
	if meta != nil {
		if meta.RequiredSlots > signal {
			signal = meta.RequiredSlots
		}
		if len(meta.PendingSlotStartTimes) > signal {
			signal = len(meta.PendingSlotStartTimes)
		}
		pending = meta.PendingSlotStartTimes
		ctx.WindowStartMinutes = meta.WindowStartMinutes
		ctx.WindowEndMinutes = meta.WindowEndMinutes
	}
	ctx.PendingSlotStartTimes = pending

	systemCancelled := reg.CancelledByUserID == nil

	ctx.PartiallyCancelled = reg.Status != domain.StatusCancelled &&
		systemCancelled &&
		(signal > 0 || (reg.CancelledAt != nil && reg.CancelledReason != nil))

	ctx.FullyCancelled = reg.Status == domain.StatusCancelled && systemCancelled

	ctx.CanReschedule = ctx.PartiallyCancelled || ctx.FullyCancelled

	switch {
	case ctx.PartiallyCancelled:
		if signal < 1 {
			signal = 1
		}
		ctx.RequiredSlots = signal
	case ctx.FullyCancelled:
		ctx.RequiredSlots = reg.SlotsCount
	}

	ctx.RequiredHours = requiredHours(ctx.RequiredSlots, slotDurationMinutes)

	if ctx.CanReschedule {
		ctx.DisplayReason = DisplayReason(reason, ctx.RequiredSlots, pending, loc)
	}

	return ctx
}

// requiredHours converts owed slots into display hours: rounded to the
// nearest hour and floored at 1 as long as any slot is owed.
func requiredHours(slots, slotDurationMinutes int) int {
	if slots <= 0 {
		return 0
	}

	hours := int(math.Round(float64(slots*slotDurationMinutes) / 60.0))
	if hours < 1 {
		hours = 1
	}
	return hours
}
