package availability

import (
	"github.com/craftday/workshop-booking-service/internal/selection"
)

// MaxParticipants derives the participant ceiling for the current selection.
//
// With nothing selected the config's per-slot capacity applies. Once slots
// are selected the ceiling is the minimum remaining capacity across them,
// clamped by the config capacity. A selected slot that is missing from the
// index or no longer available collapses the ceiling to 1: a hard floor that
// forces the caller to reduce participants or revisit the selection, not a
// soft warning.
func MaxParticipants(slotCapacity int, sel *selection.Selection, idx *Index) int {
	configCapacity := slotCapacity
	if configCapacity < 1 {
		configCapacity = 1
	}

	if sel == nil || sel.Len() == 0 {
		return configCapacity
	}

	minRemaining := configCapacity
	for _, start := range sel.Items() {
		status, ok := idx.SlotByStart[start]
		if !ok || !status.IsAvailable {
			return 1
		}
		if status.RemainingCapacity < minRemaining {
			minRemaining = status.RemainingCapacity
		}
	}

	if minRemaining < 1 {
		return 1
	}
	return minRemaining
}

// EffectiveParticipants clamps the requested participant count to the
// ceiling. The request is silently reduced, never rejected at this layer.
func EffectiveParticipants(requested, maxParticipants int) int {
	if requested > maxParticipants {
		return maxParticipants
	}
	return requested
}
