// Package blackout interprets the aftermath of system-initiated
// cancellations: it reconstructs how many replacement slots a registration
// is owed, from structured recovery metadata when present and from the
// free-text cancellation reason otherwise.
package blackout

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/craftday/workshop-booking-service/internal/domain"
)

// minutesPerDay bounds the blackout minute window fields
const minutesPerDay = 1440

// snapshotEnvelope extracts only the recovery block from the otherwise
// opaque pricing snapshot. Every field is decoded defensively field by
// field: malformed metadata is treated as absent, never as an error.
type snapshotEnvelope struct {
	BlackoutRecovery json.RawMessage `json:"blackout_recovery"`
}

type recoveryBlock struct {
	PendingSlotStartTimes json.RawMessage `json:"pending_slot_start_times"`
	RequiredSlots         json.RawMessage `json:"required_slots"`
	WindowStartMinutes    json.RawMessage `json:"window_start_minutes"`
	WindowEndMinutes      json.RawMessage `json:"window_end_minutes"`
}

// ParseRecoveryMetadata parses the blackout_recovery block out of a pricing
// snapshot. Returns nil when the snapshot carries no usable block: absent,
// unparseable, or with neither a positive required_slots nor any pending
// slot start times.
func ParseRecoveryMetadata(snapshot []byte) *domain.BlackoutRecoveryMetadata {
	if len(snapshot) == 0 {
		return nil
	}

	var envelope snapshotEnvelope
	if err := json.Unmarshal(snapshot, &envelope); err != nil {
		return nil
	}
	if len(envelope.BlackoutRecovery) == 0 || string(envelope.BlackoutRecovery) == "null" {
		return nil
	}

	var block recoveryBlock
	if err := json.Unmarshal(envelope.BlackoutRecovery, &block); err != nil {
		return nil
	}

	pending := parsePendingStarts(block.PendingSlotStartTimes)

	requiredSlots, ok := parseFiniteInt(block.RequiredSlots)
	if !ok {
		// Not a finite number: fall back to the pending list length.
		requiredSlots = len(pending)
	}

	if requiredSlots < 1 && len(pending) == 0 {
		return nil
	}
	if requiredSlots < 1 {
		requiredSlots = 1
	}

	return &domain.BlackoutRecoveryMetadata{
		PendingSlotStartTimes: pending,
		RequiredSlots:         requiredSlots,
		WindowStartMinutes:    parseMinuteBound(block.WindowStartMinutes),
		WindowEndMinutes:      parseMinuteBound(block.WindowEndMinutes),
	}
}

// parsePendingStarts decodes the voided slot-start list, trimming entries
// and dropping empty ones. A malformed list counts as empty.
func parsePendingStarts(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var entries []string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return []string{}
	}

	cleaned := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			cleaned = append(cleaned, entry)
		}
	}
	return cleaned
}

// parseFiniteInt decodes a JSON value as a finite number, truncated to int.
func parseFiniteInt(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, false
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return int(value), true
}

// parseMinuteBound decodes a nullable minute-of-day bound; anything outside
// a calendar day becomes nil.
func parseMinuteBound(raw json.RawMessage) *int {
	value, ok := parseFiniteInt(raw)
	if !ok {
		return nil
	}
	if value < 0 || value > minutesPerDay {
		return nil
	}
	return &value
}
