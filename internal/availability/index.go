// Package availability builds the lookup structures the booking view reads:
// day-level availability, day records by key and per-slot status by start
// instant, plus the active-day slot projection.
package availability

import (
	"github.com/craftday/workshop-booking-service/internal/calendar"
	"github.com/craftday/workshop-booking-service/internal/domain"
)

// SlotStatus is the availability snapshot of one slot start instant
type SlotStatus struct {
	IsAvailable       bool
	RemainingCapacity int
	Reason            string
}

// Index holds the availability lookups for one set of day records.
// Keys of SlotByStart are canonical RFC3339 UTC instants; when two slots share
// a start instant the later entry in source order wins, same for DayLookup on
// duplicate date keys (duplicates are not expected from upstream).
type Index struct {
	AvailabilityByDate map[string]bool
	DayLookup          map[string]domain.DaySlotRecord
	SlotByStart        map[string]SlotStatus

	dayOrder []string // source order of date keys, for the active-day fallback
}

// BuildIndex flattens the day records into the three lookups.
func BuildIndex(days []domain.DaySlotRecord) *Index {
	idx := &Index{
		AvailabilityByDate: make(map[string]bool, len(days)),
		DayLookup:          make(map[string]domain.DaySlotRecord, len(days)),
		SlotByStart:        make(map[string]SlotStatus),
		dayOrder:           make([]string, 0, len(days)),
	}

	for _, day := range days {
		idx.AvailabilityByDate[day.DateKey] = day.HasAvailability()
		idx.DayLookup[day.DateKey] = day
		idx.dayOrder = append(idx.dayOrder, day.DateKey)

		for _, slot := range day.Slots {
			key := calendar.CanonicalizeTime(slot.SlotStartAt)
			idx.SlotByStart[key] = SlotStatus{
				IsAvailable:       slot.IsAvailable,
				RemainingCapacity: slot.RemainingCapacity,
				Reason:            slot.Reason,
			}
		}
	}

	return idx
}

// EffectiveActiveDateKey resolves which day the slot list should show:
// the requested key when it is a known day, otherwise the first day in
// source order, otherwise empty when there are no days at all.
func (idx *Index) EffectiveActiveDateKey(requestedKey string) string {
	if _, ok := idx.DayLookup[requestedKey]; ok {
		return requestedKey
	}
	if len(idx.dayOrder) > 0 {
		return idx.dayOrder[0]
	}
	return ""
}

// StatusFor looks up the snapshot of a raw ISO slot start.
// The second return is false when the instant is unparseable or unknown.
func (idx *Index) StatusFor(rawStart string) (SlotStatus, bool) {
	canonical, err := calendar.CanonicalInstant(rawStart)
	if err != nil {
		return SlotStatus{}, false
	}
	status, ok := idx.SlotByStart[canonical]
	return status, ok
}
