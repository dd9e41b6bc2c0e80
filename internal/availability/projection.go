package availability

import (
	"sort"
	"time"

	"github.com/craftday/workshop-booking-service/internal/calendar"
	"github.com/craftday/workshop-booking-service/internal/domain"
	"github.com/craftday/workshop-booking-service/internal/selection"
)

// SlotView is one slot of the active day as the UI consumes it
type SlotView struct {
	StartAt           time.Time
	EndAt             time.Time
	IsAvailable       bool
	RemainingCapacity int
	Reason            string
	IsSelected        bool
}

// ProjectDay builds the slot list of the active day: slots that have not
// started yet relative to now, ascending by start time, each decorated with
// the selection membership of its canonical start instant.
// Slots whose start is <= now drop out on every recompute, which is how
// time-based invalidation reaches the view.
func ProjectDay(day domain.DaySlotRecord, now time.Time, sel *selection.Selection) []SlotView {
	views := make([]SlotView, 0, len(day.Slots))

	for _, slot := range day.Slots {
		if !slot.SlotStartAt.After(now) {
			continue
		}

		views = append(views, SlotView{
			StartAt:           slot.SlotStartAt,
			EndAt:             slot.SlotEndAt,
			IsAvailable:       slot.IsAvailable,
			RemainingCapacity: slot.RemainingCapacity,
			Reason:            slot.Reason,
			IsSelected:        sel != nil && sel.ContainsCanonical(calendar.CanonicalizeTime(slot.SlotStartAt)),
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].StartAt.Before(views[j].StartAt)
	})

	return views
}
