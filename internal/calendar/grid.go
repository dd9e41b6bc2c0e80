package calendar

import (
	"sort"
	"time"

	"github.com/craftday/workshop-booking-service/internal/domain"
)

// GridCells is the fixed size of the month grid: 5 rows of 7 days.
// The UI renders exactly this many cells regardless of month length, so the
// builder never emits a 6th row.
const GridCells = 35

// DayCell is one cell of the booking calendar grid
type DayCell struct {
	DateKey          string
	DayOfMonth       int
	IsInCurrentMonth bool
	IsSelected       bool
	HasSelectedSlots bool
	IsSelectable     bool
}

// DateTab is one per-day tab summarizing the current slot selection
type DateTab struct {
	DateKey string
	Label   string
	Hours   int
}

// BuildMonthGrid emits the 35 consecutive day cells starting from the Sunday
// on or before the 1st of the anchor's month.
// A day is selectable when it is not before today (in the workshop timezone)
// and has at least one available slot according to availabilityByDay.
func BuildMonthGrid(
	anchor time.Time,
	availabilityByDay map[string]bool,
	selectedDayKey string,
	selectedDayKeys []string,
	loc *time.Location,
	now time.Time,
) []DayCell {
	local := anchor.In(loc)
	firstOfMonth := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)

	// Back up to the Sunday on/before the 1st.
	gridStart := firstOfMonth.AddDate(0, 0, -int(firstOfMonth.Weekday()))

	selectedSet := make(map[string]struct{}, len(selectedDayKeys))
	for _, key := range selectedDayKeys {
		selectedSet[key] = struct{}{}
	}

	todayKey := DateKey(now, loc)
	cells := make([]DayCell, 0, GridCells)

	for i := 0; i < GridCells; i++ {
		day := gridStart.AddDate(0, 0, i)
		key := day.Format(dateKeyLayout)

		_, hasSelectedSlots := selectedSet[key]

		cells = append(cells, DayCell{
			DateKey:          key,
			DayOfMonth:       day.Day(),
			IsInCurrentMonth: day.Month() == firstOfMonth.Month(),
			IsSelected:       key == selectedDayKey,
			HasSelectedSlots: hasSelectedSlots,
			IsSelectable:     key >= todayKey && availabilityByDay[key],
		})
	}

	return cells
}

// BuildSelectedDateTabs summarizes the multi-day slot selection as one tab
// per selected day, sorted ascending by date key. Hours counts the selected
// slot starts whose timezone-local day matches the tab.
func BuildSelectedDateTabs(
	selectedDayKeys []string,
	selectedSlotStarts []time.Time,
	loc *time.Location,
	dayLookup map[string]domain.DaySlotRecord,
) []DateTab {
	// De-duplicate keys preserving nothing: tabs are re-sorted anyway.
	seen := make(map[string]struct{}, len(selectedDayKeys))
	keys := make([]string, 0, len(selectedDayKeys))
	for _, key := range selectedDayKeys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tabs := make([]DateTab, 0, len(keys))
	for _, key := range keys {
		hours := 0
		for _, start := range selectedSlotStarts {
			if DateKey(start, loc) == key {
				hours++
			}
		}

		tabs = append(tabs, DateTab{
			DateKey: key,
			Label:   tabLabel(key, loc, dayLookup),
			Hours:   hours,
		})
	}

	return tabs
}

// tabLabel renders the human label of a tab. When the day record is known,
// the label is derived from its first slot so it reflects the exact instants
// served upstream; otherwise the key itself is parsed.
func tabLabel(key string, loc *time.Location, dayLookup map[string]domain.DaySlotRecord) string {
	const labelLayout = "Mon, Jan 2"

	if day, ok := dayLookup[key]; ok && len(day.Slots) > 0 {
		return day.Slots[0].SlotStartAt.In(loc).Format(labelLayout)
	}

	date, err := ParseDateKey(key)
	if err != nil {
		return key
	}
	return date.Format(labelLayout)
}
