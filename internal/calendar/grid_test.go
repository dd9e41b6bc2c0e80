package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftday/workshop-booking-service/internal/domain"
)

func TestBuildMonthGridAlwaysEmits35Cells(t *testing.T) {
	now := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	anchors := []time.Time{
		time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),  // non-leap February
		time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), // leap February
		time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),  // rolls into January
		time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC),     // 31-day month
		time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),      // month starting on Sunday
	}

	for _, anchor := range anchors {
		cells := BuildMonthGrid(anchor, nil, "", nil, time.UTC, now)
		assert.Len(t, cells, GridCells, "anchor %s", anchor.Format("2006-01"))
	}
}

func TestBuildMonthGridStartsOnSundayBeforeFirst(t *testing.T) {
	now := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	// February 2025 starts on a Saturday; the grid backs up to Sunday Jan 26.
	anchor := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	cells := BuildMonthGrid(anchor, nil, "", nil, time.UTC, now)

	require.Len(t, cells, GridCells)
	assert.Equal(t, "2025-01-26", cells[0].DateKey)
	assert.Equal(t, 26, cells[0].DayOfMonth)
	assert.False(t, cells[0].IsInCurrentMonth)

	// Cell 6 is Feb 1.
	assert.Equal(t, "2025-02-01", cells[6].DateKey)
	assert.True(t, cells[6].IsInCurrentMonth)

	// Last cell runs into March: Jan 26 + 34 days = Mar 1.
	assert.Equal(t, "2025-03-01", cells[34].DateKey)
	assert.False(t, cells[34].IsInCurrentMonth)
}

func TestBuildMonthGridDecemberRollsIntoJanuary(t *testing.T) {
	now := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	// December 2025 starts on a Monday; the grid starts Sunday Nov 30 and
	// its last cell is Jan 3, 2026.
	anchor := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	cells := BuildMonthGrid(anchor, nil, "", nil, time.UTC, now)

	require.Len(t, cells, GridCells)
	assert.Equal(t, "2025-11-30", cells[0].DateKey)
	assert.Equal(t, "2026-01-03", cells[34].DateKey)
	assert.False(t, cells[34].IsInCurrentMonth)
}

func TestBuildMonthGridSelectability(t *testing.T) {
	now := time.Date(2025, time.February, 10, 12, 0, 0, 0, time.UTC)
	anchor := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	availability := map[string]bool{
		"2025-02-05": true, // past: not selectable despite availability
		"2025-02-10": true, // today: selectable
		"2025-02-12": true,
		"2025-02-14": false, // no available slots
	}

	cells := BuildMonthGrid(anchor, availability, "2025-02-12", []string{"2025-02-12", "2025-02-20"}, time.UTC, now)

	byKey := make(map[string]DayCell, len(cells))
	for _, cell := range cells {
		byKey[cell.DateKey] = cell
	}

	assert.False(t, byKey["2025-02-05"].IsSelectable)
	assert.True(t, byKey["2025-02-10"].IsSelectable)
	assert.True(t, byKey["2025-02-12"].IsSelectable)
	assert.False(t, byKey["2025-02-14"].IsSelectable)
	assert.False(t, byKey["2025-02-16"].IsSelectable) // unknown day

	assert.True(t, byKey["2025-02-12"].IsSelected)
	assert.False(t, byKey["2025-02-10"].IsSelected)

	assert.True(t, byKey["2025-02-12"].HasSelectedSlots)
	assert.True(t, byKey["2025-02-20"].HasSelectedSlots)
	assert.False(t, byKey["2025-02-10"].HasSelectedSlots)
}

func TestBuildSelectedDateTabs(t *testing.T) {
	jerusalem, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)

	// Two starts on Mar 3 and one on Mar 1 (local time).
	starts := []time.Time{
		time.Date(2025, time.March, 3, 11, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 1, 11, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC),
	}

	dayLookup := map[string]domain.DaySlotRecord{
		"2025-03-01": {
			DateKey: "2025-03-01",
			Slots: []domain.Slot{
				{SlotStartAt: time.Date(2025, time.March, 1, 11, 0, 0, 0, time.UTC)},
			},
		},
	}

	tabs := BuildSelectedDateTabs([]string{"2025-03-03", "2025-03-01", "2025-03-03"}, starts, jerusalem, dayLookup)

	require.Len(t, tabs, 2)

	// Sorted ascending by date key, duplicates collapsed.
	assert.Equal(t, "2025-03-01", tabs[0].DateKey)
	assert.Equal(t, 1, tabs[0].Hours)
	assert.Equal(t, "Sat, Mar 1", tabs[0].Label)

	assert.Equal(t, "2025-03-03", tabs[1].DateKey)
	assert.Equal(t, 2, tabs[1].Hours)
	assert.Equal(t, "Mon, Mar 3", tabs[1].Label)
}
