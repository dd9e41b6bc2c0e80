package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftday/workshop-booking-service/internal/domain"
	"github.com/craftday/workshop-booking-service/internal/selection"
)

func buildTestIndex(t *testing.T) *Index {
	t.Helper()

	base := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	return BuildIndex([]domain.DaySlotRecord{
		day("2025-03-03",
			slotAt(base.Add(13*time.Hour), true, 5, ""),
			slotAt(base.Add(14*time.Hour), true, 2, ""),
			slotAt(base.Add(15*time.Hour), false, 0, "Blacked out"),
		),
	})
}

func TestMaxParticipantsEmptySelection(t *testing.T) {
	idx := buildTestIndex(t)

	assert.Equal(t, 6, MaxParticipants(6, selection.New(), idx))
	assert.Equal(t, 6, MaxParticipants(6, nil, idx))

	// Config capacity is floored at 1.
	assert.Equal(t, 1, MaxParticipants(0, selection.New(), idx))
	assert.Equal(t, 1, MaxParticipants(-3, nil, idx))
}

func TestMaxParticipantsMinRemainingWins(t *testing.T) {
	idx := buildTestIndex(t)

	sel := selection.New()
	require.NoError(t, sel.Add("2025-03-03T13:00:00Z")) // remaining 5
	require.NoError(t, sel.Add("2025-03-03T14:00:00Z")) // remaining 2

	assert.Equal(t, 2, MaxParticipants(6, sel, idx))

	// Config capacity clamps from above.
	assert.Equal(t, 1, MaxParticipants(1, sel, idx))
}

func TestMaxParticipantsUnavailableSlotFloorsToOne(t *testing.T) {
	idx := buildTestIndex(t)

	sel := selection.New()
	require.NoError(t, sel.Add("2025-03-03T13:00:00Z")) // remaining 5
	require.NoError(t, sel.Add("2025-03-03T15:00:00Z")) // unavailable

	assert.Equal(t, 1, MaxParticipants(6, sel, idx))

	// A slot missing from the index entirely hits the same floor.
	missing := selection.New()
	require.NoError(t, missing.Add("2025-03-03T20:00:00Z"))
	assert.Equal(t, 1, MaxParticipants(6, missing, idx))
}

func TestEffectiveParticipants(t *testing.T) {
	assert.Equal(t, 2, EffectiveParticipants(4, 2)) // silently clamped
	assert.Equal(t, 2, EffectiveParticipants(2, 5))
	assert.Equal(t, 1, EffectiveParticipants(1, 1))
}
