package blackout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecoveryMetadata(t *testing.T) {
	snapshot := []byte(`{
		"tiers": [{"hours": 2, "price_per_person": 900}],
		"blackout_recovery": {
			"pending_slot_start_times": [" 2024-01-05T13:00:00Z ", "", "2024-01-05T14:00:00Z"],
			"required_slots": 2,
			"window_start_minutes": 780,
			"window_end_minutes": 900
		}
	}`)

	meta := ParseRecoveryMetadata(snapshot)
	require.NotNil(t, meta)

	// Entries are trimmed and empties dropped.
	assert.Equal(t, []string{"2024-01-05T13:00:00Z", "2024-01-05T14:00:00Z"}, meta.PendingSlotStartTimes)
	assert.Equal(t, 2, meta.RequiredSlots)

	require.NotNil(t, meta.WindowStartMinutes)
	require.NotNil(t, meta.WindowEndMinutes)
	assert.Equal(t, 780, *meta.WindowStartMinutes)
	assert.Equal(t, 900, *meta.WindowEndMinutes)
}

func TestParseRecoveryMetadataAbsentOrMalformed(t *testing.T) {
	assert.Nil(t, ParseRecoveryMetadata(nil))
	assert.Nil(t, ParseRecoveryMetadata([]byte(``)))
	assert.Nil(t, ParseRecoveryMetadata([]byte(`not json`)))
	assert.Nil(t, ParseRecoveryMetadata([]byte(`{"tiers": []}`)))
	assert.Nil(t, ParseRecoveryMetadata([]byte(`{"blackout_recovery": null}`)))
	assert.Nil(t, ParseRecoveryMetadata([]byte(`{"blackout_recovery": "oops"}`)))

	// Block present but empty of signals.
	assert.Nil(t, ParseRecoveryMetadata([]byte(`{
		"blackout_recovery": {"pending_slot_start_times": [], "required_slots": 0}
	}`)))
}

func TestParseRecoveryMetadataDefaults(t *testing.T) {
	// required_slots not a number: defaults to the pending list length.
	meta := ParseRecoveryMetadata([]byte(`{
		"blackout_recovery": {
			"pending_slot_start_times": ["2024-01-05T13:00:00Z", "2024-01-05T14:00:00Z"],
			"required_slots": "two"
		}
	}`))
	require.NotNil(t, meta)
	assert.Equal(t, 2, meta.RequiredSlots)

	// required_slots below 1 with pending slots: floored at 1.
	meta = ParseRecoveryMetadata([]byte(`{
		"blackout_recovery": {
			"pending_slot_start_times": ["2024-01-05T13:00:00Z"],
			"required_slots": -4
		}
	}`))
	require.NotNil(t, meta)
	assert.Equal(t, 1, meta.RequiredSlots)

	// Invalid minute bounds become nil.
	meta = ParseRecoveryMetadata([]byte(`{
		"blackout_recovery": {
			"required_slots": 1,
			"window_start_minutes": -10,
			"window_end_minutes": "late"
		}
	}`))
	require.NotNil(t, meta)
	assert.Nil(t, meta.WindowStartMinutes)
	assert.Nil(t, meta.WindowEndMinutes)
	assert.Empty(t, meta.PendingSlotStartTimes)
}
