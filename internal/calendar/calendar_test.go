package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey(t *testing.T) {
	jerusalem, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)

	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 23:30 UTC is already the next day in Jerusalem and still the same
	// day in New York.
	instant := time.Date(2025, time.March, 10, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-11", DateKey(instant, jerusalem))
	assert.Equal(t, "2025-03-10", DateKey(instant, newYork))
	assert.Equal(t, "2025-03-10", DateKey(instant, time.UTC))
}

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    time.Time
		wantErr bool
	}{
		{
			name: "full key",
			key:  "2025-03-10",
			want: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "year and month default day",
			key:  "2025-07",
			want: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "year only defaults month and day",
			key:  "2025",
			want: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "empty",
			key:     "",
			wantErr: true,
		},
		{
			name:    "garbage",
			key:     "not-a-date",
			wantErr: true,
		},
		{
			name:    "month out of range",
			key:     "2025-13-01",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateKey(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestDateKeyRoundTrip(t *testing.T) {
	jerusalem, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)

	instants := []time.Time{
		time.Date(2025, time.March, 10, 23, 30, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 31, 22, 0, 0, 0, time.UTC),
	}

	for _, instant := range instants {
		key := DateKey(instant, jerusalem)

		parsed, err := ParseDateKey(key)
		require.NoError(t, err)

		// Formatting the parsed calendar date again must reproduce the key,
		// regardless of the time-of-day lost in the round trip.
		assert.Equal(t, key, parsed.Format("2006-01-02"))
	}
}

func TestMinutesOfDay(t *testing.T) {
	jerusalem, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)

	// 11:45 UTC = 13:45 in Jerusalem (IST, +02).
	instant := time.Date(2025, time.January, 15, 11, 45, 0, 0, time.UTC)

	assert.Equal(t, 13*60+45, MinutesOfDay(instant, jerusalem))
	assert.Equal(t, 11*60+45, MinutesOfDay(instant, time.UTC))

	midnight := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, MinutesOfDay(midnight, time.UTC))

	lastMinute := time.Date(2025, time.January, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, 1439, MinutesOfDay(lastMinute, time.UTC))
}

func TestCanonicalInstant(t *testing.T) {
	// Different textual forms of the same instant canonicalize identically.
	utc, err := CanonicalInstant("2025-03-01T08:00:00Z")
	require.NoError(t, err)

	offset, err := CanonicalInstant("2025-03-01T10:00:00+02:00")
	require.NoError(t, err)

	fractional, err := CanonicalInstant("2025-03-01T08:00:00.000Z")
	require.NoError(t, err)

	assert.Equal(t, "2025-03-01T08:00:00Z", utc)
	assert.Equal(t, utc, offset)
	assert.Equal(t, utc, fractional)

	_, err = CanonicalInstant("03/01/2025 08:00")
	require.Error(t, err)

	_, err = CanonicalInstant("")
	require.Error(t, err)
}
