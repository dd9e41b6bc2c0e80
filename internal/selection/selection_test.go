package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCanonicalizesAndDeduplicates(t *testing.T) {
	sel := New()

	require.NoError(t, sel.Add("2025-03-01T10:00:00+02:00"))
	// Same instant in UTC notation is a duplicate, not a second entry.
	require.NoError(t, sel.Add("2025-03-01T08:00:00Z"))
	require.NoError(t, sel.Add("2025-03-01T09:00:00Z"))

	assert.Equal(t, 2, sel.Len())
	assert.Equal(t, []string{"2025-03-01T08:00:00Z", "2025-03-01T09:00:00Z"}, sel.Items())

	assert.True(t, sel.Contains("2025-03-01T10:00:00+02:00"))
	assert.True(t, sel.ContainsCanonical("2025-03-01T08:00:00Z"))
	assert.False(t, sel.Contains("2025-03-01T11:00:00Z"))
}

func TestAddRejectsInvalidInstant(t *testing.T) {
	sel := New()

	err := sel.Add("tomorrow at noon")
	require.ErrorIs(t, err, ErrInvalidInstant)
	assert.Equal(t, 0, sel.Len())
}

func TestAddRejectsOverLimitLeavingSelectionUnchanged(t *testing.T) {
	sel := NewWithLimit(2)

	require.NoError(t, sel.Add("2025-03-01T08:00:00Z"))
	require.NoError(t, sel.Add("2025-03-01T09:00:00Z"))

	err := sel.Add("2025-03-01T10:00:00Z")
	require.ErrorIs(t, err, ErrLimitReached)

	assert.Equal(t, 2, sel.Len())
	assert.Equal(t, []string{"2025-03-01T08:00:00Z", "2025-03-01T09:00:00Z"}, sel.Items())

	// Re-adding an existing instant is a no-op, not a limit violation.
	require.NoError(t, sel.Add("2025-03-01T09:00:00Z"))
	assert.Equal(t, 2, sel.Len())
}

func TestRemove(t *testing.T) {
	sel := New()
	require.NoError(t, sel.Add("2025-03-01T08:00:00Z"))
	require.NoError(t, sel.Add("2025-03-01T09:00:00Z"))

	require.NoError(t, sel.Remove("2025-03-01T10:00:00+02:00")) // 08:00Z
	assert.Equal(t, []string{"2025-03-01T09:00:00Z"}, sel.Items())

	// Removing an absent instant is not an error.
	require.NoError(t, sel.Remove("2025-03-01T12:00:00Z"))
	assert.Equal(t, 1, sel.Len())
}

func TestReplaceIsAtomic(t *testing.T) {
	sel := NewWithLimit(2)
	require.NoError(t, sel.Add("2025-03-01T08:00:00Z"))

	// One bad entry fails the whole replacement; the original set survives.
	err := sel.Replace([]string{"2025-03-01T09:00:00Z", "bogus"})
	require.ErrorIs(t, err, ErrInvalidInstant)
	assert.Equal(t, []string{"2025-03-01T08:00:00Z"}, sel.Items())

	err = sel.Replace([]string{"2025-03-01T09:00:00Z", "2025-03-01T10:00:00Z", "2025-03-01T11:00:00Z"})
	require.ErrorIs(t, err, ErrLimitReached)
	assert.Equal(t, []string{"2025-03-01T08:00:00Z"}, sel.Items())

	require.NoError(t, sel.Replace([]string{"2025-03-01T10:00:00Z"}))
	assert.Equal(t, []string{"2025-03-01T10:00:00Z"}, sel.Items())
}

func TestClear(t *testing.T) {
	sel := New()
	require.NoError(t, sel.Add("2025-03-01T08:00:00Z"))

	sel.Clear()
	assert.Equal(t, 0, sel.Len())
	assert.Empty(t, sel.Items())
}

func TestFromInstants(t *testing.T) {
	sel, err := FromInstants([]string{"2025-03-01T10:00:00+02:00", "2025-03-01T08:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, 1, sel.Len())

	_, err = FromInstants([]string{"2025-03-01T08:00:00Z", "nope"})
	require.ErrorIs(t, err, ErrInvalidInstant)
}
