// Package selection models the in-progress slot selection of one booking or
// reschedule session: an ordered, de-duplicated set of slot-start instants.
package selection

import (
	"errors"
	"fmt"

	"github.com/craftday/workshop-booking-service/internal/calendar"
)

var (
	// ErrInvalidInstant is returned when a slot start cannot be parsed as an
	// ISO instant.
	ErrInvalidInstant = errors.New("selection: invalid date/time")

	// ErrLimitReached is returned when adding a slot would exceed the
	// session's slot limit (remaining capacity or reschedule quota).
	// The selection is left unchanged.
	ErrLimitReached = errors.New("selection: slot limit reached")
)

// NoLimit disables the slot-count ceiling of a selection.
const NoLimit = 0

// Selection is an ordered, de-duplicated set of canonical slot-start
// instants. Mutations go through Add/Remove/Replace/Clear only; every entry
// is stored in canonical RFC3339 UTC form so membership checks are exact.
type Selection struct {
	starts []string
	limit  int // max entries, NoLimit = unbounded
}

// New returns an empty selection with no slot limit.
func New() *Selection {
	return &Selection{}
}

// NewWithLimit returns an empty selection that rejects additions past limit.
// Used in reschedule mode where the owed slot count is fixed.
func NewWithLimit(limit int) *Selection {
	return &Selection{limit: limit}
}

// FromInstants builds a selection from raw ISO instants, canonicalizing and
// de-duplicating in order. Any unparseable entry fails the whole build.
func FromInstants(instants []string) (*Selection, error) {
	sel := New()
	for _, raw := range instants {
		if err := sel.Add(raw); err != nil {
			return nil, err
		}
	}
	return sel, nil
}

// Add canonicalizes the instant and appends it if not already present.
// Returns ErrInvalidInstant for unparseable input and ErrLimitReached when
// the session's slot quota is exhausted; the selection is unchanged on error.
func (s *Selection) Add(rawStart string) error {
	canonical, err := calendar.CanonicalInstant(rawStart)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInstant, err)
	}

	if s.contains(canonical) {
		return nil
	}

	if s.limit != NoLimit && len(s.starts) >= s.limit {
		return fmt.Errorf("%w: at most %d slots can be selected", ErrLimitReached, s.limit)
	}

	s.starts = append(s.starts, canonical)
	return nil
}

// Remove drops the instant from the selection if present.
func (s *Selection) Remove(rawStart string) error {
	canonical, err := calendar.CanonicalInstant(rawStart)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInstant, err)
	}

	for i, existing := range s.starts {
		if existing == canonical {
			s.starts = append(s.starts[:i], s.starts[i+1:]...)
			return nil
		}
	}
	return nil
}

// Replace swaps the whole selection for the given instants atomically:
// if any entry is invalid or the limit would be exceeded, the current
// selection is kept.
func (s *Selection) Replace(rawStarts []string) error {
	replacement := &Selection{limit: s.limit}
	for _, raw := range rawStarts {
		if err := replacement.Add(raw); err != nil {
			return err
		}
	}
	s.starts = replacement.starts
	return nil
}

// Clear empties the selection. Called on config switch and after submission.
func (s *Selection) Clear() {
	s.starts = nil
}

// Contains reports membership of the canonical form of the instant.
func (s *Selection) Contains(rawStart string) bool {
	canonical, err := calendar.CanonicalInstant(rawStart)
	if err != nil {
		return false
	}
	return s.contains(canonical)
}

// ContainsCanonical reports membership of an already-canonical instant.
func (s *Selection) ContainsCanonical(canonical string) bool {
	return s.contains(canonical)
}

// Len returns the number of selected slots. By construction of the tier
// system each selected slot contributes exactly one hour to tier matching,
// so this is also the totalHours fed to the pricing resolver.
func (s *Selection) Len() int {
	return len(s.starts)
}

// Items returns the canonical instants in selection order.
func (s *Selection) Items() []string {
	out := make([]string, len(s.starts))
	copy(out, s.starts)
	return out
}

func (s *Selection) contains(canonical string) bool {
	for _, existing := range s.starts {
		if existing == canonical {
			return true
		}
	}
	return false
}
