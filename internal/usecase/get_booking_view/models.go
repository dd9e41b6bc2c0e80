package get_booking_view

// Request describes one rendering of the booking view.
// SelectedSlots carries the raw slot-start instants accumulated so far;
// SlotLimit caps the selection size in reschedule mode (0 = unlimited).
type Request struct {
	ConfigID      int64
	Month         string   // "YYYY-MM", empty = month of the active day
	SelectedDate  string   // "YYYY-MM-DD", empty = first day with slots
	SelectedSlots []string // raw ISO instants
	Participants  int      // requested count, clamped to the ceiling
	SlotLimit     int      // reschedule quota, 0 = unlimited
}

// GridCell is one cell of the 35-cell month grid
type GridCell struct {
	Date             string `json:"date"`
	DayOfMonth       int    `json:"dayOfMonth"`
	IsInCurrentMonth bool   `json:"isInCurrentMonth"`
	IsSelected       bool   `json:"isSelected"`
	HasSelectedSlots bool   `json:"hasSelectedSlots"`
	IsSelectable     bool   `json:"isSelectable"`
}

// SlotView is one slot of the active day
type SlotView struct {
	StartAt           string `json:"startAt"` // RFC3339 UTC
	EndAt             string `json:"endAt"`
	IsAvailable       bool   `json:"isAvailable"`
	RemainingCapacity int    `json:"remainingCapacity"`
	Reason            string `json:"reason,omitempty"`
	IsSelected        bool   `json:"isSelected"`
}

// DateTab summarizes the selection on one day
type DateTab struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Hours int    `json:"hours"`
}

// AppliedTier is one tier application in the resolved pricing
type AppliedTier struct {
	TierID int64 `json:"tierId"`
	Count  int   `json:"count"`
}

// PricingView is the resolved pricing of the current selection
type PricingView struct {
	TotalHours      int           `json:"totalHours"`
	PricePerPerson  float64       `json:"pricePerPerson"`
	PiecesPerPerson int           `json:"piecesPerPerson"`
	Label           string        `json:"label"`
	AppliedTiers    []AppliedTier `json:"appliedTiers"`
}

// Response is the assembled booking view
type Response struct {
	ConfigID              int64       `json:"configId"`
	Title                 string      `json:"title"`
	Timezone              string      `json:"timezone"`
	Month                 string      `json:"month"`
	Grid                  []GridCell  `json:"grid"`
	ActiveDate            string      `json:"activeDate"`
	Slots                 []SlotView  `json:"slots"`
	SelectedDates         []DateTab   `json:"selectedDates"`
	Pricing               PricingView `json:"pricing"`
	MaxParticipants       int         `json:"maxParticipants"`
	EffectiveParticipants int         `json:"effectiveParticipants"`
}
