package domain

import "time"

// WorkshopConfig represents the operating schedule and booking rules
// for a single daily-workshop offering.
// Opening/closing hours are local to the workshop timezone; slots are laid
// out on a fixed grid between them with SlotDurationMinutes step.
type WorkshopConfig struct {
	ID                   int64
	Title                string
	Timezone             string // IANA name, e.g. "Asia/Jerusalem"
	OpeningHour          int    // 0-23, OpeningHour < ClosingHour
	ClosingHour          int    // 0-23
	SlotDurationMinutes  int
	SlotCapacity         int // participant ceiling per slot
	BookingWindowDays    int // how far ahead the calendar opens
	IsActive             bool
	AutoCancelOnBlackout bool
	Tiers                []PricingTier // ordered by SortOrder
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PricingTier is a duration block sold as one unit.
// Multiple tiers may intentionally share the same Hours value; the pricing
// resolver treats the first match for a given Hours as canonical on the
// fallback path.
type PricingTier struct {
	ID              int64
	ConfigID        int64
	Hours           int
	PricePerPerson  float64
	PiecesPerPerson int
	SortOrder       int
	IsActive        bool
}

// ActiveTiers returns the tiers usable for pricing, in stored order.
func (c *WorkshopConfig) ActiveTiers() []PricingTier {
	active := make([]PricingTier, 0, len(c.Tiers))
	for _, t := range c.Tiers {
		if t.IsActive && t.Hours > 0 {
			active = append(active, t)
		}
	}
	return active
}

// EffectiveSlotCapacity returns the per-slot participant ceiling, never below 1.
func (c *WorkshopConfig) EffectiveSlotCapacity() int {
	if c.SlotCapacity < 1 {
		return 1
	}
	return c.SlotCapacity
}

// SlotsPerDay returns how many slots fit between opening and closing hours.
func (c *WorkshopConfig) SlotsPerDay() int {
	if c.SlotDurationMinutes <= 0 {
		return 0
	}
	return (c.ClosingHour - c.OpeningHour) * 60 / c.SlotDurationMinutes
}

// Location resolves the config timezone against the IANA database.
func (c *WorkshopConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
