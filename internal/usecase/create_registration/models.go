package create_registration

import "encoding/json"

// Request carries one booking submission
type Request struct {
	UserID       int64
	ConfigID     int64
	Participants int
	Slots        []string // raw ISO slot-start instants
}

// SlotResponse is one booked slot in the response
type SlotResponse struct {
	SlotStartAt string `json:"slotStartAt"` // RFC3339 UTC
	SlotEndAt   string `json:"slotEndAt"`
}

// Response is the created registration
type Response struct {
	ID              int64           `json:"id"`
	Reference       string          `json:"reference"`
	UserID          int64           `json:"userId"`
	ConfigID        int64           `json:"configId"`
	Participants    int             `json:"participants"`
	Slots           []SlotResponse  `json:"slots"`
	TotalHours      int             `json:"totalHours"`
	SlotsCount      int             `json:"slotsCount"`
	PricingSnapshot json.RawMessage `json:"pricingSnapshot"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"createdAt"`
}

// pricingSnapshot is the pricing state frozen into the registration at
// booking time. The blackout recovery block is added later, on partial
// system cancellation, never here.
type pricingSnapshot struct {
	TotalHours      int                   `json:"total_hours"`
	PricePerPerson  float64               `json:"price_per_person"`
	PiecesPerPerson int                   `json:"pieces_per_person"`
	Label           string                `json:"label"`
	AppliedTiers    []appliedTierSnapshot `json:"applied_tiers"`
	ResolvedAt      string                `json:"resolved_at"` // RFC3339 UTC
}

type appliedTierSnapshot struct {
	TierID int64 `json:"tier_id"`
	Count  int   `json:"count"`
}
