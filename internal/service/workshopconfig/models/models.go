package models

import (
	"time"

	"github.com/craftday/workshop-booking-service/internal/domain"
)

// Request models

// TierInput is one pricing tier in an update request
type TierInput struct {
	Hours           int     `json:"hours"`
	PricePerPerson  float64 `json:"pricePerPerson"`
	PiecesPerPerson int     `json:"piecesPerPerson"`
	SortOrder       int     `json:"sortOrder"`
	IsActive        bool    `json:"isActive"`
}

// CreateConfigRequest carries a new workshop offering. Zero schedule
// fields fall back to the platform defaults.
type CreateConfigRequest struct {
	Title                string      `json:"title"`
	Timezone             string      `json:"timezone"`
	OpeningHour          int         `json:"openingHour"`
	ClosingHour          int         `json:"closingHour"`
	SlotDurationMinutes  int         `json:"slotDurationMinutes"`
	SlotCapacity         int         `json:"slotCapacity"`
	BookingWindowDays    int         `json:"bookingWindowDays"`
	AutoCancelOnBlackout bool        `json:"autoCancelOnBlackout"`
	Tiers                []TierInput `json:"tiers,omitempty"`
}

// UpdateConfigRequest carries the editable schedule and pricing fields.
// Nil pointer fields keep the stored value.
type UpdateConfigRequest struct {
	Title                *string     `json:"title,omitempty"`
	Timezone             *string     `json:"timezone,omitempty"`
	OpeningHour          *int        `json:"openingHour,omitempty"`
	ClosingHour          *int        `json:"closingHour,omitempty"`
	SlotDurationMinutes  *int        `json:"slotDurationMinutes,omitempty"`
	SlotCapacity         *int        `json:"slotCapacity,omitempty"`
	BookingWindowDays    *int        `json:"bookingWindowDays,omitempty"`
	IsActive             *bool       `json:"isActive,omitempty"`
	AutoCancelOnBlackout *bool       `json:"autoCancelOnBlackout,omitempty"`
	Tiers                []TierInput `json:"tiers,omitempty"`
}

// Response models

// TierResponse is one pricing tier in API form
type TierResponse struct {
	ID              int64   `json:"id"`
	Hours           int     `json:"hours"`
	PricePerPerson  float64 `json:"pricePerPerson"`
	PiecesPerPerson int     `json:"piecesPerPerson"`
	SortOrder       int     `json:"sortOrder"`
	IsActive        bool    `json:"isActive"`
}

// ConfigResponse is the workshop config in API form
type ConfigResponse struct {
	ID                   int64          `json:"id"`
	Title                string         `json:"title"`
	Timezone             string         `json:"timezone"`
	OpeningHour          int            `json:"openingHour"`
	ClosingHour          int            `json:"closingHour"`
	SlotDurationMinutes  int            `json:"slotDurationMinutes"`
	SlotCapacity         int            `json:"slotCapacity"`
	BookingWindowDays    int            `json:"bookingWindowDays"`
	IsActive             bool           `json:"isActive"`
	AutoCancelOnBlackout bool           `json:"autoCancelOnBlackout"`
	Tiers                []TierResponse `json:"tiers"`
	CreatedAt            string         `json:"createdAt"`
	UpdatedAt            string         `json:"updatedAt"`
}

// FromDomainConfig converts a domain config to API form
func FromDomainConfig(cfg *domain.WorkshopConfig) *ConfigResponse {
	tiers := make([]TierResponse, 0, len(cfg.Tiers))
	for _, t := range cfg.Tiers {
		tiers = append(tiers, TierResponse{
			ID:              t.ID,
			Hours:           t.Hours,
			PricePerPerson:  t.PricePerPerson,
			PiecesPerPerson: t.PiecesPerPerson,
			SortOrder:       t.SortOrder,
			IsActive:        t.IsActive,
		})
	}

	return &ConfigResponse{
		ID:                   cfg.ID,
		Title:                cfg.Title,
		Timezone:             cfg.Timezone,
		OpeningHour:          cfg.OpeningHour,
		ClosingHour:          cfg.ClosingHour,
		SlotDurationMinutes:  cfg.SlotDurationMinutes,
		SlotCapacity:         cfg.SlotCapacity,
		BookingWindowDays:    cfg.BookingWindowDays,
		IsActive:             cfg.IsActive,
		AutoCancelOnBlackout: cfg.AutoCancelOnBlackout,
		Tiers:                tiers,
		CreatedAt:            cfg.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:            cfg.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// ApplyToDomain merges the request into a copy of the stored config
func (r *UpdateConfigRequest) ApplyToDomain(cfg *domain.WorkshopConfig) *domain.WorkshopConfig {
	updated := *cfg

	if r.Title != nil {
		updated.Title = *r.Title
	}
	if r.Timezone != nil {
		updated.Timezone = *r.Timezone
	}
	if r.OpeningHour != nil {
		updated.OpeningHour = *r.OpeningHour
	}
	if r.ClosingHour != nil {
		updated.ClosingHour = *r.ClosingHour
	}
	if r.SlotDurationMinutes != nil {
		updated.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.SlotCapacity != nil {
		updated.SlotCapacity = *r.SlotCapacity
	}
	if r.BookingWindowDays != nil {
		updated.BookingWindowDays = *r.BookingWindowDays
	}
	if r.IsActive != nil {
		updated.IsActive = *r.IsActive
	}
	if r.AutoCancelOnBlackout != nil {
		updated.AutoCancelOnBlackout = *r.AutoCancelOnBlackout
	}

	if r.Tiers != nil {
		tiers := make([]domain.PricingTier, 0, len(r.Tiers))
		for _, t := range r.Tiers {
			tiers = append(tiers, domain.PricingTier{
				ConfigID:        cfg.ID,
				Hours:           t.Hours,
				PricePerPerson:  t.PricePerPerson,
				PiecesPerPerson: t.PiecesPerPerson,
				SortOrder:       t.SortOrder,
				IsActive:        t.IsActive,
			})
		}
		updated.Tiers = tiers
	}

	return &updated
}

// ToDomain builds the domain config for creation. New configs start active.
func (r *CreateConfigRequest) ToDomain() *domain.WorkshopConfig {
	cfg := &domain.WorkshopConfig{
		Title:                r.Title,
		Timezone:             r.Timezone,
		OpeningHour:          r.OpeningHour,
		ClosingHour:          r.ClosingHour,
		SlotDurationMinutes:  r.SlotDurationMinutes,
		SlotCapacity:         r.SlotCapacity,
		BookingWindowDays:    r.BookingWindowDays,
		IsActive:             true,
		AutoCancelOnBlackout: r.AutoCancelOnBlackout,
	}

	if cfg.SlotDurationMinutes == 0 {
		cfg.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if cfg.SlotCapacity == 0 {
		cfg.SlotCapacity = domain.DefaultSlotCapacity
	}
	if cfg.BookingWindowDays == 0 {
		cfg.BookingWindowDays = domain.DefaultBookingWindowDays
	}

	tiers := make([]domain.PricingTier, 0, len(r.Tiers))
	for _, t := range r.Tiers {
		tiers = append(tiers, domain.PricingTier{
			Hours:           t.Hours,
			PricePerPerson:  t.PricePerPerson,
			PiecesPerPerson: t.PiecesPerPerson,
			SortOrder:       t.SortOrder,
			IsActive:        t.IsActive,
		})
	}
	cfg.Tiers = tiers

	return cfg
}
