package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/craftday/workshop-booking-service/internal/domain"
)

var (
	// ErrInvalidStatus is returned for an unknown status string
	ErrInvalidStatus = errors.New("invalid registration status")
)

// Request models

// GetUserRegistrationsRequest filters the registrations of one user
type GetUserRegistrationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// CancelRegistrationRequest cancels the caller's own registration
type CancelRegistrationRequest struct {
	UserID int64  `json:"userId"`
	Reason string `json:"reason"`
}

// Response models

// RegistrationSlotResponse is one booked slot in API form
type RegistrationSlotResponse struct {
	SlotStartAt string `json:"slotStartAt"` // RFC3339 UTC
	SlotEndAt   string `json:"slotEndAt"`
}

// RegistrationResponse is the registration in API form
type RegistrationResponse struct {
	ID              int64                      `json:"id"`
	Reference       string                     `json:"reference"`
	UserID          int64                      `json:"userId"`
	ConfigID        int64                      `json:"configId"`
	Participants    int                        `json:"participants"`
	Slots           []RegistrationSlotResponse `json:"slots"`
	TotalHours      int                        `json:"totalHours"`
	SlotsCount      int                        `json:"slotsCount"`
	PricingSnapshot json.RawMessage            `json:"pricingSnapshot,omitempty"`
	Status          string                     `json:"status"`
	CancelledAt     *string                    `json:"cancelledAt,omitempty"`
	CancelledReason *string                    `json:"cancelledReason,omitempty"`
	CreatedAt       string                     `json:"createdAt"`
	UpdatedAt       string                     `json:"updatedAt"`
}

// RegistrationListResponse wraps a list of registrations
type RegistrationListResponse struct {
	Registrations []RegistrationResponse `json:"registrations"`
	Total         int                    `json:"total"`
}

// ToDomainRegistrationStatus validates and converts a status string
func ToDomainRegistrationStatus(s string) (domain.RegistrationStatus, error) {
	status := domain.RegistrationStatus(s)
	switch status {
	case domain.StatusPending, domain.StatusApproved, domain.StatusPaid,
		domain.StatusConfirmed, domain.StatusRejected, domain.StatusCancelled:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

// FromDomainRegistration converts a domain registration to API form
func FromDomainRegistration(reg *domain.Registration) *RegistrationResponse {
	slots := make([]RegistrationSlotResponse, 0, len(reg.Slots))
	for _, slot := range reg.Slots {
		slots = append(slots, RegistrationSlotResponse{
			SlotStartAt: slot.SlotStartAt.UTC().Format(time.RFC3339),
			SlotEndAt:   slot.SlotEndAt.UTC().Format(time.RFC3339),
		})
	}

	resp := &RegistrationResponse{
		ID:              reg.ID,
		Reference:       reg.Reference,
		UserID:          reg.UserID,
		ConfigID:        reg.ConfigID,
		Participants:    reg.Participants,
		Slots:           slots,
		TotalHours:      reg.TotalHours,
		SlotsCount:      reg.SlotsCount,
		PricingSnapshot: reg.PricingSnapshot,
		Status:          string(reg.Status),
		CancelledReason: reg.CancelledReason,
		CreatedAt:       reg.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       reg.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if reg.CancelledAt != nil {
		formatted := reg.CancelledAt.UTC().Format(time.RFC3339)
		resp.CancelledAt = &formatted
	}

	return resp
}

// FromDomainRegistrationList converts a list of domain registrations
func FromDomainRegistrationList(regs []*domain.Registration) *RegistrationListResponse {
	out := make([]RegistrationResponse, 0, len(regs))
	for _, reg := range regs {
		out = append(out, *FromDomainRegistration(reg))
	}
	return &RegistrationListResponse{Registrations: out, Total: len(out)}
}
