package create_registration

import (
	createRegistration "github.com/craftday/workshop-booking-service/internal/usecase/create_registration"
)

// CreateRegistrationRequest is the HTTP body of a booking submission
type CreateRegistrationRequest struct {
	ConfigID     int64    `json:"configId"`
	Participants int      `json:"participants"`
	Slots        []string `json:"slots"`
}

// ToUseCaseRequest converts the HTTP request into the use case model
func (r *CreateRegistrationRequest) ToUseCaseRequest(userID int64) *createRegistration.Request {
	return &createRegistration.Request{
		UserID:       userID,
		ConfigID:     r.ConfigID,
		Participants: r.Participants,
		Slots:        r.Slots,
	}
}
