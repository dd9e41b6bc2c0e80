package get_reschedule_context

// Request identifies the registration and the calling user
type Request struct {
	RegistrationID int64
	UserID         int64
}

// Response is the interpreted reschedule entitlement of the registration
type Response struct {
	RegistrationID        int64    `json:"registrationId"`
	PartiallyCancelled    bool     `json:"partiallyCancelled"`
	FullyCancelled        bool     `json:"fullyCancelled"`
	CanReschedule         bool     `json:"canReschedule"`
	RequiredSlots         int      `json:"requiredSlots"`
	RequiredHours         int      `json:"requiredHours"`
	PendingSlotStartTimes []string `json:"pendingSlotStartTimes,omitempty"`
	WindowStartMinutes    *int     `json:"windowStartMinutes,omitempty"`
	WindowEndMinutes      *int     `json:"windowEndMinutes,omitempty"`
	DisplayReason         string   `json:"displayReason,omitempty"`
}
