package reschedule_registration

// Request commits one reschedule: the picked replacement slot starts must
// number exactly the owed slots.
type Request struct {
	RegistrationID int64
	UserID         int64
	Slots          []string // raw ISO slot-start instants
}

// SlotResponse is one slot of the rescheduled registration
type SlotResponse struct {
	SlotStartAt string `json:"slotStartAt"` // RFC3339 UTC
	SlotEndAt   string `json:"slotEndAt"`
}

// Response is the registration after the committed reschedule
type Response struct {
	ID         int64          `json:"id"`
	Reference  string         `json:"reference"`
	UserID     int64          `json:"userId"`
	ConfigID   int64          `json:"configId"`
	Slots      []SlotResponse `json:"slots"`
	TotalHours int            `json:"totalHours"`
	SlotsCount int            `json:"slotsCount"`
	Status     string         `json:"status"`
}
