package registration

import (
	"time"

	"github.com/craftday/workshop-booking-service/pkg/txmanager"
)

// DBExecutor is the query surface the repository runs on
type DBExecutor = txmanager.Executor

// SlotOccupancy is the number of participants already booked into one slot
// start, summed over active registrations.
type SlotOccupancy struct {
	SlotStartAt  time.Time
	Participants int
}
