package apply_blackout

import (
	"fmt"

	"github.com/craftday/workshop-booking-service/internal/calendar"
	"github.com/craftday/workshop-booking-service/internal/domain"
)

const minutesPerDay = 1440

// validateRequest checks the request shape and normalizes the minute window
func validateRequest(req *Request) error {
	if req.ConfigID <= 0 {
		return fmt.Errorf("%w: configID must be positive", ErrInvalidInput)
	}

	if _, err := calendar.ParseDateKey(req.Date); err != nil {
		return fmt.Errorf("%w: date must look like YYYY-MM-DD", ErrInvalidInput)
	}

	if req.EndMinutes == 0 {
		req.EndMinutes = minutesPerDay
	}
	if req.StartMinutes < 0 || req.EndMinutes > minutesPerDay || req.StartMinutes >= req.EndMinutes {
		return fmt.Errorf("%w: minute window must satisfy 0 <= start < end <= %d", ErrInvalidInput, minutesPerDay)
	}

	if len(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}
