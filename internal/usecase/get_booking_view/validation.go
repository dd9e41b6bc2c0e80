package get_booking_view

import (
	"fmt"
	"time"

	"github.com/craftday/workshop-booking-service/internal/domain"
)

// validateRequest checks the request shape before any storage access
func validateRequest(req *Request) error {
	if req.ConfigID <= 0 {
		return fmt.Errorf("%w: configID must be positive", ErrInvalidInput)
	}

	if req.Month != "" {
		if _, err := time.Parse(domain.MonthFormat, req.Month); err != nil {
			return fmt.Errorf("%w: month must look like YYYY-MM", ErrInvalidInput)
		}
	}

	if req.Participants < 0 {
		return fmt.Errorf("%w: participants must not be negative", ErrInvalidInput)
	}

	if req.SlotLimit < 0 {
		return fmt.Errorf("%w: slot limit must not be negative", ErrInvalidInput)
	}

	return nil
}
