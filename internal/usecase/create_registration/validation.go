package create_registration

import (
	"fmt"

	"github.com/craftday/workshop-booking-service/internal/domain"
)

// validateRequest checks the request shape before any storage access
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ConfigID <= 0 {
		return fmt.Errorf("%w: configID must be positive", ErrInvalidInput)
	}

	if req.Participants < 1 {
		return fmt.Errorf("%w: at least one participant is required", ErrInvalidInput)
	}
	if req.Participants > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: participants must not exceed %d", ErrInvalidInput, domain.MaxSlotCapacity)
	}

	if len(req.Slots) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}

	return nil
}
