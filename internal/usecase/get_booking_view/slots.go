package get_booking_view

import (
	"context"
	"fmt"
	"time"

	"github.com/craftday/workshop-booking-service/internal/availability"
	"github.com/craftday/workshop-booking-service/internal/calendar"
	"github.com/craftday/workshop-booking-service/internal/domain"
)

// dayRecords returns the materialized slots of the booking window, cache
// first. A miss rebuilds from occupancy counts and blackout rules and
// repopulates the cache.
func (uc *UseCase) dayRecords(ctx context.Context, cfg *domain.WorkshopConfig, loc *time.Location, now time.Time) ([]domain.DaySlotRecord, error) {
	localNow := now.In(loc)
	from := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)

	if days, err := uc.cache.Get(ctx, cfg.ID, from); err == nil {
		return days, nil
	}

	windowDays := cfg.BookingWindowDays
	if windowDays < 1 {
		windowDays = domain.DefaultBookingWindowDays
	}
	to := from.AddDate(0, 0, windowDays)

	occupancyRows, err := uc.registrationRepo.GetOccupancyByRange(ctx, cfg.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get occupancy: %v", ErrInternal, err)
	}
	occupancy := make(map[string]int, len(occupancyRows))
	for _, row := range occupancyRows {
		occupancy[calendar.CanonicalizeTime(row.SlotStartAt)] += row.Participants
	}

	rules, err := uc.blackoutRepo.GetByConfigAndRange(ctx, cfg.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get blackout rules: %v", ErrInternal, err)
	}

	days := availability.MaterializeWindow(cfg, loc, now, occupancy, rules)
	uc.cache.Set(ctx, cfg.ID, from, days)

	return days, nil
}
