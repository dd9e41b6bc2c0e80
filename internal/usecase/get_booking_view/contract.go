package get_booking_view

import (
	"context"
	"time"

	"github.com/craftday/workshop-booking-service/internal/domain"
	registrationRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/registration"
)

// ConfigRepository is the workshop config storage surface the use case needs
type ConfigRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WorkshopConfig, error)
}

// RegistrationRepository provides the per-slot booked counts
type RegistrationRepository interface {
	GetOccupancyByRange(ctx context.Context, configID int64, from, to time.Time) ([]registrationRepo.SlotOccupancy, error)
}

// BlackoutRepository provides the blackout rules covering the window
type BlackoutRepository interface {
	GetByConfigAndRange(ctx context.Context, configID int64, from, to time.Time) ([]domain.BlackoutRule, error)
}

// AvailabilityCache fronts the materialized day records. Get reports a
// miss via error; Set and Invalidate are best-effort.
type AvailabilityCache interface {
	Get(ctx context.Context, configID int64, from time.Time) ([]domain.DaySlotRecord, error)
	Set(ctx context.Context, configID int64, from time.Time, days []domain.DaySlotRecord)
}

// TimeProvider supplies the current time (swappable in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface the use case needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time provider
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
