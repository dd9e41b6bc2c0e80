package create_registration

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

// RegistrationRepository persists registrations and provides occupancy counts
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error)
	GetOccupancyByRange(ctx context.Context, configID int64, from, to time.Time) ([]registrationRepo.SlotOccupancy, error)
}

// BlackoutRepository provides the blackout rules covering the window
type BlackoutRepository interface {
	GetByConfigAndRange(ctx context.Context, configID int64, from, to time.Time) ([]domain.BlackoutRule, error)
}

// AvailabilityCache is invalidated after a successful booking
type AvailabilityCache interface {
	Invalidate(ctx context.Context, configID int64)
}

// TransactionManager runs the availability re-check and the insert in one
// serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
