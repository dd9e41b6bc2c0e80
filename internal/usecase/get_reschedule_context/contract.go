package get_reschedule_context

import (
	"context"

	"github.com/craftday/workshop-booking-service/internal/domain"
)

// RegistrationRepository loads the registration being interpreted
type RegistrationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Registration, error)
}

// ConfigRepository resolves the owning workshop config
type ConfigRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WorkshopConfig, error)
}

// Logger is the logging surface the use case needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
