package workshopconfig

import (
	"context"

	"github.com/craftday/workshop-booking-service/internal/domain"
)

// ConfigRepository is the workshop config storage surface the service needs
type ConfigRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WorkshopConfig, error)
	Create(ctx context.Context, cfg *domain.WorkshopConfig) (*domain.WorkshopConfig, error)
	Update(ctx context.Context, id int64, cfg *domain.WorkshopConfig) (*domain.WorkshopConfig, error)
}

// AvailabilityCache is invalidated when the schedule shape changes
type AvailabilityCache interface {
	Invalidate(ctx context.Context, configID int64)
}

// Logger is the logging surface the service needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
