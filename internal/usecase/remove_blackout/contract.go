package remove_blackout

import (
	"context"

	"github.com/craftday/workshop-booking-service/internal/domain"
)

// BlackoutRepository loads and deletes the rule
type BlackoutRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BlackoutRule, error)
	Delete(ctx context.Context, id int64) error
}

// AvailabilityCache is invalidated because the masked slots reopen
type AvailabilityCache interface {
	Invalidate(ctx context.Context, configID int64)
}

// Logger is the logging surface the use case needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
