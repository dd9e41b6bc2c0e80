package registrations

import (
	"context"

	"github.com/craftday/workshop-booking-service/internal/domain"
)

// RegistrationRepository is the registration storage surface the service needs
type RegistrationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Registration, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.RegistrationStatus) ([]*domain.Registration, error)
	Cancel(ctx context.Context, id int64, reason string, byUserID *int64, ruleID *int64) error
}

// AvailabilityCache is invalidated when a cancellation frees capacity
type AvailabilityCache interface {
	Invalidate(ctx context.Context, configID int64)
}

// Logger is the logging surface the service needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
