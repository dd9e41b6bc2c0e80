package apply_blackout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/craftday/workshop-booking-service/internal/domain"
)

// ConfigRepository is the workshop config storage surface the use case needs
type ConfigRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WorkshopConfig, error)
}

// BlackoutRepository persists the created rule
type BlackoutRepository interface {
	Create(ctx context.Context, rule *domain.BlackoutRule) (*domain.BlackoutRule, error)
}

// RegistrationRepository loads and cancels the registrations the rule hits
type RegistrationRepository interface {
	GetActiveByConfigAndRange(ctx context.Context, configID int64, from, to time.Time) ([]*domain.Registration, error)
	Cancel(ctx context.Context, id int64, reason string, byUserID *int64, ruleID *int64) error
	ApplyPartialCancellation(ctx context.Context, id int64, reason string, ruleID int64, snapshot json.RawMessage, keptSlots []domain.RegistrationSlot) error
}

// AvailabilityCache is invalidated because the rule masks slots
type AvailabilityCache interface {
	Invalidate(ctx context.Context, configID int64)
}

// TransactionManager runs the rule creation and the cancellations atomically
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging surface the use case needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
