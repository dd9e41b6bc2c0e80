package reschedule_registration

import (
	"context"

	rescheduleRegistration "github.com/craftday/workshop-booking-service/internal/usecase/reschedule_registration"
)

type RescheduleUseCase interface {
	Execute(ctx context.Context, req *rescheduleRegistration.Request) (*rescheduleRegistration.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
