package get_reschedule_context

import (
	"context"

	rescheduleContext "github.com/craftday/workshop-booking-service/internal/usecase/get_reschedule_context"
)

type RescheduleContextUseCase interface {
	Execute(ctx context.Context, req *rescheduleContext.Request) (*rescheduleContext.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
