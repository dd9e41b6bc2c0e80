package apply_blackout

import (
	"context"

	applyBlackout "github.com/craftday/workshop-booking-service/internal/usecase/apply_blackout"
)

type ApplyBlackoutUseCase interface {
	Execute(ctx context.Context, req *applyBlackout.Request) (*applyBlackout.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
