package remove_blackout

import (
	"context"

	removeBlackout "github.com/craftday/workshop-booking-service/internal/usecase/remove_blackout"
)

type RemoveBlackoutUseCase interface {
	Execute(ctx context.Context, req *removeBlackout.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
