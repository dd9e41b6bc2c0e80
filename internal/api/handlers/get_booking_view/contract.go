package get_booking_view

import (
	"context"

	bookingView "github.com/craftday/workshop-booking-service/internal/usecase/get_booking_view"
)

type BookingViewUseCase interface {
	Execute(ctx context.Context, req *bookingView.Request) (*bookingView.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
