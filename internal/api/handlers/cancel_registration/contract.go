package cancel_registration

import (
	"context"

	"github.com/craftday/workshop-booking-service/internal/service/registrations/models"
)

type RegistrationService interface {
	Cancel(ctx context.Context, registrationID int64, req *models.CancelRegistrationRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
