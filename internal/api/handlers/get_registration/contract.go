package get_registration

import (
	"context"

	"github.com/craftday/workshop-booking-service/internal/service/registrations/models"
)

type RegistrationService interface {
	GetByID(ctx context.Context, id int64, userID int64) (*models.RegistrationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
