package get_user_registrations

import (
	"context"

	"github.com/craftday/workshop-booking-service/internal/service/registrations/models"
)

type RegistrationService interface {
	GetUserRegistrations(ctx context.Context, req *models.GetUserRegistrationsRequest) (*models.RegistrationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
