package get_workshop_config

import (
	"context"

	"github.com/craftday/workshop-booking-service/internal/service/workshopconfig/models"
)

type ConfigService interface {
	GetByID(ctx context.Context, id int64) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
