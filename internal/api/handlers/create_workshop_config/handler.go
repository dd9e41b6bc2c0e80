package create_workshop_config

import (
	"errors"
	"net/http"

	"github.com/craftday/workshop-booking-service/internal/api/handlers"
	"github.com/craftday/workshop-booking-service/internal/service/workshopconfig"
	"github.com/craftday/workshop-booking-service/internal/service/workshopconfig/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/workshops
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /workshops - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cfg, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, workshopconfig.ErrInvalidInput):
			h.logger.Warn("POST /workshops - Invalid input: error=%v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /workshops - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /workshops - Created: workshop_id=%d", cfg.ID)
	handlers.RespondJSON(w, http.StatusCreated, cfg)
}
