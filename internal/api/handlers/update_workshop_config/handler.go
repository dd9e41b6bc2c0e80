package update_workshop_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/craftday/workshop-booking-service/internal/api/handlers"
	"github.com/craftday/workshop-booking-service/internal/service/workshopconfig"
	"github.com/craftday/workshop-booking-service/internal/service/workshopconfig/models"
)

const (
	msgInvalidWorkshopID  = "invalid workshop ID"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "workshop not found"
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

// Handle PUT /api/v1/workshops/{workshopId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	workshopID, err := strconv.ParseInt(vars["workshopId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /workshops/{id}/config - Invalid workshop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /workshops/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cfg, err := h.service.Update(r.Context(), workshopID, &req)
	if err != nil {
		switch {
		case errors.Is(err, workshopconfig.ErrConfigNotFound):
			h.logger.Warn("PUT /workshops/{id}/config - Not found: workshop_id=%d", workshopID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, workshopconfig.ErrInvalidInput):
			h.logger.Warn("PUT /workshops/{id}/config - Invalid input: workshop_id=%d, error=%v", workshopID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /workshops/{id}/config - Failed: workshop_id=%d, error=%v", workshopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /workshops/{id}/config - Updated: workshop_id=%d", workshopID)
	handlers.RespondJSON(w, http.StatusOK, cfg)
}
