package get_workshop_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/craftday/workshop-booking-service/internal/api/handlers"
	"github.com/craftday/workshop-booking-service/internal/service/workshopconfig"
)

const (
	msgInvalidWorkshopID = "invalid workshop ID"
	msgNotFound          = "workshop not found"
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

// Handle GET /api/v1/workshops/{workshopId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	workshopID, err := strconv.ParseInt(vars["workshopId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /workshops/{id}/config - Invalid workshop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	cfg, err := h.service.GetByID(r.Context(), workshopID)
	if err != nil {
		switch {
		case errors.Is(err, workshopconfig.ErrConfigNotFound):
			h.logger.Warn("GET /workshops/{id}/config - Not found: workshop_id=%d", workshopID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /workshops/{id}/config - Failed: workshop_id=%d, error=%v", workshopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cfg)
}
