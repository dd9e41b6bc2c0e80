package get_registration

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/craftday/workshop-booking-service/internal/api/handlers"
	"github.com/craftday/workshop-booking-service/internal/api/middleware"
	"github.com/craftday/workshop-booking-service/internal/service/registrations"
)

const (
	msgInvalidRegistrationID = "invalid registration ID"
	msgNotFound              = "registration not found"
	msgMissingUserID         = "missing user ID"
	msgForbidden             = "access denied"
)

type Handler struct {
	service RegistrationService
	logger  Logger
}

func NewHandler(service RegistrationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/registrations/{registrationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	registrationID, err := strconv.ParseInt(vars["registrationId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /registrations/{id} - Invalid registration ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRegistrationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /registrations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	registration, err := h.service.GetByID(r.Context(), registrationID, userID)
	if err != nil {
		switch {
		case errors.Is(err, registrations.ErrRegistrationNotFound):
			h.logger.Warn("GET /registrations/{id} - Not found: registration_id=%d", registrationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, registrations.ErrAccessDenied):
			h.logger.Warn("GET /registrations/{id} - Access denied: registration_id=%d, user_id=%d", registrationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /registrations/{id} - Failed: registration_id=%d, error=%v", registrationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, registration)
}
