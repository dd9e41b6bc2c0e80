package cancel_registration

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/craftday/workshop-booking-service/internal/api/handlers"
	"github.com/craftday/workshop-booking-service/internal/api/middleware"
	"github.com/craftday/workshop-booking-service/internal/service/registrations"
	"github.com/craftday/workshop-booking-service/internal/service/registrations/models"
)

const (
	msgInvalidRegistrationID = "invalid registration ID"
	msgInvalidRequestBody    = "invalid request body"
	msgNotFound              = "registration not found"
	msgMissingUserID         = "missing user ID"
	msgForbidden             = "access denied"
	msgCannotCancel          = "registration cannot be cancelled"
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

// CancelRequest is the HTTP body of a cancellation
type CancelRequest struct {
	Reason string `json:"reason"`
}

// Handle PATCH /api/v1/registrations/{registrationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	registrationID, err := strconv.ParseInt(vars["registrationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /registrations/{id}/cancel - Invalid registration ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRegistrationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /registrations/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /registrations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Cancel(r.Context(), registrationID, &models.CancelRegistrationRequest{
		UserID: userID,
		Reason: req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, registrations.ErrRegistrationNotFound):
			h.logger.Warn("PATCH /registrations/{id}/cancel - Not found: registration_id=%d", registrationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, registrations.ErrAccessDenied):
			h.logger.Warn("PATCH /registrations/{id}/cancel - Access denied: registration_id=%d, user_id=%d", registrationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, registrations.ErrCannotCancel):
			h.logger.Warn("PATCH /registrations/{id}/cancel - Cannot cancel: registration_id=%d", registrationID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("PATCH /registrations/{id}/cancel - Failed: registration_id=%d, error=%v", registrationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /registrations/{id}/cancel - Cancelled: registration_id=%d, user_id=%d", registrationID, userID)
	w.WriteHeader(http.StatusNoContent)
}
