package get_reschedule_context

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/craftday/workshop-booking-service/internal/api/handlers"
	"github.com/craftday/workshop-booking-service/internal/api/middleware"
	rescheduleContext "github.com/craftday/workshop-booking-service/internal/usecase/get_reschedule_context"
)

const (
	msgInvalidRegistrationID = "invalid registration ID"
	msgNotFound              = "registration not found"
	msgMissingUserID         = "missing user ID"
	msgForbidden             = "access denied"
)

type Handler struct {
	useCase RescheduleContextUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleContextUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/registrations/{registrationId}/reschedule-context
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	registrationID, err := strconv.ParseInt(vars["registrationId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /registrations/{id}/reschedule-context - Invalid registration ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRegistrationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /registrations/{id}/reschedule-context - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleContext.Request{
		RegistrationID: registrationID,
		UserID:         userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, rescheduleContext.ErrRegistrationNotFound):
			h.logger.Warn("GET /registrations/{id}/reschedule-context - Not found: registration_id=%d", registrationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleContext.ErrAccessDenied):
			h.logger.Warn("GET /registrations/{id}/reschedule-context - Access denied: registration_id=%d, user_id=%d", registrationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleContext.ErrInvalidInput):
			h.logger.Warn("GET /registrations/{id}/reschedule-context - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /registrations/{id}/reschedule-context - Failed: registration_id=%d, error=%v", registrationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
