package reschedule_registration

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/craftday/workshop-booking-service/internal/api/handlers"
	"github.com/craftday/workshop-booking-service/internal/api/middleware"
	rescheduleRegistration "github.com/craftday/workshop-booking-service/internal/usecase/reschedule_registration"
)

const (
	msgInvalidRegistrationID = "invalid registration ID"
	msgInvalidRequestBody    = "invalid request body"
	msgNotFound              = "registration not found"
	msgMissingUserID         = "missing user ID"
	msgForbidden             = "access denied"
	msgNotReschedulable      = "registration cannot be rescheduled"
	msgWrongSlotCount        = "wrong number of slots selected"
	msgSlotNotAvailable      = "a selected slot is no longer available"
	msgSlotInPast            = "a selected slot is in the past"
)

type Handler struct {
	useCase RescheduleUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// RescheduleRequest is the HTTP body of a reschedule commit
type RescheduleRequest struct {
	Slots []string `json:"slots"`
}

// Handle POST /api/v1/registrations/{registrationId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	registrationID, err := strconv.ParseInt(vars["registrationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /registrations/{id}/reschedule - Invalid registration ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRegistrationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /registrations/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /registrations/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleRegistration.Request{
		RegistrationID: registrationID,
		UserID:         userID,
		Slots:          req.Slots,
	})
	if err != nil {
		switch {
		case errors.Is(err, rescheduleRegistration.ErrRegistrationNotFound):
			h.logger.Warn("POST /registrations/{id}/reschedule - Not found: registration_id=%d", registrationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleRegistration.ErrAccessDenied):
			h.logger.Warn("POST /registrations/{id}/reschedule - Access denied: registration_id=%d, user_id=%d", registrationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleRegistration.ErrNotReschedulable):
			h.logger.Warn("POST /registrations/{id}/reschedule - Not reschedulable: registration_id=%d", registrationID)
			handlers.RespondError(w, http.StatusConflict, msgNotReschedulable)

		case errors.Is(err, rescheduleRegistration.ErrWrongSlotCount):
			h.logger.Warn("POST /registrations/{id}/reschedule - Wrong slot count: registration_id=%d", registrationID)
			handlers.RespondBadRequest(w, msgWrongSlotCount)

		case errors.Is(err, rescheduleRegistration.ErrSlotNotAvailable):
			h.logger.Warn("POST /registrations/{id}/reschedule - Slot not available: registration_id=%d", registrationID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, rescheduleRegistration.ErrSlotInPast):
			h.logger.Warn("POST /registrations/{id}/reschedule - Slot in past: registration_id=%d", registrationID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, rescheduleRegistration.ErrInvalidInput):
			h.logger.Warn("POST /registrations/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /registrations/{id}/reschedule - Failed: registration_id=%d, error=%v", registrationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /registrations/{id}/reschedule - Rescheduled: registration_id=%d, user_id=%d", registrationID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
