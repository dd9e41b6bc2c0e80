package create_registration

import (
	"errors"
	"net/http"

	"github.com/craftday/workshop-booking-service/internal/api/handlers"
	"github.com/craftday/workshop-booking-service/internal/api/middleware"
	createRegistration "github.com/craftday/workshop-booking-service/internal/usecase/create_registration"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgMissingUserID       = "missing user ID"
	msgWorkshopNotFound    = "workshop not found"
	msgWorkshopNotBookable = "workshop is not open for booking"
	msgSlotNotAvailable    = "a selected slot is no longer available"
	msgSlotInPast          = "a selected slot is in the past"
	msgNotEnoughCapacity   = "not enough remaining capacity for the requested participants"
)

type Handler struct {
	useCase CreateRegistrationUseCase
	logger  Logger
}

func NewHandler(useCase CreateRegistrationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/registrations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /registrations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRegistrationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /registrations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createRegistration.ErrConfigNotFound):
			h.logger.Warn("POST /registrations - Workshop not found: config_id=%d", req.ConfigID)
			handlers.RespondNotFound(w, msgWorkshopNotFound)

		case errors.Is(err, createRegistration.ErrConfigInactive):
			h.logger.Warn("POST /registrations - Workshop inactive: config_id=%d", req.ConfigID)
			handlers.RespondError(w, http.StatusConflict, msgWorkshopNotBookable)

		case errors.Is(err, createRegistration.ErrSlotNotAvailable):
			h.logger.Warn("POST /registrations - Slot not available: user_id=%d, config_id=%d", userID, req.ConfigID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createRegistration.ErrSlotInPast):
			h.logger.Warn("POST /registrations - Slot in past: user_id=%d, config_id=%d", userID, req.ConfigID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createRegistration.ErrTooManyParticipants):
			h.logger.Warn("POST /registrations - Not enough capacity: user_id=%d, config_id=%d", userID, req.ConfigID)
			handlers.RespondError(w, http.StatusConflict, msgNotEnoughCapacity)

		case errors.Is(err, createRegistration.ErrInvalidInput):
			h.logger.Warn("POST /registrations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /registrations - Failed: user_id=%d, config_id=%d, error=%v", userID, req.ConfigID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /registrations - Registration created: id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
