package apply_blackout

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/craftday/workshop-booking-service/internal/api/handlers"
	applyBlackout "github.com/craftday/workshop-booking-service/internal/usecase/apply_blackout"
)

const (
	msgInvalidWorkshopID  = "invalid workshop ID"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "workshop not found"
)

type Handler struct {
	useCase ApplyBlackoutUseCase
	logger  Logger
}

func NewHandler(useCase ApplyBlackoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// BlackoutRequest is the HTTP body of a blackout rule creation
type BlackoutRequest struct {
	Date         string `json:"date"` // "YYYY-MM-DD"
	StartMinutes int    `json:"startMinutes"`
	EndMinutes   int    `json:"endMinutes"`
	Reason       string `json:"reason"`
}

// Handle POST /api/v1/workshops/{workshopId}/blackouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	workshopID, err := strconv.ParseInt(vars["workshopId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /workshops/{id}/blackouts - Invalid workshop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	var req BlackoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /workshops/{id}/blackouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &applyBlackout.Request{
		ConfigID:     workshopID,
		Date:         req.Date,
		StartMinutes: req.StartMinutes,
		EndMinutes:   req.EndMinutes,
		Reason:       req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, applyBlackout.ErrConfigNotFound):
			h.logger.Warn("POST /workshops/{id}/blackouts - Not found: workshop_id=%d", workshopID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, applyBlackout.ErrInvalidInput):
			h.logger.Warn("POST /workshops/{id}/blackouts - Invalid input: workshop_id=%d, error=%v", workshopID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /workshops/{id}/blackouts - Failed: workshop_id=%d, error=%v", workshopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /workshops/{id}/blackouts - Rule created: rule_id=%d, workshop_id=%d, fully=%d, partially=%d",
		result.RuleID, workshopID, result.FullyCancelled, result.PartiallyCancelled)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
