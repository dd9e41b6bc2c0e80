package remove_blackout

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/craftday/workshop-booking-service/internal/api/handlers"
	removeBlackout "github.com/craftday/workshop-booking-service/internal/usecase/remove_blackout"
)

const (
	msgInvalidWorkshopID = "invalid workshop ID"
	msgInvalidRuleID     = "invalid blackout rule ID"
	msgRuleNotFound      = "blackout rule not found"
)

type Handler struct {
	useCase RemoveBlackoutUseCase
	logger  Logger
}

func NewHandler(useCase RemoveBlackoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/workshops/{workshopId}/blackouts/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	workshopID, err := strconv.ParseInt(vars["workshopId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /workshops/{id}/blackouts/{ruleId} - Invalid workshop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	ruleID, err := strconv.ParseInt(vars["ruleId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /workshops/{id}/blackouts/{ruleId} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	err = h.useCase.Execute(r.Context(), &removeBlackout.Request{
		ConfigID: workshopID,
		RuleID:   ruleID,
	})
	if err != nil {
		switch {
		case errors.Is(err, removeBlackout.ErrRuleNotFound), errors.Is(err, removeBlackout.ErrRuleMismatch):
			h.logger.Warn("DELETE /workshops/{id}/blackouts/{ruleId} - Not found: workshop_id=%d, rule_id=%d", workshopID, ruleID)
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, removeBlackout.ErrInvalidInput):
			h.logger.Warn("DELETE /workshops/{id}/blackouts/{ruleId} - Invalid input: error=%v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("DELETE /workshops/{id}/blackouts/{ruleId} - Failed: rule_id=%d, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /workshops/{id}/blackouts/{ruleId} - Deleted: workshop_id=%d, rule_id=%d", workshopID, ruleID)
	w.WriteHeader(http.StatusNoContent)
}
