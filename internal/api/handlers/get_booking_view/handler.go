package get_booking_view

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/craftday/workshop-booking-service/internal/api/handlers"
	bookingView "github.com/craftday/workshop-booking-service/internal/usecase/get_booking_view"
)

const (
	msgInvalidWorkshopID   = "invalid workshop ID"
	msgInvalidQuery        = "invalid query parameters"
	msgWorkshopNotFound    = "workshop not found"
	msgWorkshopNotBookable = "workshop is not open for booking"
)

type Handler struct {
	useCase BookingViewUseCase
	logger  Logger
}

func NewHandler(useCase BookingViewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/workshops/{workshopId}/booking-view
//
// Query parameters: month (YYYY-MM), date (YYYY-MM-DD), slots (comma-joined
// ISO instants), participants, slotLimit.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	workshopID, err := strconv.ParseInt(vars["workshopId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /workshops/{id}/booking-view - Invalid workshop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkshopID)
		return
	}

	query := r.URL.Query()

	participants := 0
	if raw := query.Get("participants"); raw != "" {
		participants, err = strconv.Atoi(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
	}

	slotLimit := 0
	if raw := query.Get("slotLimit"); raw != "" {
		slotLimit, err = strconv.Atoi(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
	}

	var slots []string
	if raw := query.Get("slots"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				slots = append(slots, trimmed)
			}
		}
	}

	req := &bookingView.Request{
		ConfigID:      workshopID,
		Month:         query.Get("month"),
		SelectedDate:  query.Get("date"),
		SelectedSlots: slots,
		Participants:  participants,
		SlotLimit:     slotLimit,
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingView.ErrConfigNotFound):
			h.logger.Warn("GET /workshops/{id}/booking-view - Workshop not found: workshop_id=%d", workshopID)
			handlers.RespondNotFound(w, msgWorkshopNotFound)

		case errors.Is(err, bookingView.ErrConfigInactive):
			h.logger.Warn("GET /workshops/{id}/booking-view - Workshop inactive: workshop_id=%d", workshopID)
			handlers.RespondError(w, http.StatusConflict, msgWorkshopNotBookable)

		case errors.Is(err, bookingView.ErrInvalidInput):
			h.logger.Warn("GET /workshops/{id}/booking-view - Invalid input: workshop_id=%d, error=%v", workshopID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /workshops/{id}/booking-view - Failed: workshop_id=%d, error=%v", workshopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
