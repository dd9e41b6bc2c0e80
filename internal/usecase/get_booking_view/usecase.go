package get_booking_view

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/craftday/workshop-booking-service/internal/availability"
	"github.com/craftday/workshop-booking-service/internal/calendar"
	"github.com/craftday/workshop-booking-service/internal/domain"
	configRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/workshopconfig"
	"github.com/craftday/workshop-booking-service/internal/pricing"
	"github.com/craftday/workshop-booking-service/internal/selection"
)

// UseCase assembles the booking view: month grid, active-day slots,
// selection tabs, pricing and the participant ceiling.
type UseCase struct {
	configRepo       ConfigRepository
	registrationRepo RegistrationRepository
	blackoutRepo     BlackoutRepository
	cache            AvailabilityCache
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase creates the booking view use case
func NewUseCase(
	configRepo ConfigRepository,
	registrationRepo RegistrationRepository,
	blackoutRepo BlackoutRepository,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		configRepo:       configRepo,
		registrationRepo: registrationRepo,
		blackoutRepo:     blackoutRepo,
		cache:            cache,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute assembles one rendering of the booking view
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBookingView: config=%d, month=%q, selectedDate=%q, slots=%d, participants=%d",
		req.ConfigID, req.Month, req.SelectedDate, len(req.SelectedSlots), req.Participants)

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetBookingView: validation failed: %v", err)
		return nil, err
	}

	// 2. Current time
	now := uc.timeProvider.Now()

	// 3. Load the workshop config
	cfg, err := uc.configRepo.GetByID(ctx, req.ConfigID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Warn("GetBookingView: config id=%d not found", req.ConfigID)
			return nil, ErrConfigNotFound
		}
		uc.logger.Error("GetBookingView: failed to get config id=%d: %v", req.ConfigID, err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if !cfg.IsActive {
		uc.logger.Warn("GetBookingView: config id=%d is inactive", req.ConfigID)
		return nil, ErrConfigInactive
	}

	loc, err := cfg.Location()
	if err != nil {
		uc.logger.Error("GetBookingView: config id=%d has bad timezone %q: %v", cfg.ID, cfg.Timezone, err)
		return nil, fmt.Errorf("%w: bad config timezone: %v", ErrInternal, err)
	}

	// 4. Materialize the booking window and index it
	days, err := uc.dayRecords(ctx, cfg, loc, now)
	if err != nil {
		uc.logger.Error("GetBookingView: failed to materialize slots for config id=%d: %v", cfg.ID, err)
		return nil, err
	}
	idx := availability.BuildIndex(days)

	// 5. Rebuild the selection from the raw instants
	sel := selection.NewWithLimit(req.SlotLimit)
	if err := sel.Replace(req.SelectedSlots); err != nil {
		uc.logger.Warn("GetBookingView: invalid selection for config id=%d: %v", cfg.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 6. Resolve the active day and the grid anchor month
	activeKey := idx.EffectiveActiveDateKey(req.SelectedDate)
	anchor, err := uc.resolveAnchor(req.Month, activeKey, now, loc)
	if err != nil {
		return nil, err
	}

	// 7. Selected day keys and start instants, for grid decoration and tabs
	selectedStarts := make([]time.Time, 0, sel.Len())
	selectedDayKeys := make([]string, 0, sel.Len())
	for _, item := range sel.Items() {
		start, parseErr := time.Parse(time.RFC3339, item)
		if parseErr != nil {
			continue
		}
		selectedStarts = append(selectedStarts, start)
		selectedDayKeys = append(selectedDayKeys, calendar.DateKey(start, loc))
	}

	// 8. Month grid, active-day projection, selection tabs
	grid := calendar.BuildMonthGrid(anchor, idx.AvailabilityByDate, activeKey, selectedDayKeys, loc, now)
	projected := availability.ProjectDay(idx.DayLookup[activeKey], now, sel)
	tabs := calendar.BuildSelectedDateTabs(selectedDayKeys, selectedStarts, loc, idx.DayLookup)

	// 9. Pricing: one selected slot counts as one tier hour
	priceResult := pricing.Resolve(cfg.Tiers, sel.Len())

	// 10. Participant ceiling and effective count
	maxParticipants := availability.MaxParticipants(cfg.EffectiveSlotCapacity(), sel, idx)
	requested := req.Participants
	if requested < 1 {
		requested = 1
	}
	effective := availability.EffectiveParticipants(requested, maxParticipants)

	uc.logger.Info("GetBookingView: config=%d, activeDate=%s, %d slots, %d selected, price=%.2f",
		cfg.ID, activeKey, len(projected), sel.Len(), priceResult.PricePerPerson)

	return buildResponse(cfg, anchor, loc, grid, activeKey, projected, tabs, priceResult, sel.Len(), maxParticipants, effective), nil
}

// resolveAnchor picks the month the grid is built around: the requested
// month when given, otherwise the active day's month, otherwise now.
func (uc *UseCase) resolveAnchor(monthKey, activeKey string, now time.Time, loc *time.Location) (time.Time, error) {
	if monthKey != "" {
		parsed, err := time.ParseInLocation(domain.MonthFormat, monthKey, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: month must look like YYYY-MM", ErrInvalidInput)
		}
		return parsed, nil
	}
	if activeKey != "" {
		if parsed, err := calendar.ParseDateKey(activeKey); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, loc), nil
		}
	}
	return now.In(loc), nil
}

func buildResponse(
	cfg *domain.WorkshopConfig,
	anchor time.Time,
	loc *time.Location,
	grid []calendar.DayCell,
	activeKey string,
	projected []availability.SlotView,
	tabs []calendar.DateTab,
	priceResult pricing.Result,
	totalHours int,
	maxParticipants int,
	effectiveParticipants int,
) *Response {
	cells := make([]GridCell, 0, len(grid))
	for _, cell := range grid {
		cells = append(cells, GridCell{
			Date:             cell.DateKey,
			DayOfMonth:       cell.DayOfMonth,
			IsInCurrentMonth: cell.IsInCurrentMonth,
			IsSelected:       cell.IsSelected,
			HasSelectedSlots: cell.HasSelectedSlots,
			IsSelectable:     cell.IsSelectable,
		})
	}

	slots := make([]SlotView, 0, len(projected))
	for _, slot := range projected {
		slots = append(slots, SlotView{
			StartAt:           calendar.CanonicalizeTime(slot.StartAt),
			EndAt:             calendar.CanonicalizeTime(slot.EndAt),
			IsAvailable:       slot.IsAvailable,
			RemainingCapacity: slot.RemainingCapacity,
			Reason:            slot.Reason,
			IsSelected:        slot.IsSelected,
		})
	}

	dateTabs := make([]DateTab, 0, len(tabs))
	for _, tab := range tabs {
		dateTabs = append(dateTabs, DateTab{
			Date:  tab.DateKey,
			Label: tab.Label,
			Hours: tab.Hours,
		})
	}

	applied := make([]AppliedTier, 0, len(priceResult.AppliedTierCounts))
	for tierID, count := range priceResult.AppliedTierCounts {
		applied = append(applied, AppliedTier{TierID: tierID, Count: count})
	}
	sort.Slice(applied, func(i, j int) bool { return applied[i].TierID < applied[j].TierID })

	return &Response{
		ConfigID:      cfg.ID,
		Title:         cfg.Title,
		Timezone:      cfg.Timezone,
		Month:         anchor.In(loc).Format(domain.MonthFormat),
		Grid:          cells,
		ActiveDate:    activeKey,
		Slots:         slots,
		SelectedDates: dateTabs,
		Pricing: PricingView{
			TotalHours:      totalHours,
			PricePerPerson:  priceResult.PricePerPerson,
			PiecesPerPerson: priceResult.PiecesPerPerson,
			Label:           priceResult.Label,
			AppliedTiers:    applied,
		},
		MaxParticipants:       maxParticipants,
		EffectiveParticipants: effectiveParticipants,
	}
}
