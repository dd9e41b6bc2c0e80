package reschedule_registration

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/craftday/workshop-booking-service/internal/availability"
	"github.com/craftday/workshop-booking-service/internal/blackout"
	"github.com/craftday/workshop-booking-service/internal/calendar"
	"github.com/craftday/workshop-booking-service/internal/domain"
	registrationRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/registration"
	configRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/workshopconfig"
	"github.com/craftday/workshop-booking-service/internal/selection"
)

// UseCase commits a reschedule: the owed slots are swapped for freshly
// picked ones, the cancellation fields are cleared and the recovery
// metadata is spent. The availability re-check and the commit run in one
// serializable transaction.
type UseCase struct {
	configRepo       ConfigRepository
	registrationRepo RegistrationRepository
	blackoutRepo     BlackoutRepository
	cache            AvailabilityCache
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase creates the reschedule use case
func NewUseCase(
	configRepo ConfigRepository,
	registrationRepo RegistrationRepository,
	blackoutRepo BlackoutRepository,
	cache AvailabilityCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		configRepo:       configRepo,
		registrationRepo: registrationRepo,
		blackoutRepo:     blackoutRepo,
		cache:            cache,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute commits the reschedule
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleRegistration: registration=%d, user=%d, slots=%d",
		req.RegistrationID, req.UserID, len(req.Slots))

	// 1. Validate input
	if req.RegistrationID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: registrationID and userID must be positive", ErrInvalidInput)
	}
	if len(req.Slots) == 0 {
		return nil, fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}

	// 2. Current time
	now := uc.timeProvider.Now()

	// 3. Load the registration, owner only
	reg, err := uc.registrationRepo.GetByID(ctx, req.RegistrationID)
	if err != nil {
		if errors.Is(err, registrationRepo.ErrRegistrationNotFound) {
			uc.logger.Warn("RescheduleRegistration: registration id=%d not found", req.RegistrationID)
			return nil, ErrRegistrationNotFound
		}
		uc.logger.Error("RescheduleRegistration: repository error for registration id=%d: %v", req.RegistrationID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	if reg.UserID != req.UserID {
		uc.logger.Warn("RescheduleRegistration: access denied for user=%d to registration id=%d", req.UserID, req.RegistrationID)
		return nil, ErrAccessDenied
	}

	// 4. Load the owning config
	cfg, err := uc.configRepo.GetByID(ctx, reg.ConfigID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: owning config missing", ErrInternal)
		}
		uc.logger.Error("RescheduleRegistration: failed to get config id=%d: %v", reg.ConfigID, err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	loc, err := cfg.Location()
	if err != nil {
		uc.logger.Error("RescheduleRegistration: config id=%d has bad timezone %q: %v", cfg.ID, cfg.Timezone, err)
		return nil, fmt.Errorf("%w: bad config timezone: %v", ErrInternal, err)
	}

	// 5. The entitlement fixes the exact slot count
	rctx := blackout.Classify(reg, cfg.SlotDurationMinutes, loc)
	if !rctx.CanReschedule {
		uc.logger.Warn("RescheduleRegistration: registration id=%d is not reschedulable", reg.ID)
		return nil, ErrNotReschedulable
	}

	sel := selection.NewWithLimit(rctx.RequiredSlots)
	if err := sel.Replace(req.Slots); err != nil {
		if errors.Is(err, selection.ErrLimitReached) {
			uc.logger.Warn("RescheduleRegistration: registration id=%d: too many slots picked", reg.ID)
			return nil, fmt.Errorf("%w: exactly %d slots must be selected", ErrWrongSlotCount, rctx.RequiredSlots)
		}
		uc.logger.Warn("RescheduleRegistration: invalid slot selection: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if sel.Len() != rctx.RequiredSlots {
		uc.logger.Warn("RescheduleRegistration: registration id=%d: %d slots picked, %d owed",
			reg.ID, sel.Len(), rctx.RequiredSlots)
		return nil, fmt.Errorf("%w: exactly %d slots must be selected", ErrWrongSlotCount, rctx.RequiredSlots)
	}

	// 6. Re-check and commit inside a serializable transaction
	status := reg.Status
	if rctx.FullyCancelled {
		status = domain.StatusConfirmed
	}

	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		idx, err := uc.buildIndex(txCtx, cfg, loc, now)
		if err != nil {
			return err
		}

		if err := uc.checkSelection(idx, sel, reg.Participants, now); err != nil {
			return err
		}

		finalSlots := buildFinalSlots(reg, rctx, sel, cfg.SlotDurationMinutes)
		snapshot := blackout.StripRecoveryMetadata(reg.PricingSnapshot)

		if err := uc.registrationRepo.ReplaceSlots(txCtx, reg.ID, finalSlots, snapshot, len(finalSlots), status); err != nil {
			if errors.Is(err, registrationRepo.ErrRegistrationNotFound) {
				return ErrRegistrationNotFound
			}
			return fmt.Errorf("%w: failed to replace slots: %v", ErrInternal, err)
		}
		return nil
	})
	if txErr != nil {
		uc.logger.Error("RescheduleRegistration: transaction failed for registration id=%d: %v", reg.ID, txErr)
		return nil, txErr
	}

	// 7. The swapped slots changed capacity
	uc.cache.Invalidate(ctx, cfg.ID)

	updated, err := uc.registrationRepo.GetByID(ctx, reg.ID)
	if err != nil {
		uc.logger.Error("RescheduleRegistration: failed to reload registration id=%d: %v", reg.ID, err)
		return nil, fmt.Errorf("%w: failed to reload registration: %v", ErrInternal, err)
	}

	uc.logger.Info("RescheduleRegistration: registration id=%d rescheduled onto %d slots", reg.ID, len(updated.Slots))

	return buildResponse(updated), nil
}

// buildIndex materializes the booking window directly from storage,
// bypassing the cache so the re-check sees committed state.
func (uc *UseCase) buildIndex(ctx context.Context, cfg *domain.WorkshopConfig, loc *time.Location, now time.Time) (*availability.Index, error) {
	localNow := now.In(loc)
	from := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)

	windowDays := cfg.BookingWindowDays
	if windowDays < 1 {
		windowDays = domain.DefaultBookingWindowDays
	}
	to := from.AddDate(0, 0, windowDays)

	occupancyRows, err := uc.registrationRepo.GetOccupancyByRange(ctx, cfg.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get occupancy: %v", ErrInternal, err)
	}
	occupancy := make(map[string]int, len(occupancyRows))
	for _, row := range occupancyRows {
		occupancy[calendar.CanonicalizeTime(row.SlotStartAt)] += row.Participants
	}

	rules, err := uc.blackoutRepo.GetByConfigAndRange(ctx, cfg.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get blackout rules: %v", ErrInternal, err)
	}

	return availability.BuildIndex(availability.MaterializeWindow(cfg, loc, now, occupancy, rules)), nil
}

// checkSelection verifies every picked slot is known, future, available,
// and has room for the registration's party.
func (uc *UseCase) checkSelection(idx *availability.Index, sel *selection.Selection, participants int, now time.Time) error {
	for _, start := range sel.Items() {
		status, ok := idx.StatusFor(start)
		if !ok || !status.IsAvailable {
			return fmt.Errorf("%w: %s", ErrSlotNotAvailable, start)
		}

		startAt, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidInput, start)
		}
		if !startAt.After(now) {
			return fmt.Errorf("%w: %s", ErrSlotInPast, start)
		}

		if status.RemainingCapacity < participants {
			return fmt.Errorf("%w: %s has %d spots left", ErrSlotNotAvailable, start, status.RemainingCapacity)
		}
	}
	return nil
}

// buildFinalSlots assembles the post-reschedule slot set: the kept slots of
// a partial cancellation plus the picked replacements, or the replacements
// alone after a full cancellation.
func buildFinalSlots(reg *domain.Registration, rctx blackout.RescheduleContext, sel *selection.Selection, slotDurationMinutes int) []domain.RegistrationSlot {
	duration := time.Duration(slotDurationMinutes) * time.Minute

	final := make([]domain.RegistrationSlot, 0, len(reg.Slots)+sel.Len())
	if rctx.PartiallyCancelled {
		for _, slot := range reg.Slots {
			final = append(final, domain.RegistrationSlot{
				SlotStartAt: slot.SlotStartAt,
				SlotEndAt:   slot.SlotEndAt,
			})
		}
	}

	for _, start := range sel.Items() {
		startAt, err := time.Parse(time.RFC3339, start)
		if err != nil {
			continue
		}
		final = append(final, domain.RegistrationSlot{
			SlotStartAt: startAt,
			SlotEndAt:   startAt.Add(duration),
		})
	}

	sort.Slice(final, func(i, j int) bool { return final[i].SlotStartAt.Before(final[j].SlotStartAt) })
	return final
}

func buildResponse(reg *domain.Registration) *Response {
	slots := make([]SlotResponse, 0, len(reg.Slots))
	for _, slot := range reg.Slots {
		slots = append(slots, SlotResponse{
			SlotStartAt: calendar.CanonicalizeTime(slot.SlotStartAt),
			SlotEndAt:   calendar.CanonicalizeTime(slot.SlotEndAt),
		})
	}

	return &Response{
		ID:         reg.ID,
		Reference:  reg.Reference,
		UserID:     reg.UserID,
		ConfigID:   reg.ConfigID,
		Slots:      slots,
		TotalHours: reg.TotalHours,
		SlotsCount: reg.SlotsCount,
		Status:     string(reg.Status),
	}
}
