package create_registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/craftday/workshop-booking-service/internal/availability"
	"github.com/craftday/workshop-booking-service/internal/calendar"
	"github.com/craftday/workshop-booking-service/internal/domain"
	configRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/workshopconfig"
	"github.com/craftday/workshop-booking-service/internal/pricing"
	"github.com/craftday/workshop-booking-service/internal/selection"
)

// UseCase creates a registration after re-checking availability inside a
// serializable transaction, so two concurrent bookings of the last spot
// cannot both commit.
type UseCase struct {
	configRepo       ConfigRepository
	registrationRepo RegistrationRepository
	blackoutRepo     BlackoutRepository
	cache            AvailabilityCache
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase creates the registration creation use case
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

// Execute creates the registration
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRegistration: user=%d, config=%d, participants=%d, slots=%d",
		req.UserID, req.ConfigID, req.Participants, len(req.Slots))

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateRegistration: validation failed: %v", err)
		return nil, err
	}

	// 2. Current time
	now := uc.timeProvider.Now()

	// 3. Load the workshop config
	cfg, err := uc.configRepo.GetByID(ctx, req.ConfigID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Warn("CreateRegistration: config id=%d not found", req.ConfigID)
			return nil, ErrConfigNotFound
		}
		uc.logger.Error("CreateRegistration: failed to get config id=%d: %v", req.ConfigID, err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if !cfg.IsActive {
		uc.logger.Warn("CreateRegistration: config id=%d is inactive", req.ConfigID)
		return nil, ErrConfigInactive
	}

	loc, err := cfg.Location()
	if err != nil {
		uc.logger.Error("CreateRegistration: config id=%d has bad timezone %q: %v", cfg.ID, cfg.Timezone, err)
		return nil, fmt.Errorf("%w: bad config timezone: %v", ErrInternal, err)
	}

	// 4. Canonicalize and de-duplicate the selected slots
	sel, err := selection.FromInstants(req.Slots)
	if err != nil {
		uc.logger.Warn("CreateRegistration: invalid slot selection: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 5. Re-check availability and insert inside a serializable transaction
	var created *domain.Registration
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		idx, err := uc.buildIndex(txCtx, cfg, loc, now)
		if err != nil {
			return err
		}

		if err := uc.checkSelection(idx, sel, req.Participants, now); err != nil {
			return err
		}

		// Pricing is frozen at submit time: one selected slot = one tier hour
		priceResult := pricing.Resolve(cfg.Tiers, sel.Len())
		snapshot, err := buildSnapshot(priceResult, sel.Len(), now)
		if err != nil {
			return fmt.Errorf("%w: failed to build pricing snapshot: %v", ErrInternal, err)
		}

		reg := &domain.Registration{
			Reference:       uuid.NewString(),
			UserID:          req.UserID,
			ConfigID:        cfg.ID,
			Participants:    req.Participants,
			Slots:           buildSlots(sel, cfg.SlotDurationMinutes),
			TotalHours:      sel.Len(),
			SlotsCount:      sel.Len(),
			PricingSnapshot: snapshot,
			Status:          domain.StatusPending,
		}

		created, err = uc.registrationRepo.Create(txCtx, reg)
		if err != nil {
			return fmt.Errorf("%w: failed to create registration: %v", ErrInternal, err)
		}
		return nil
	})
	if txErr != nil {
		uc.logger.Error("CreateRegistration: transaction failed for user=%d, config=%d: %v",
			req.UserID, req.ConfigID, txErr)
		return nil, txErr
	}

	// 6. The booked slots changed capacity
	uc.cache.Invalidate(ctx, cfg.ID)

	uc.logger.Info("CreateRegistration: created registration id=%d reference=%s for user=%d",
		created.ID, created.Reference, req.UserID)

	return buildResponse(created), nil
}

// buildIndex materializes the booking window directly from storage.
// The cache is deliberately bypassed: the re-check must see committed state.
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

// checkSelection verifies every selected slot is known, still in the
// future, available, and has room for the requested participants.
func (uc *UseCase) checkSelection(idx *availability.Index, sel *selection.Selection, participants int, now time.Time) error {
	for _, start := range sel.Items() {
		status, ok := idx.StatusFor(start)
		if !ok {
			return fmt.Errorf("%w: %s", ErrSlotNotAvailable, start)
		}

		startAt, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidInput, start)
		}
		if !startAt.After(now) {
			return fmt.Errorf("%w: %s", ErrSlotInPast, start)
		}

		if !status.IsAvailable {
			return fmt.Errorf("%w: %s", ErrSlotNotAvailable, start)
		}
		if status.RemainingCapacity < participants {
			return fmt.Errorf("%w: %s has %d spots left", ErrTooManyParticipants, start, status.RemainingCapacity)
		}
	}
	return nil
}

func buildSlots(sel *selection.Selection, slotDurationMinutes int) []domain.RegistrationSlot {
	duration := time.Duration(slotDurationMinutes) * time.Minute
	slots := make([]domain.RegistrationSlot, 0, sel.Len())
	for _, start := range sel.Items() {
		startAt, err := time.Parse(time.RFC3339, start)
		if err != nil {
			continue
		}
		slots = append(slots, domain.RegistrationSlot{
			SlotStartAt: startAt,
			SlotEndAt:   startAt.Add(duration),
		})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].SlotStartAt.Before(slots[j].SlotStartAt) })
	return slots
}

func buildSnapshot(priceResult pricing.Result, totalHours int, now time.Time) (json.RawMessage, error) {
	applied := make([]appliedTierSnapshot, 0, len(priceResult.AppliedTierCounts))
	for tierID, count := range priceResult.AppliedTierCounts {
		applied = append(applied, appliedTierSnapshot{TierID: tierID, Count: count})
	}
	sort.Slice(applied, func(i, j int) bool { return applied[i].TierID < applied[j].TierID })

	return json.Marshal(pricingSnapshot{
		TotalHours:      totalHours,
		PricePerPerson:  priceResult.PricePerPerson,
		PiecesPerPerson: priceResult.PiecesPerPerson,
		Label:           priceResult.Label,
		AppliedTiers:    applied,
		ResolvedAt:      calendar.CanonicalizeTime(now),
	})
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
		ID:              reg.ID,
		Reference:       reg.Reference,
		UserID:          reg.UserID,
		ConfigID:        reg.ConfigID,
		Participants:    reg.Participants,
		Slots:           slots,
		TotalHours:      reg.TotalHours,
		SlotsCount:      reg.SlotsCount,
		PricingSnapshot: reg.PricingSnapshot,
		Status:          string(reg.Status),
		CreatedAt:       calendar.CanonicalizeTime(reg.CreatedAt),
	}
}
