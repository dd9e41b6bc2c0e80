package apply_blackout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/craftday/workshop-booking-service/internal/blackout"
	"github.com/craftday/workshop-booking-service/internal/calendar"
	"github.com/craftday/workshop-booking-service/internal/domain"
	configRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/workshopconfig"
)

// UseCase creates a blackout rule and, when the config opts in, cancels
// the registrations it hits. A registration losing all of its slots is
// fully cancelled; one losing part of them keeps its status and gains a
// recovery record to reschedule from.
type UseCase struct {
	configRepo       ConfigRepository
	blackoutRepo     BlackoutRepository
	registrationRepo RegistrationRepository
	cache            AvailabilityCache
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase creates the blackout application use case
func NewUseCase(
	configRepo ConfigRepository,
	blackoutRepo BlackoutRepository,
	registrationRepo RegistrationRepository,
	cache AvailabilityCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		configRepo:       configRepo,
		blackoutRepo:     blackoutRepo,
		registrationRepo: registrationRepo,
		cache:            cache,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute creates the rule and enforces it
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApplyBlackout: config=%d, date=%s, window=%d-%d",
		req.ConfigID, req.Date, req.StartMinutes, req.EndMinutes)

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ApplyBlackout: validation failed: %v", err)
		return nil, err
	}

	// 2. Load the workshop config
	cfg, err := uc.configRepo.GetByID(ctx, req.ConfigID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Warn("ApplyBlackout: config id=%d not found", req.ConfigID)
			return nil, ErrConfigNotFound
		}
		uc.logger.Error("ApplyBlackout: failed to get config id=%d: %v", req.ConfigID, err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	loc, err := cfg.Location()
	if err != nil {
		uc.logger.Error("ApplyBlackout: config id=%d has bad timezone %q: %v", cfg.ID, cfg.Timezone, err)
		return nil, fmt.Errorf("%w: bad config timezone: %v", ErrInternal, err)
	}

	// 3. Resolve the blocked day in the workshop timezone
	parsed, err := calendar.ParseDateKey(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must look like YYYY-MM-DD", ErrInvalidInput)
	}
	dayStart := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, loc)

	// 4. Create the rule and cancel affected registrations atomically
	var (
		rule      *domain.BlackoutRule
		fully     int
		partially int
	)
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		rule, err = uc.blackoutRepo.Create(txCtx, &domain.BlackoutRule{
			ConfigID:     cfg.ID,
			Date:         dayStart,
			StartMinutes: req.StartMinutes,
			EndMinutes:   req.EndMinutes,
			Reason:       req.Reason,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create rule: %v", ErrInternal, err)
		}

		if !cfg.AutoCancelOnBlackout {
			return nil
		}

		fully, partially, err = uc.cancelAffected(txCtx, rule, dayStart, loc)
		return err
	})
	if txErr != nil {
		uc.logger.Error("ApplyBlackout: transaction failed for config=%d: %v", req.ConfigID, txErr)
		return nil, txErr
	}

	// 5. The masked slots changed availability
	uc.cache.Invalidate(ctx, cfg.ID)

	uc.logger.Info("ApplyBlackout: created rule id=%d for config=%d, cancelled %d fully and %d partially",
		rule.ID, cfg.ID, fully, partially)

	return &Response{
		RuleID:             rule.ID,
		ConfigID:           rule.ConfigID,
		Date:               req.Date,
		StartMinutes:       rule.StartMinutes,
		EndMinutes:         rule.EndMinutes,
		Reason:             rule.Reason,
		FullyCancelled:     fully,
		PartiallyCancelled: partially,
	}, nil
}

// cancelAffected splits every active registration holding slots on the
// blocked day into voided and kept slots and applies the matching
// cancellation.
func (uc *UseCase) cancelAffected(ctx context.Context, rule *domain.BlackoutRule, dayStart time.Time, loc *time.Location) (fully, partially int, err error) {
	dayEnd := dayStart.AddDate(0, 0, 1)

	regs, err := uc.registrationRepo.GetActiveByConfigAndRange(ctx, rule.ConfigID, dayStart, dayEnd)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: failed to load affected registrations: %v", ErrInternal, err)
	}

	for _, reg := range regs {
		voided, kept := splitSlots(reg.Slots, rule, dayStart, dayEnd, loc)
		if len(voided) == 0 {
			continue
		}

		voidedStarts := make([]string, 0, len(voided))
		for _, slot := range voided {
			voidedStarts = append(voidedStarts, calendar.CanonicalizeTime(slot.SlotStartAt))
		}

		if len(kept) == 0 {
			reason := blackout.ComposeCancellationReason(rule.Reason, voidedStarts, false, loc)
			if err := uc.registrationRepo.Cancel(ctx, reg.ID, reason, nil, &rule.ID); err != nil {
				return 0, 0, fmt.Errorf("%w: failed to cancel registration %d: %v", ErrInternal, reg.ID, err)
			}
			fully++
			continue
		}

		meta := &domain.BlackoutRecoveryMetadata{
			PendingSlotStartTimes: voidedStarts,
			RequiredSlots:         len(voided),
			WindowStartMinutes:    &rule.StartMinutes,
			WindowEndMinutes:      &rule.EndMinutes,
		}
		snapshot, err := blackout.EmbedRecoveryMetadata(reg.PricingSnapshot, meta)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: failed to embed recovery metadata for registration %d: %v", ErrInternal, reg.ID, err)
		}

		reason := blackout.ComposeCancellationReason(rule.Reason, voidedStarts, true, loc)
		if err := uc.registrationRepo.ApplyPartialCancellation(ctx, reg.ID, reason, rule.ID, snapshot, kept); err != nil {
			return 0, 0, fmt.Errorf("%w: failed to partially cancel registration %d: %v", ErrInternal, reg.ID, err)
		}
		partially++
	}

	return fully, partially, nil
}

// splitSlots partitions the registration slots into those voided by the
// rule (on the blocked day, start minute inside the window) and the rest.
func splitSlots(slots []domain.RegistrationSlot, rule *domain.BlackoutRule, dayStart, dayEnd time.Time, loc *time.Location) (voided, kept []domain.RegistrationSlot) {
	for _, slot := range slots {
		local := slot.SlotStartAt.In(loc)
		inDay := !local.Before(dayStart) && local.Before(dayEnd)
		if inDay && rule.CoversMinute(local.Hour()*60+local.Minute()) {
			voided = append(voided, slot)
		} else {
			kept = append(kept, slot)
		}
	}
	return voided, kept
}
