package get_reschedule_context

import (
	"context"
	"errors"
	"fmt"

	"github.com/craftday/workshop-booking-service/internal/blackout"
	registrationRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/registration"
	configRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/workshopconfig"
)

// UseCase interprets a registration's cancellation state into a reschedule
// entitlement: whether the user may pick replacement slots and how many.
type UseCase struct {
	registrationRepo RegistrationRepository
	configRepo       ConfigRepository
	logger           Logger
}

// NewUseCase creates the reschedule context use case
func NewUseCase(
	registrationRepo RegistrationRepository,
	configRepo ConfigRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		registrationRepo: registrationRepo,
		configRepo:       configRepo,
		logger:           logger,
	}
}

// Execute classifies the registration
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetRescheduleContext: registration=%d, user=%d", req.RegistrationID, req.UserID)

	// 1. Validate input
	if req.RegistrationID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: registrationID and userID must be positive", ErrInvalidInput)
	}

	// 2. Load the registration, owner only
	reg, err := uc.registrationRepo.GetByID(ctx, req.RegistrationID)
	if err != nil {
		if errors.Is(err, registrationRepo.ErrRegistrationNotFound) {
			uc.logger.Warn("GetRescheduleContext: registration id=%d not found", req.RegistrationID)
			return nil, ErrRegistrationNotFound
		}
		uc.logger.Error("GetRescheduleContext: repository error for registration id=%d: %v", req.RegistrationID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	if reg.UserID != req.UserID {
		uc.logger.Warn("GetRescheduleContext: access denied for user=%d to registration id=%d", req.UserID, req.RegistrationID)
		return nil, ErrAccessDenied
	}

	// 3. Load the owning config for slot duration and timezone
	cfg, err := uc.configRepo.GetByID(ctx, reg.ConfigID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Warn("GetRescheduleContext: config id=%d not found for registration id=%d", reg.ConfigID, reg.ID)
			return nil, fmt.Errorf("%w: owning config missing", ErrInternal)
		}
		uc.logger.Error("GetRescheduleContext: failed to get config id=%d: %v", reg.ConfigID, err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	loc, err := cfg.Location()
	if err != nil {
		uc.logger.Error("GetRescheduleContext: config id=%d has bad timezone %q: %v", cfg.ID, cfg.Timezone, err)
		return nil, fmt.Errorf("%w: bad config timezone: %v", ErrInternal, err)
	}

	// 4. Classify
	rctx := blackout.Classify(reg, cfg.SlotDurationMinutes, loc)

	uc.logger.Info("GetRescheduleContext: registration=%d canReschedule=%v requiredSlots=%d",
		reg.ID, rctx.CanReschedule, rctx.RequiredSlots)

	return &Response{
		RegistrationID:        reg.ID,
		PartiallyCancelled:    rctx.PartiallyCancelled,
		FullyCancelled:        rctx.FullyCancelled,
		CanReschedule:         rctx.CanReschedule,
		RequiredSlots:         rctx.RequiredSlots,
		RequiredHours:         rctx.RequiredHours,
		PendingSlotStartTimes: rctx.PendingSlotStartTimes,
		WindowStartMinutes:    rctx.WindowStartMinutes,
		WindowEndMinutes:      rctx.WindowEndMinutes,
		DisplayReason:         rctx.DisplayReason,
	}, nil
}
