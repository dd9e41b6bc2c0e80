package remove_blackout

import (
	"context"
	"errors"
	"fmt"

	blackoutRuleRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/blackoutrule"
)

// Request identifies the rule to lift, scoped to its workshop
type Request struct {
	ConfigID int64
	RuleID   int64
}

// UseCase lifts a blackout rule. Registrations already cancelled by the
// rule stay cancelled; only future availability reopens.
type UseCase struct {
	blackoutRepo BlackoutRepository
	cache        AvailabilityCache
	logger       Logger
}

// NewUseCase creates the blackout removal use case
func NewUseCase(blackoutRepo BlackoutRepository, cache AvailabilityCache, logger Logger) *UseCase {
	return &UseCase{
		blackoutRepo: blackoutRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Execute deletes the rule
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("RemoveBlackout: config=%d, rule=%d", req.ConfigID, req.RuleID)

	// 1. Validate input
	if req.ConfigID <= 0 || req.RuleID <= 0 {
		return fmt.Errorf("%w: configID and ruleID must be positive", ErrInvalidInput)
	}

	// 2. Load the rule and pin it to the workshop from the URL
	rule, err := uc.blackoutRepo.GetByID(ctx, req.RuleID)
	if err != nil {
		if errors.Is(err, blackoutRuleRepo.ErrRuleNotFound) {
			uc.logger.Warn("RemoveBlackout: rule id=%d not found", req.RuleID)
			return ErrRuleNotFound
		}
		uc.logger.Error("RemoveBlackout: failed to get rule id=%d: %v", req.RuleID, err)
		return fmt.Errorf("%w: failed to get rule: %v", ErrInternal, err)
	}
	if rule.ConfigID != req.ConfigID {
		uc.logger.Warn("RemoveBlackout: rule id=%d belongs to config=%d, not %d", rule.ID, rule.ConfigID, req.ConfigID)
		return ErrRuleMismatch
	}

	// 3. Delete
	if err := uc.blackoutRepo.Delete(ctx, req.RuleID); err != nil {
		if errors.Is(err, blackoutRuleRepo.ErrRuleNotFound) {
			return ErrRuleNotFound
		}
		uc.logger.Error("RemoveBlackout: failed to delete rule id=%d: %v", req.RuleID, err)
		return fmt.Errorf("%w: failed to delete rule: %v", ErrInternal, err)
	}

	// 4. The masked slots are bookable again
	uc.cache.Invalidate(ctx, rule.ConfigID)

	uc.logger.Info("RemoveBlackout: deleted rule id=%d for config=%d", req.RuleID, rule.ConfigID)
	return nil
}
