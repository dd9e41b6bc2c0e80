package availability

import (
	"context"
	"time"

	"github.com/craftday/workshop-booking-service/internal/domain"
)

// NoopCache is used when Redis is disabled: every read is a miss and
// writes and invalidations do nothing.
type NoopCache struct{}

// NewNoopCache creates the pass-through cache
func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (*NoopCache) Get(context.Context, int64, time.Time) ([]domain.DaySlotRecord, error) {
	return nil, ErrCacheMiss
}

func (*NoopCache) Set(context.Context, int64, time.Time, []domain.DaySlotRecord) {}

func (*NoopCache) Invalidate(context.Context, int64) {}
