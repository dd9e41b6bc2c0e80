package reschedule_registration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftday/workshop-booking-service/internal/domain"
	registrationRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/registration"
	"github.com/craftday/workshop-booking-service/pkg/ptr"
)

type fakeConfigRepo struct {
	cfg *domain.WorkshopConfig
}

func (f *fakeConfigRepo) GetByID(_ context.Context, _ int64) (*domain.WorkshopConfig, error) {
	return f.cfg, nil
}

type replaceCall struct {
	id         int64
	slots      []domain.RegistrationSlot
	snapshot   json.RawMessage
	totalHours int
	status     domain.RegistrationStatus
}

type fakeRegistrationRepo struct {
	reg       *domain.Registration
	occupancy []registrationRepo.SlotOccupancy
	replaced  *replaceCall
}

func (f *fakeRegistrationRepo) GetByID(_ context.Context, id int64) (*domain.Registration, error) {
	if f.reg == nil || f.reg.ID != id {
		return nil, registrationRepo.ErrRegistrationNotFound
	}
	copied := *f.reg
	return &copied, nil
}

func (f *fakeRegistrationRepo) GetOccupancyByRange(_ context.Context, _ int64, _, _ time.Time) ([]registrationRepo.SlotOccupancy, error) {
	return f.occupancy, nil
}

func (f *fakeRegistrationRepo) ReplaceSlots(_ context.Context, id int64, slots []domain.RegistrationSlot, snapshot json.RawMessage, totalHours int, status domain.RegistrationStatus) error {
	f.replaced = &replaceCall{id: id, slots: slots, snapshot: snapshot, totalHours: totalHours, status: status}
	f.reg.Slots = slots
	f.reg.Status = status
	f.reg.PricingSnapshot = snapshot
	f.reg.TotalHours = totalHours
	f.reg.SlotsCount = totalHours
	f.reg.CancelledAt = nil
	f.reg.CancelledReason = nil
	f.reg.CancelledByBlackoutRule = nil
	return nil
}

type fakeBlackoutRepo struct {
	rules []domain.BlackoutRule
}

func (f *fakeBlackoutRepo) GetByConfigAndRange(_ context.Context, _ int64, _, _ time.Time) ([]domain.BlackoutRule, error) {
	return f.rules, nil
}

type fakeCache struct {
	invalidated []int64
}

func (f *fakeCache) Invalidate(_ context.Context, configID int64) {
	f.invalidated = append(f.invalidated, configID)
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testConfig() *domain.WorkshopConfig {
	return &domain.WorkshopConfig{
		ID:                  7,
		Title:               "Pottery Workshop",
		Timezone:            "UTC",
		OpeningHour:         10,
		ClosingHour:         14,
		SlotDurationMinutes: 60,
		SlotCapacity:        5,
		BookingWindowDays:   7,
		IsActive:            true,
	}
}

// One slot voided by a blackout, one kept; owed exactly one replacement.
func partiallyCancelledRegistration() *domain.Registration {
	cancelledAt := time.Date(2025, time.March, 2, 9, 0, 0, 0, time.UTC)
	reason := "Kiln repair. 1 session was cancelled due to a schedule change."
	kept := time.Date(2025, time.March, 4, 13, 0, 0, 0, time.UTC)
	return &domain.Registration{
		ID:           55,
		Reference:    "ref-55",
		UserID:       3,
		ConfigID:     7,
		Participants: 2,
		Status:       domain.StatusConfirmed,
		TotalHours:   1,
		SlotsCount:   1,
		PricingSnapshot: json.RawMessage(`{
			"price_per_person": 180,
			"blackout_recovery": {
				"pending_slot_start_times": ["2025-03-04T10:00:00Z"],
				"required_slots": 1,
				"window_start_minutes": 600,
				"window_end_minutes": 720
			}
		}`),
		CancelledAt:             &cancelledAt,
		CancelledReason:         &reason,
		CancelledByBlackoutRule: ptr.Ptr(int64(13)),
		Slots: []domain.RegistrationSlot{
			{ID: 1, RegistrationID: 55, SlotStartAt: kept, SlotEndAt: kept.Add(time.Hour)},
		},
	}
}

func fullyCancelledRegistration() *domain.Registration {
	cancelledAt := time.Date(2025, time.March, 2, 9, 0, 0, 0, time.UTC)
	reason := "Kiln repair. 2 sessions were cancelled due to a schedule change."
	return &domain.Registration{
		ID:                      55,
		Reference:               "ref-55",
		UserID:                  3,
		ConfigID:                7,
		Participants:            2,
		Status:                  domain.StatusCancelled,
		TotalHours:              2,
		SlotsCount:              2,
		PricingSnapshot:         json.RawMessage(`{"price_per_person": 180}`),
		CancelledAt:             &cancelledAt,
		CancelledReason:         &reason,
		CancelledByBlackoutRule: ptr.Ptr(int64(13)),
	}
}

func newTestUseCase(regRepo *fakeRegistrationRepo, cache *fakeCache, now time.Time) *UseCase {
	uc := NewUseCase(&fakeConfigRepo{cfg: testConfig()}, regRepo, &fakeBlackoutRepo{}, cache, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedClock{now: now}
	return uc
}

func TestExecutePartialRescheduleKeepsSurvivingSlots(t *testing.T) {
	now := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	regRepo := &fakeRegistrationRepo{reg: partiallyCancelledRegistration()}
	cache := &fakeCache{}
	uc := newTestUseCase(regRepo, cache, now)

	resp, err := uc.Execute(context.Background(), &Request{
		RegistrationID: 55,
		UserID:         3,
		Slots:          []string{"2025-03-05T11:00:00Z"},
	})
	require.NoError(t, err)

	require.NotNil(t, regRepo.replaced)
	call := regRepo.replaced
	assert.Equal(t, int64(55), call.id)
	assert.Equal(t, domain.StatusConfirmed, call.status)
	assert.Equal(t, 2, call.totalHours)

	// Kept slot plus the picked replacement, in start order
	require.Len(t, call.slots, 2)
	assert.Equal(t, time.Date(2025, time.March, 4, 13, 0, 0, 0, time.UTC), call.slots[0].SlotStartAt.UTC())
	assert.Equal(t, time.Date(2025, time.March, 5, 11, 0, 0, 0, time.UTC), call.slots[1].SlotStartAt.UTC())

	// The entitlement is spent: no recovery block survives
	var snapshot map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(call.snapshot, &snapshot))
	assert.Contains(t, snapshot, "price_per_person")
	assert.NotContains(t, snapshot, "blackout_recovery")

	assert.Equal(t, []int64{7}, cache.invalidated)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecuteFullRescheduleRestoresConfirmed(t *testing.T) {
	now := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	regRepo := &fakeRegistrationRepo{reg: fullyCancelledRegistration()}
	uc := newTestUseCase(regRepo, &fakeCache{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		RegistrationID: 55,
		UserID:         3,
		Slots:          []string{"2025-03-05T11:00:00Z", "2025-03-05T12:00:00Z"},
	})
	require.NoError(t, err)

	require.NotNil(t, regRepo.replaced)
	assert.Equal(t, domain.StatusConfirmed, regRepo.replaced.status)
	require.Len(t, regRepo.replaced.slots, 2)
	assert.Equal(t, 11, regRepo.replaced.slots[0].SlotStartAt.UTC().Hour())
	assert.Equal(t, 12, regRepo.replaced.slots[1].SlotStartAt.UTC().Hour())
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecuteRejectsWrongSlotCount(t *testing.T) {
	now := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)

	t.Run("too many", func(t *testing.T) {
		regRepo := &fakeRegistrationRepo{reg: partiallyCancelledRegistration()}
		uc := newTestUseCase(regRepo, &fakeCache{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			RegistrationID: 55,
			UserID:         3,
			Slots:          []string{"2025-03-05T11:00:00Z", "2025-03-05T12:00:00Z"},
		})
		assert.ErrorIs(t, err, ErrWrongSlotCount)
		assert.Nil(t, regRepo.replaced)
	})

	t.Run("too few", func(t *testing.T) {
		regRepo := &fakeRegistrationRepo{reg: fullyCancelledRegistration()}
		uc := newTestUseCase(regRepo, &fakeCache{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			RegistrationID: 55,
			UserID:         3,
			Slots:          []string{"2025-03-05T11:00:00Z"},
		})
		assert.ErrorIs(t, err, ErrWrongSlotCount)
		assert.Nil(t, regRepo.replaced)
	})
}

func TestExecuteRejectsUserCancelledRegistration(t *testing.T) {
	now := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	reg := fullyCancelledRegistration()
	reg.CancelledByUserID = ptr.Ptr(int64(3))
	regRepo := &fakeRegistrationRepo{reg: reg}
	uc := newTestUseCase(regRepo, &fakeCache{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		RegistrationID: 55,
		UserID:         3,
		Slots:          []string{"2025-03-05T11:00:00Z", "2025-03-05T12:00:00Z"},
	})
	assert.ErrorIs(t, err, ErrNotReschedulable)
}

func TestExecuteAccessDenied(t *testing.T) {
	now := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	regRepo := &fakeRegistrationRepo{reg: partiallyCancelledRegistration()}
	uc := newTestUseCase(regRepo, &fakeCache{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		RegistrationID: 55,
		UserID:         99,
		Slots:          []string{"2025-03-05T11:00:00Z"},
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecuteRegistrationNotFound(t *testing.T) {
	now := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeRegistrationRepo{}, &fakeCache{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		RegistrationID: 55,
		UserID:         3,
		Slots:          []string{"2025-03-05T11:00:00Z"},
	})
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestExecuteRejectsSoldOutReplacement(t *testing.T) {
	now := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	regRepo := &fakeRegistrationRepo{
		reg: partiallyCancelledRegistration(),
		occupancy: []registrationRepo.SlotOccupancy{
			{SlotStartAt: time.Date(2025, time.March, 5, 11, 0, 0, 0, time.UTC), Participants: 5},
		},
	}
	uc := newTestUseCase(regRepo, &fakeCache{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		RegistrationID: 55,
		UserID:         3,
		Slots:          []string{"2025-03-05T11:00:00Z"},
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, regRepo.replaced)
}

func TestExecuteRejectsPastReplacement(t *testing.T) {
	now := time.Date(2025, time.March, 5, 11, 30, 0, 0, time.UTC)
	regRepo := &fakeRegistrationRepo{reg: partiallyCancelledRegistration()}
	uc := newTestUseCase(regRepo, &fakeCache{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		RegistrationID: 55,
		UserID:         3,
		Slots:          []string{"2025-03-05T11:00:00Z"},
	})
	assert.ErrorIs(t, err, ErrSlotInPast)
}
