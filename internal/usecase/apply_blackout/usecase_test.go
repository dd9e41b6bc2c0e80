package apply_blackout

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftday/workshop-booking-service/internal/domain"
	configRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/workshopconfig"
)

type fakeConfigRepo struct {
	cfg *domain.WorkshopConfig
	err error
}

func (f *fakeConfigRepo) GetByID(_ context.Context, _ int64) (*domain.WorkshopConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cfg, nil
}

type fakeBlackoutRepo struct {
	created *domain.BlackoutRule
}

func (f *fakeBlackoutRepo) Create(_ context.Context, rule *domain.BlackoutRule) (*domain.BlackoutRule, error) {
	stored := *rule
	stored.ID = 13
	f.created = &stored
	return &stored, nil
}

type cancelCall struct {
	id     int64
	reason string
	ruleID *int64
}

type partialCall struct {
	id       int64
	reason   string
	ruleID   int64
	snapshot json.RawMessage
	kept     []domain.RegistrationSlot
}

type fakeRegistrationRepo struct {
	active   []*domain.Registration
	cancels  []cancelCall
	partials []partialCall
}

func (f *fakeRegistrationRepo) GetActiveByConfigAndRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Registration, error) {
	return f.active, nil
}

func (f *fakeRegistrationRepo) Cancel(_ context.Context, id int64, reason string, _ *int64, ruleID *int64) error {
	f.cancels = append(f.cancels, cancelCall{id: id, reason: reason, ruleID: ruleID})
	return nil
}

func (f *fakeRegistrationRepo) ApplyPartialCancellation(_ context.Context, id int64, reason string, ruleID int64, snapshot json.RawMessage, keptSlots []domain.RegistrationSlot) error {
	f.partials = append(f.partials, partialCall{id: id, reason: reason, ruleID: ruleID, snapshot: snapshot, kept: keptSlots})
	return nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testConfig(autoCancel bool) *domain.WorkshopConfig {
	return &domain.WorkshopConfig{
		ID:                   7,
		Title:                "Pottery Workshop",
		Timezone:             "UTC",
		OpeningHour:          10,
		ClosingHour:          14,
		SlotDurationMinutes:  60,
		SlotCapacity:         5,
		BookingWindowDays:    7,
		IsActive:             true,
		AutoCancelOnBlackout: autoCancel,
	}
}

func slotAt(t time.Time) domain.RegistrationSlot {
	return domain.RegistrationSlot{SlotStartAt: t, SlotEndAt: t.Add(time.Hour)}
}

func TestExecuteCreatesRuleWithoutAutoCancel(t *testing.T) {
	regRepo := &fakeRegistrationRepo{
		active: []*domain.Registration{
			{
				ID:     1,
				Status: domain.StatusConfirmed,
				Slots:  []domain.RegistrationSlot{slotAt(time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC))},
			},
		},
	}
	cache := &fakeCache{}
	uc := NewUseCase(&fakeConfigRepo{cfg: testConfig(false)}, &fakeBlackoutRepo{}, regRepo, cache, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ConfigID:     7,
		Date:         "2025-03-04",
		StartMinutes: 600,
		EndMinutes:   720,
		Reason:       "Kiln repair",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(13), resp.RuleID)
	assert.Equal(t, 0, resp.FullyCancelled)
	assert.Equal(t, 0, resp.PartiallyCancelled)
	assert.Empty(t, regRepo.cancels)
	assert.Equal(t, []int64{7}, cache.invalidated)
}

func TestExecuteCancelsFullyCoveredRegistration(t *testing.T) {
	regRepo := &fakeRegistrationRepo{
		active: []*domain.Registration{
			{
				ID:     1,
				Status: domain.StatusConfirmed,
				Slots: []domain.RegistrationSlot{
					slotAt(time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)),
					slotAt(time.Date(2025, time.March, 4, 11, 0, 0, 0, time.UTC)),
				},
			},
		},
	}
	uc := NewUseCase(&fakeConfigRepo{cfg: testConfig(true)}, &fakeBlackoutRepo{}, regRepo, &fakeCache{}, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ConfigID:     7,
		Date:         "2025-03-04",
		StartMinutes: 600,
		EndMinutes:   720,
		Reason:       "Kiln repair",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.FullyCancelled)
	assert.Equal(t, 0, resp.PartiallyCancelled)

	require.Len(t, regRepo.cancels, 1)
	call := regRepo.cancels[0]
	assert.Equal(t, int64(1), call.id)
	require.NotNil(t, call.ruleID)
	assert.Equal(t, int64(13), *call.ruleID)
	assert.Contains(t, call.reason, "Kiln repair.")
	assert.Contains(t, call.reason, "2 sessions were cancelled")
	assert.Empty(t, regRepo.partials)
}

func TestExecutePartiallyCancelsAndEmbedsRecovery(t *testing.T) {
	regRepo := &fakeRegistrationRepo{
		active: []*domain.Registration{
			{
				ID:              1,
				Status:          domain.StatusConfirmed,
				PricingSnapshot: json.RawMessage(`{"total_hours":2,"price_per_person":180}`),
				Slots: []domain.RegistrationSlot{
					slotAt(time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)),
					slotAt(time.Date(2025, time.March, 4, 13, 0, 0, 0, time.UTC)),
				},
			},
		},
	}
	uc := NewUseCase(&fakeConfigRepo{cfg: testConfig(true)}, &fakeBlackoutRepo{}, regRepo, &fakeCache{}, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ConfigID:     7,
		Date:         "2025-03-04",
		StartMinutes: 600,
		EndMinutes:   720,
		Reason:       "Kiln repair",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.FullyCancelled)
	assert.Equal(t, 1, resp.PartiallyCancelled)

	require.Len(t, regRepo.partials, 1)
	call := regRepo.partials[0]
	assert.Equal(t, int64(1), call.id)
	assert.Equal(t, int64(13), call.ruleID)

	// The 13:00 slot falls outside the window and survives
	require.Len(t, call.kept, 1)
	assert.Equal(t, 13, call.kept[0].SlotStartAt.UTC().Hour())

	// The recovery record sits next to the original pricing fields
	var snapshot map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(call.snapshot, &snapshot))
	assert.Contains(t, snapshot, "total_hours")
	require.Contains(t, snapshot, "blackout_recovery")

	var meta domain.BlackoutRecoveryMetadata
	require.NoError(t, json.Unmarshal(snapshot["blackout_recovery"], &meta))
	assert.Equal(t, 1, meta.RequiredSlots)
	assert.Equal(t, []string{"2025-03-04T10:00:00Z"}, meta.PendingSlotStartTimes)
	require.NotNil(t, meta.WindowStartMinutes)
	assert.Equal(t, 600, *meta.WindowStartMinutes)

	assert.Contains(t, call.reason, "1 session was cancelled")
}

func TestExecuteSkipsRegistrationsOutsideWindow(t *testing.T) {
	regRepo := &fakeRegistrationRepo{
		active: []*domain.Registration{
			{
				ID:     1,
				Status: domain.StatusConfirmed,
				Slots:  []domain.RegistrationSlot{slotAt(time.Date(2025, time.March, 4, 13, 0, 0, 0, time.UTC))},
			},
		},
	}
	uc := NewUseCase(&fakeConfigRepo{cfg: testConfig(true)}, &fakeBlackoutRepo{}, regRepo, &fakeCache{}, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ConfigID:     7,
		Date:         "2025-03-04",
		StartMinutes: 600,
		EndMinutes:   720,
		Reason:       "Kiln repair",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.FullyCancelled)
	assert.Equal(t, 0, resp.PartiallyCancelled)
	assert.Empty(t, regRepo.cancels)
	assert.Empty(t, regRepo.partials)
}

func TestExecuteZeroEndMinutesBlocksRestOfDay(t *testing.T) {
	blkRepo := &fakeBlackoutRepo{}
	uc := NewUseCase(&fakeConfigRepo{cfg: testConfig(false)}, blkRepo, &fakeRegistrationRepo{}, &fakeCache{}, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ConfigID:     7,
		Date:         "2025-03-04",
		StartMinutes: 600,
		Reason:       "Kiln repair",
	})
	require.NoError(t, err)

	assert.Equal(t, 1440, resp.EndMinutes)
	assert.Equal(t, 1440, blkRepo.created.EndMinutes)
}

func TestExecuteValidation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"zero config", Request{Date: "2025-03-04", StartMinutes: 600, EndMinutes: 720}},
		{"inverted window", Request{ConfigID: 7, Date: "2025-03-04", StartMinutes: 720, EndMinutes: 600}},
		{"start beyond day", Request{ConfigID: 7, Date: "2025-03-04", StartMinutes: 1500, EndMinutes: 0}},
		{"reason too long", Request{ConfigID: 7, Date: "2025-03-04", StartMinutes: 600, EndMinutes: 720, Reason: strings.Repeat("x", domain.MaxReasonLength+1)}},
	}

	uc := NewUseCase(&fakeConfigRepo{cfg: testConfig(false)}, &fakeBlackoutRepo{}, &fakeRegistrationRepo{}, &fakeCache{}, fakeTxManager{}, nopLogger{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecuteConfigNotFound(t *testing.T) {
	uc := NewUseCase(&fakeConfigRepo{err: configRepo.ErrConfigNotFound}, &fakeBlackoutRepo{}, &fakeRegistrationRepo{}, &fakeCache{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ConfigID:     42,
		Date:         "2025-03-04",
		StartMinutes: 600,
		EndMinutes:   720,
	})
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestExecuteMalformedDate(t *testing.T) {
	uc := NewUseCase(&fakeConfigRepo{cfg: testConfig(false)}, &fakeBlackoutRepo{}, &fakeRegistrationRepo{}, &fakeCache{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ConfigID:     7,
		Date:         "04.03.2025",
		StartMinutes: 600,
		EndMinutes:   720,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
