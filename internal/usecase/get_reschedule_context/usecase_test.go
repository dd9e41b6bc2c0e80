package get_reschedule_context

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

type fakeRegistrationRepo struct {
	reg *domain.Registration
}

func (f *fakeRegistrationRepo) GetByID(_ context.Context, id int64) (*domain.Registration, error) {
	if f.reg == nil || f.reg.ID != id {
		return nil, registrationRepo.ErrRegistrationNotFound
	}
	return f.reg, nil
}

type fakeConfigRepo struct {
	cfg *domain.WorkshopConfig
}

func (f *fakeConfigRepo) GetByID(_ context.Context, _ int64) (*domain.WorkshopConfig, error) {
	return f.cfg, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testConfig() *domain.WorkshopConfig {
	return &domain.WorkshopConfig{
		ID:                  7,
		Timezone:            "UTC",
		SlotDurationMinutes: 60,
	}
}

func newTestUseCase(reg *domain.Registration) *UseCase {
	return NewUseCase(&fakeRegistrationRepo{reg: reg}, &fakeConfigRepo{cfg: testConfig()}, nopLogger{})
}

func TestExecutePartiallyCancelledWithMetadata(t *testing.T) {
	cancelledAt := time.Date(2025, time.March, 2, 9, 0, 0, 0, time.UTC)
	reason := "Kiln repair. 2 sessions were cancelled due to a schedule change."
	reg := &domain.Registration{
		ID:       55,
		UserID:   3,
		ConfigID: 7,
		Status:   domain.StatusConfirmed,
		PricingSnapshot: json.RawMessage(`{
			"price_per_person": 180,
			"blackout_recovery": {
				"pending_slot_start_times": ["2025-03-04T10:00:00Z", "2025-03-04T11:00:00Z"],
				"required_slots": 2,
				"window_start_minutes": 600,
				"window_end_minutes": 720
			}
		}`),
		CancelledAt:             &cancelledAt,
		CancelledReason:         &reason,
		CancelledByBlackoutRule: ptr.Ptr(int64(13)),
	}

	resp, err := newTestUseCase(reg).Execute(context.Background(), &Request{RegistrationID: 55, UserID: 3})
	require.NoError(t, err)

	assert.True(t, resp.PartiallyCancelled)
	assert.False(t, resp.FullyCancelled)
	assert.True(t, resp.CanReschedule)
	assert.Equal(t, 2, resp.RequiredSlots)
	assert.Equal(t, 2, resp.RequiredHours)
	assert.Equal(t, []string{"2025-03-04T10:00:00Z", "2025-03-04T11:00:00Z"}, resp.PendingSlotStartTimes)
	require.NotNil(t, resp.WindowStartMinutes)
	assert.Equal(t, 600, *resp.WindowStartMinutes)

	// Machine clauses are stripped from the customer-facing text
	assert.Contains(t, resp.DisplayReason, "Kiln repair")
	assert.NotContains(t, resp.DisplayReason, "schedule change")
}

func TestExecutePartiallyCancelledFromReasonTextOnly(t *testing.T) {
	cancelledAt := time.Date(2025, time.March, 2, 9, 0, 0, 0, time.UTC)
	reason := "Kiln repair. 3 sessions were cancelled due to a schedule change."
	reg := &domain.Registration{
		ID:              55,
		UserID:          3,
		ConfigID:        7,
		Status:          domain.StatusConfirmed,
		PricingSnapshot: json.RawMessage(`{"price_per_person": 180}`),
		CancelledAt:     &cancelledAt,
		CancelledReason: &reason,
	}

	resp, err := newTestUseCase(reg).Execute(context.Background(), &Request{RegistrationID: 55, UserID: 3})
	require.NoError(t, err)

	assert.True(t, resp.PartiallyCancelled)
	assert.True(t, resp.CanReschedule)
	assert.Equal(t, 3, resp.RequiredSlots)
}

func TestExecuteFullyCancelledOwesAllSlots(t *testing.T) {
	cancelledAt := time.Date(2025, time.March, 2, 9, 0, 0, 0, time.UTC)
	reason := "Kiln repair."
	reg := &domain.Registration{
		ID:                      55,
		UserID:                  3,
		ConfigID:                7,
		Status:                  domain.StatusCancelled,
		SlotsCount:              2,
		CancelledAt:             &cancelledAt,
		CancelledReason:         &reason,
		CancelledByBlackoutRule: ptr.Ptr(int64(13)),
	}

	resp, err := newTestUseCase(reg).Execute(context.Background(), &Request{RegistrationID: 55, UserID: 3})
	require.NoError(t, err)

	assert.True(t, resp.FullyCancelled)
	assert.False(t, resp.PartiallyCancelled)
	assert.True(t, resp.CanReschedule)
	assert.Equal(t, 2, resp.RequiredSlots)
}

func TestExecuteUserCancelledCannotReschedule(t *testing.T) {
	cancelledAt := time.Date(2025, time.March, 2, 9, 0, 0, 0, time.UTC)
	reason := "Changed my mind"
	reg := &domain.Registration{
		ID:                55,
		UserID:            3,
		ConfigID:          7,
		Status:            domain.StatusCancelled,
		SlotsCount:        2,
		CancelledAt:       &cancelledAt,
		CancelledReason:   &reason,
		CancelledByUserID: ptr.Ptr(int64(3)),
	}

	resp, err := newTestUseCase(reg).Execute(context.Background(), &Request{RegistrationID: 55, UserID: 3})
	require.NoError(t, err)

	assert.False(t, resp.CanReschedule)
	assert.Equal(t, 0, resp.RequiredSlots)
	assert.Empty(t, resp.DisplayReason)
}

func TestExecuteUntouchedRegistration(t *testing.T) {
	reg := &domain.Registration{
		ID:       55,
		UserID:   3,
		ConfigID: 7,
		Status:   domain.StatusConfirmed,
	}

	resp, err := newTestUseCase(reg).Execute(context.Background(), &Request{RegistrationID: 55, UserID: 3})
	require.NoError(t, err)

	assert.False(t, resp.CanReschedule)
	assert.False(t, resp.PartiallyCancelled)
	assert.False(t, resp.FullyCancelled)
}

func TestExecuteAccessDenied(t *testing.T) {
	reg := &domain.Registration{ID: 55, UserID: 3, ConfigID: 7, Status: domain.StatusConfirmed}

	_, err := newTestUseCase(reg).Execute(context.Background(), &Request{RegistrationID: 55, UserID: 99})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecuteRegistrationNotFound(t *testing.T) {
	_, err := newTestUseCase(nil).Execute(context.Background(), &Request{RegistrationID: 55, UserID: 3})
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}
