package workshopconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftday/workshop-booking-service/internal/domain"
	configRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/workshopconfig"
	"github.com/craftday/workshop-booking-service/internal/service/workshopconfig/models"
	"github.com/craftday/workshop-booking-service/pkg/ptr"
)

type fakeConfigRepo struct {
	cfg     *domain.WorkshopConfig
	getErr  error
	created *domain.WorkshopConfig
	updated *domain.WorkshopConfig
}

func (f *fakeConfigRepo) GetByID(_ context.Context, _ int64) (*domain.WorkshopConfig, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := *f.cfg
	return &copied, nil
}

func (f *fakeConfigRepo) Create(_ context.Context, cfg *domain.WorkshopConfig) (*domain.WorkshopConfig, error) {
	stored := *cfg
	stored.ID = 9
	f.created = &stored
	return &stored, nil
}

func (f *fakeConfigRepo) Update(_ context.Context, _ int64, cfg *domain.WorkshopConfig) (*domain.WorkshopConfig, error) {
	f.updated = cfg
	return cfg, nil
}

type fakeCache struct {
	invalidated []int64
}

func (f *fakeCache) Invalidate(_ context.Context, configID int64) {
	f.invalidated = append(f.invalidated, configID)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testConfig() *domain.WorkshopConfig {
	return &domain.WorkshopConfig{
		ID:                  7,
		Title:               "Pottery Workshop",
		Timezone:            "Asia/Jerusalem",
		OpeningHour:         10,
		ClosingHour:         18,
		SlotDurationMinutes: 60,
		SlotCapacity:        6,
		BookingWindowDays:   30,
		IsActive:            true,
		Tiers: []domain.PricingTier{
			{ID: 1, ConfigID: 7, Hours: 1, PricePerPerson: 100, PiecesPerPerson: 1, SortOrder: 1, IsActive: true},
		},
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewService(repo, &fakeCache{}, nopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateConfigRequest{
		Title:       "Weekend Pottery",
		Timezone:    "UTC",
		OpeningHour: 9,
		ClosingHour: 17,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(9), resp.ID)
	assert.True(t, resp.IsActive)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.SlotDurationMinutes)
	assert.Equal(t, domain.DefaultSlotCapacity, resp.SlotCapacity)
	assert.Equal(t, domain.DefaultBookingWindowDays, resp.BookingWindowDays)
}

func TestCreateRejectsInvalidConfig(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewService(repo, &fakeCache{}, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateConfigRequest{
		Title:       "Weekend Pottery",
		Timezone:    "Mars/Olympus",
		OpeningHour: 9,
		ClosingHour: 17,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, repo.created)
}

func TestGetByID(t *testing.T) {
	svc := NewService(&fakeConfigRepo{cfg: testConfig()}, &fakeCache{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "Pottery Workshop", resp.Title)
	assert.Equal(t, "Asia/Jerusalem", resp.Timezone)
	require.Len(t, resp.Tiers, 1)
	assert.Equal(t, 100.0, resp.Tiers[0].PricePerPerson)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewService(&fakeConfigRepo{getErr: configRepo.ErrConfigNotFound}, &fakeCache{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestUpdateMergesAndInvalidatesCache(t *testing.T) {
	repo := &fakeConfigRepo{cfg: testConfig()}
	cache := &fakeCache{}
	svc := NewService(repo, cache, nopLogger{})

	resp, err := svc.Update(context.Background(), 7, &models.UpdateConfigRequest{
		Title:        ptr.Ptr("Evening Pottery"),
		SlotCapacity: ptr.Ptr(8),
	})
	require.NoError(t, err)

	assert.Equal(t, "Evening Pottery", resp.Title)
	assert.Equal(t, 8, resp.SlotCapacity)
	// Untouched fields keep their stored values
	assert.Equal(t, 10, resp.OpeningHour)
	assert.Equal(t, 30, resp.BookingWindowDays)

	require.NotNil(t, repo.updated)
	assert.Equal(t, "Evening Pottery", repo.updated.Title)
	assert.Equal(t, []int64{7}, cache.invalidated)
}

func TestUpdateReplacesTiers(t *testing.T) {
	repo := &fakeConfigRepo{cfg: testConfig()}
	svc := NewService(repo, &fakeCache{}, nopLogger{})

	resp, err := svc.Update(context.Background(), 7, &models.UpdateConfigRequest{
		Tiers: []models.TierInput{
			{Hours: 2, PricePerPerson: 180, PiecesPerPerson: 2, SortOrder: 1, IsActive: true},
			{Hours: 4, PricePerPerson: 320, PiecesPerPerson: 4, SortOrder: 2, IsActive: true},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Tiers, 2)
	assert.Equal(t, 2, resp.Tiers[0].Hours)
	assert.Equal(t, 4, resp.Tiers[1].Hours)
}

func TestUpdateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpdateConfigRequest
	}{
		{"empty title", models.UpdateConfigRequest{Title: ptr.Ptr("")}},
		{"unknown timezone", models.UpdateConfigRequest{Timezone: ptr.Ptr("Mars/Olympus")}},
		{"inverted hours", models.UpdateConfigRequest{OpeningHour: ptr.Ptr(18), ClosingHour: ptr.Ptr(10)}},
		{"off-step duration", models.UpdateConfigRequest{SlotDurationMinutes: ptr.Ptr(50)}},
		{"zero capacity", models.UpdateConfigRequest{SlotCapacity: ptr.Ptr(0)}},
		{"window too long", models.UpdateConfigRequest{BookingWindowDays: ptr.Ptr(domain.MaxBookingWindowDays + 1)}},
		{"zero-hour tier", models.UpdateConfigRequest{Tiers: []models.TierInput{{Hours: 0, PricePerPerson: 50}}}},
		{"negative tier price", models.UpdateConfigRequest{Tiers: []models.TierInput{{Hours: 1, PricePerPerson: -5}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeConfigRepo{cfg: testConfig()}
			svc := NewService(repo, &fakeCache{}, nopLogger{})

			_, err := svc.Update(context.Background(), 7, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, repo.updated)
		})
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc := NewService(&fakeConfigRepo{getErr: configRepo.ErrConfigNotFound}, &fakeCache{}, nopLogger{})

	_, err := svc.Update(context.Background(), 42, &models.UpdateConfigRequest{Title: ptr.Ptr("X")})
	assert.ErrorIs(t, err, ErrConfigNotFound)
}
