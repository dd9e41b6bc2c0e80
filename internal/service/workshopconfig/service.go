package workshopconfig

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/craftday/workshop-booking-service/internal/domain"
	configRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/workshopconfig"
	"github.com/craftday/workshop-booking-service/internal/service/workshopconfig/models"
)

// Service handles workshop config reads and admin updates
type Service struct {
	configRepo ConfigRepository
	cache      AvailabilityCache
	logger     Logger
}

// NewService creates the workshop config service
func NewService(configRepo ConfigRepository, cache AvailabilityCache, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		cache:      cache,
		logger:     logger,
	}
}

// Create validates and persists a new workshop config with its tier set
func (s *Service) Create(ctx context.Context, req *models.CreateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Create: creating config %q", req.Title)

	cfg := req.ToDomain()
	if err := validateConfig(cfg); err != nil {
		s.logger.Warn("Create: validation failed for config %q: %v", req.Title, err)
		return nil, err
	}

	saved, err := s.configRepo.Create(ctx, cfg)
	if err != nil {
		s.logger.Error("Create: repository error for config %q: %v", req.Title, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created config id=%d", saved.ID)
	return models.FromDomainConfig(saved), nil
}

// GetByID fetches one workshop config with its pricing tiers
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetByID: fetching config id=%d", id)

	cfg, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("GetByID: config id=%d not found", id)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("GetByID: repository error for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg), nil
}

// Update merges the request into the stored config, validates the result
// and persists it. The availability cache is dropped because the slot grid
// may have changed shape.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config id=%d", id)

	cfg, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Update: config id=%d not found", id)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Update: repository error for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated := req.ApplyToDomain(cfg)
	if err := validateConfig(updated); err != nil {
		s.logger.Warn("Update: validation failed for config id=%d: %v", id, err)
		return nil, err
	}

	saved, err := s.configRepo.Update(ctx, id, updated)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Update: repository error for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.cache.Invalidate(ctx, id)

	s.logger.Info("Update: successfully updated config id=%d", id)
	return models.FromDomainConfig(saved), nil
}

// validateConfig checks the merged config against the business bounds
func validateConfig(cfg *domain.WorkshopConfig) error {
	if cfg.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, cfg.Timezone)
	}

	if cfg.OpeningHour < 0 || cfg.OpeningHour > 23 ||
		cfg.ClosingHour < 0 || cfg.ClosingHour > 23 ||
		cfg.OpeningHour >= cfg.ClosingHour {
		return fmt.Errorf("%w: opening hour must be before closing hour, both 0-23", ErrInvalidInput)
	}

	if cfg.SlotDurationMinutes < domain.MinSlotDurationMinutes ||
		cfg.SlotDurationMinutes > domain.MaxSlotDurationMinutes ||
		cfg.SlotDurationMinutes%domain.SlotDurationStep != 0 {
		return fmt.Errorf("%w: slot duration must be %d-%d minutes in %d-minute steps",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes, domain.SlotDurationStep)
	}

	if cfg.SlotCapacity < domain.MinSlotCapacity || cfg.SlotCapacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: slot capacity must be %d-%d",
			ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}

	if cfg.BookingWindowDays < domain.MinBookingWindowDays || cfg.BookingWindowDays > domain.MaxBookingWindowDays {
		return fmt.Errorf("%w: booking window must be %d-%d days",
			ErrInvalidInput, domain.MinBookingWindowDays, domain.MaxBookingWindowDays)
	}

	for _, t := range cfg.Tiers {
		if t.Hours < domain.MinTierHours {
			return fmt.Errorf("%w: tier hours must be at least %d", ErrInvalidInput, domain.MinTierHours)
		}
		if t.PricePerPerson < 0 {
			return fmt.Errorf("%w: tier price must not be negative", ErrInvalidInput)
		}
	}

	return nil
}
