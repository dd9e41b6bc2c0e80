package registrations

import (
	"context"
	"errors"
	"fmt"

	"github.com/craftday/workshop-booking-service/internal/domain"
	registrationRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/registration"
	"github.com/craftday/workshop-booking-service/internal/service/registrations/models"
	"github.com/craftday/workshop-booking-service/pkg/ptr"
)

// Service handles registration reads and user-initiated cancellations
type Service struct {
	registrationRepo RegistrationRepository
	cache            AvailabilityCache
	logger           Logger
}

// NewService creates the registrations service
func NewService(
	registrationRepo RegistrationRepository,
	cache AvailabilityCache,
	logger Logger,
) *Service {
	return &Service{
		registrationRepo: registrationRepo,
		cache:            cache,
		logger:           logger,
	}
}

// GetByID fetches one registration. Users can only see their own.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.RegistrationResponse, error) {
	s.logger.Info("GetByID: fetching registration id=%d for user=%d", id, userID)

	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, registrationRepo.ErrRegistrationNotFound) {
			s.logger.Warn("GetByID: registration id=%d not found", id)
			return nil, ErrRegistrationNotFound
		}
		s.logger.Error("GetByID: repository error for registration id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if reg.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to registration id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainRegistration(reg), nil
}

// GetUserRegistrations fetches the caller's registration history,
// optionally filtered by status.
func (s *Service) GetUserRegistrations(ctx context.Context, req *models.GetUserRegistrationsRequest) (*models.RegistrationListResponse, error) {
	s.logger.Info("GetUserRegistrations: fetching registrations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.RegistrationStatus
	if req.Status != nil {
		status, err := models.ToDomainRegistrationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserRegistrations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	regs, err := s.registrationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserRegistrations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserRegistrations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserRegistrations: fetched %d registrations for user=%d", len(regs), req.UserID)
	return models.FromDomainRegistrationList(regs), nil
}

// Cancel cancels the caller's own registration and frees its capacity
func (s *Service) Cancel(ctx context.Context, registrationID int64, req *models.CancelRegistrationRequest) error {
	s.logger.Info("Cancel: cancelling registration id=%d by user=%d", registrationID, req.UserID)

	reg, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, registrationRepo.ErrRegistrationNotFound) {
			s.logger.Warn("Cancel: registration id=%d not found", registrationID)
			return ErrRegistrationNotFound
		}
		s.logger.Error("Cancel: repository error for registration id=%d: %v", registrationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if reg.UserID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to registration id=%d", req.UserID, registrationID)
		return ErrAccessDenied
	}

	if !reg.CanBeCancelled() {
		s.logger.Warn("Cancel: registration id=%d cannot be cancelled, status=%s", registrationID, reg.Status)
		return ErrCannotCancel
	}

	if err := s.registrationRepo.Cancel(ctx, registrationID, req.Reason, ptr.Ptr(req.UserID), nil); err != nil {
		if errors.Is(err, registrationRepo.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		s.logger.Error("Cancel: repository error for registration id=%d: %v", registrationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// The cancelled slots are free again
	s.cache.Invalidate(ctx, reg.ConfigID)

	s.logger.Info("Cancel: successfully cancelled registration id=%d", registrationID)
	return nil
}
