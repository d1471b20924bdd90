package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/M0steK/taxifleet-manager/internal/model"
	"github.com/M0steK/taxifleet-manager/internal/repository"
)

// Pickup records older than this are swept by CleanupOld.
const pickupRetentionMonths = 3

type PickupService struct {
	pickupRepo *repository.PickupRepository
	userRepo   *repository.UserRepository
	loc        *time.Location
	log        zerolog.Logger
}

func NewPickupService(pickupRepo *repository.PickupRepository, userRepo *repository.UserRepository, loc *time.Location, log zerolog.Logger) *PickupService {
	return &PickupService{pickupRepo: pickupRepo, userRepo: userRepo, loc: loc, log: log}
}

type CreatePickupInput struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Timestamp *string  `json:"timestamp"`
}

// Create records a pickup for the calling driver. The timestamp defaults to
// now when the client omits it.
func (s *PickupService) Create(ctx context.Context, principal model.Principal, input CreatePickupInput) (*model.PickupLocation, error) {
	user, err := s.userRepo.GetInCompany(ctx, principal.UserID, principal.CompanyID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	if input.Latitude == nil || input.Longitude == nil {
		return nil, fmt.Errorf("%w: latitude and longitude are required", ErrInvalidInput)
	}
	if *input.Latitude < -90 || *input.Latitude > 90 || *input.Longitude < -180 || *input.Longitude > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}

	pickup := &model.PickupLocation{
		UserID:    principal.UserID,
		Latitude:  *input.Latitude,
		Longitude: *input.Longitude,
	}
	if input.Timestamp != nil {
		ts, err := parseTimeInput(*input.Timestamp, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid timestamp", ErrInvalidInput)
		}
		pickup.PickupTimestamp = ts
	}

	if err := s.pickupRepo.Create(ctx, pickup); err != nil {
		return nil, err
	}
	return pickup, nil
}

// List returns the company's pickups. Drivers see only their own, bounded
// by the retention window since anything older is purged anyway.
func (s *PickupService) List(ctx context.Context, principal model.Principal) ([]model.PickupLocation, error) {
	if principal.IsAdmin() {
		return s.pickupRepo.ListByCompany(ctx, principal.CompanyID)
	}
	now := time.Now().In(s.loc)
	return s.pickupRepo.ListForUserBetween(ctx, principal.UserID, now.AddDate(0, -pickupRetentionMonths, 0), now)
}

// CleanupOld deletes pickups past the retention window and returns the
// number of rows removed.
func (s *PickupService) CleanupOld(ctx context.Context) (int64, error) {
	cutoff := time.Now().In(s.loc).AddDate(0, -pickupRetentionMonths, 0)
	removed, err := s.pickupRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("old pickup locations deleted")
	}
	return removed, nil
}
