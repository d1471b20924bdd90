package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/M0steK/taxifleet-manager/internal/model"
	"github.com/M0steK/taxifleet-manager/internal/repository"
	"github.com/M0steK/taxifleet-manager/internal/shift"
)

type ScheduleService struct {
	scheduleRepo *repository.ScheduleRepository
	userRepo     *repository.UserRepository
	vehicleRepo  *repository.VehicleRepository
	loc          *time.Location
}

func NewScheduleService(
	scheduleRepo *repository.ScheduleRepository,
	userRepo *repository.UserRepository,
	vehicleRepo *repository.VehicleRepository,
	loc *time.Location,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
		vehicleRepo:  vehicleRepo,
		loc:          loc,
	}
}

type CreateScheduleInput struct {
	UserID    string
	VehicleID string
	StartTime string
	EndTime   string
	Notes     *string
}

func (s *ScheduleService) Create(ctx context.Context, principal model.Principal, input CreateScheduleInput) (*model.Schedule, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	if input.UserID == "" || input.VehicleID == "" || input.StartTime == "" || input.EndTime == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidInput)
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrInvalidInput)
	}
	vehicleID, err := uuid.Parse(input.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid vehicle id", ErrInvalidInput)
	}

	// Company scope first: a foreign user or vehicle reads as missing.
	user, err := s.userRepo.GetInCompany(ctx, userID, principal.CompanyID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: invalid user or not in your company", ErrNotFound)
	}

	vehicle, err := s.vehicleRepo.GetInCompany(ctx, vehicleID, principal.CompanyID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, fmt.Errorf("%w: vehicle not found or not in your company", ErrNotFound)
	}

	start, err := parseTimeInput(input.StartTime, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time", ErrInvalidInput)
	}
	end, err := parseTimeInput(input.EndTime, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end time", ErrInvalidInput)
	}

	if err := s.validateAssignment(ctx, userID, vehicleID, start, end, vehicle, nil); err != nil {
		return nil, err
	}

	schedule := &model.Schedule{
		UserID:    userID,
		VehicleID: vehicleID,
		StartTime: start,
		EndTime:   end,
		Notes:     input.Notes,
	}

	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// validateAssignment enforces the write-time invariants for a manual entry:
// a real window, a vehicle legally valid through the window's end, and no
// driver or vehicle double-booking.
func (s *ScheduleService) validateAssignment(ctx context.Context, userID, vehicleID uuid.UUID, start, end time.Time, vehicle *model.Vehicle, excludeID *uuid.UUID) error {
	if !start.Before(end) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}
	if vehicle.Status != model.VehicleStatusActive {
		return fmt.Errorf("%w: vehicle not active", ErrInvalidInput)
	}
	if !shift.IsEligible(*vehicle, end) {
		return fmt.Errorf("%w: vehicle documents invalid for entire shift period", ErrInvalidInput)
	}

	existing, err := s.scheduleRepo.ListOverlapping(ctx, start, end)
	if err != nil {
		return err
	}
	if c := shift.FindConflict(userID, vehicleID, start, end, existing, excludeID); c != nil {
		if c.OfDriver {
			return fmt.Errorf("%w: driver already assigned to an overlapping shift", ErrInvalidInput)
		}
		return fmt.Errorf("%w: vehicle already assigned to an overlapping shift", ErrInvalidInput)
	}
	return nil
}

func (s *ScheduleService) List(ctx context.Context, principal model.Principal) ([]model.Schedule, error) {
	return s.scheduleRepo.ListByCompany(ctx, principal.CompanyID)
}

// Today returns entries starting within the current local calendar day.
func (s *ScheduleService) Today(ctx context.Context, principal model.Principal) ([]model.Schedule, error) {
	today := startOfDay(time.Now().In(s.loc))
	return s.scheduleRepo.ListStartingBetween(ctx, principal.CompanyID, today, today.AddDate(0, 0, 1))
}

func (s *ScheduleService) Get(ctx context.Context, principal model.Principal, id string) (*model.Schedule, error) {
	scheduleID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidInput
	}

	schedule, err := s.scheduleRepo.GetDetailed(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule == nil || schedule.User == nil || schedule.User.CompanyID != principal.CompanyID {
		return nil, fmt.Errorf("%w: schedule not found", ErrNotFound)
	}
	return schedule, nil
}

type UpdateScheduleInput struct {
	UserID    *string
	VehicleID *string
	StartTime *string
	EndTime   *string
	Notes     *string
}

// Update applies a partial edit. The start-before-end check always runs on
// the effective window; eligibility and conflicts are re-validated only when
// the vehicle or the window changes. A notes-only or driver-only edit keeps
// the original validation result.
func (s *ScheduleService) Update(ctx context.Context, principal model.Principal, id string, input UpdateScheduleInput) (*model.Schedule, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	schedule, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if input.UserID != nil {
		userID, err := uuid.Parse(*input.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid user id", ErrInvalidInput)
		}
		user, err := s.userRepo.GetInCompany(ctx, userID, principal.CompanyID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, fmt.Errorf("%w: invalid user or not in your company", ErrNotFound)
		}
		schedule.UserID = userID
	}
	if input.VehicleID != nil {
		vehicleID, err := uuid.Parse(*input.VehicleID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid vehicle id", ErrInvalidInput)
		}
		schedule.VehicleID = vehicleID
	}
	if input.StartTime != nil {
		start, err := parseTimeInput(*input.StartTime, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start time", ErrInvalidInput)
		}
		schedule.StartTime = start
	}
	if input.EndTime != nil {
		end, err := parseTimeInput(*input.EndTime, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end time", ErrInvalidInput)
		}
		schedule.EndTime = end
	}
	if input.Notes != nil {
		schedule.Notes = input.Notes
	}

	if !schedule.StartTime.Before(schedule.EndTime) {
		return nil, fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	if input.VehicleID != nil || input.StartTime != nil || input.EndTime != nil {
		vehicle, err := s.vehicleRepo.GetInCompany(ctx, schedule.VehicleID, principal.CompanyID)
		if err != nil {
			return nil, err
		}
		if vehicle == nil {
			return nil, fmt.Errorf("%w: vehicle not found or not in your company", ErrNotFound)
		}
		if err := s.validateAssignment(ctx, schedule.UserID, schedule.VehicleID, schedule.StartTime, schedule.EndTime, vehicle, &schedule.ID); err != nil {
			return nil, err
		}
	}

	// Save only the row itself; the preloads are display data.
	updated := *schedule
	updated.User = nil
	updated.Vehicle = nil
	if err := s.scheduleRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return s.Get(ctx, principal, id)
}

func (s *ScheduleService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	schedule, err := s.Get(ctx, principal, id)
	if err != nil {
		return err
	}

	affected, err := s.scheduleRepo.Delete(ctx, schedule.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: schedule not found", ErrNotFound)
	}
	return nil
}

// DayOccupancy is the admin calendar cell data for one date: capacity, free
// slots and the raw occupied-driver count per shift window.
type DayOccupancy struct {
	Date      string          `json:"date"`
	Morning   shift.Occupancy `json:"morning"`
	Afternoon shift.Occupancy `json:"afternoon"`
	Night     shift.Occupancy `json:"night"`
}

func (s *ScheduleService) DayOccupancy(ctx context.Context, principal model.Principal, date string) (*DayOccupancy, error) {
	day, err := shift.ParseDate(date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}

	vehicles, err := s.vehicleRepo.ListByCompany(ctx, principal.CompanyID)
	if err != nil {
		return nil, err
	}

	// One fetch covers all three windows: midnight through the night
	// window's end on the next day.
	_, nightEnd := shift.Window(day, shift.LabelNight)
	entries, err := s.scheduleRepo.ListOverlapping(ctx, day, nightEnd)
	if err != nil {
		return nil, err
	}

	return &DayOccupancy{
		Date:      day.Format(shift.DateLayout),
		Morning:   shift.ComputeOccupancy(vehicles, entries, day, shift.LabelMorning, s.loc),
		Afternoon: shift.ComputeOccupancy(vehicles, entries, day, shift.LabelAfternoon, s.loc),
		Night:     shift.ComputeOccupancy(vehicles, entries, day, shift.LabelNight, s.loc),
	}, nil
}
