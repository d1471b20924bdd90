package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/M0steK/taxifleet-manager/internal/model"
	"github.com/M0steK/taxifleet-manager/internal/repository"
	"github.com/M0steK/taxifleet-manager/internal/shift"
)

type DriverService struct {
	db           *gorm.DB
	userRepo     *repository.UserRepository
	vehicleRepo  *repository.VehicleRepository
	scheduleRepo *repository.ScheduleRepository
	pickupRepo   *repository.PickupRepository
	loc          *time.Location
	intn         func(n int) int
	log          zerolog.Logger
}

func NewDriverService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	vehicleRepo *repository.VehicleRepository,
	scheduleRepo *repository.ScheduleRepository,
	pickupRepo *repository.PickupRepository,
	loc *time.Location,
	intn func(n int) int,
	log zerolog.Logger,
) *DriverService {
	return &DriverService{
		db:           db,
		userRepo:     userRepo,
		vehicleRepo:  vehicleRepo,
		scheduleRepo: scheduleRepo,
		pickupRepo:   pickupRepo,
		loc:          loc,
		intn:         intn,
		log:          log,
	}
}

// resolveDriver loads the addressed driver after the access check: drivers
// may only address themselves, admins any driver of their company.
func (s *DriverService) resolveDriver(ctx context.Context, principal model.Principal, userID string) (*model.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrInvalidInput)
	}
	if !principal.IsAdmin() && principal.UserID != id {
		return nil, ErrPermissionDenied
	}

	user, err := s.userRepo.GetInCompany(ctx, id, principal.CompanyID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != model.UserRoleDriver {
		return nil, fmt.Errorf("%w: driver not found", ErrNotFound)
	}
	return user, nil
}

// WeekAvailability projects the 7-day grid starting at weekStart
// ("2006-01-02"); when weekStart is empty, the Monday of the current week.
func (s *DriverService) WeekAvailability(ctx context.Context, principal model.Principal, userID, weekStart string) ([]shift.DayInfo, error) {
	driver, err := s.resolveDriver(ctx, principal, userID)
	if err != nil {
		return nil, err
	}

	var start time.Time
	if weekStart == "" {
		start = mondayOfWeek(time.Now().In(s.loc))
	} else {
		start, err = shift.ParseDate(weekStart, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid week start", ErrInvalidInput)
		}
	}

	vehicles, err := s.vehicleRepo.ListByCompany(ctx, principal.CompanyID)
	if err != nil {
		return nil, err
	}

	// The night window of the last day runs into day 8, so fetch through
	// its end rather than plain weekStart+7d midnight.
	lastDay := start.AddDate(0, 0, 6)
	_, weekEnd := shift.Window(lastDay, shift.LabelNight)
	entries, err := s.scheduleRepo.ListOverlapping(ctx, start, weekEnd)
	if err != nil {
		return nil, err
	}

	return shift.ProjectWeek(driver.ID, start, vehicles, entries, s.loc), nil
}

type ShiftSelection struct {
	Date      string `json:"date"`
	ShiftType string `json:"shiftType"`
}

type WeekSignupInput struct {
	Assignments []ShiftSelection `json:"assignments"`
}

type CreatedAssignment struct {
	Date       string    `json:"date"`
	ShiftType  string    `json:"shiftType"`
	ScheduleID uuid.UUID `json:"scheduleId"`
	VehicleID  uuid.UUID `json:"vehicleId"`
}

type FailedAssignment struct {
	Date      string `json:"date"`
	ShiftType string `json:"shiftType"`
	Reason    string `json:"reason"`
}

type WeekSignupResult struct {
	Created []CreatedAssignment `json:"created"`
	Failed  []FailedAssignment  `json:"failed"`
}

// WeekSignup processes each requested shift independently: one selection
// failing never rolls back another. Each selection runs in its own
// serializable transaction so the availability check and the insert see a
// consistent snapshot under concurrent signups.
func (s *DriverService) WeekSignup(ctx context.Context, principal model.Principal, userID string, input WeekSignupInput) (*WeekSignupResult, error) {
	driver, err := s.resolveDriver(ctx, principal, userID)
	if err != nil {
		return nil, err
	}
	if len(input.Assignments) == 0 {
		return nil, fmt.Errorf("%w: no assignments provided", ErrInvalidInput)
	}

	result := &WeekSignupResult{
		Created: []CreatedAssignment{},
		Failed:  []FailedAssignment{},
	}

	for _, sel := range input.Assignments {
		label, ok := shift.ParseLabel(sel.ShiftType)
		if !ok {
			result.Failed = append(result.Failed, FailedAssignment{Date: sel.Date, ShiftType: sel.ShiftType, Reason: "invalid data"})
			continue
		}
		day, err := shift.ParseDate(sel.Date, s.loc)
		if err != nil {
			result.Failed = append(result.Failed, FailedAssignment{Date: sel.Date, ShiftType: sel.ShiftType, Reason: "invalid data"})
			continue
		}
		start, end := shift.Window(day, label)

		var created *model.Schedule
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			scheduleRepo := s.scheduleRepo.WithTx(tx)
			vehicleRepo := s.vehicleRepo.WithTx(tx)

			overlapping, err := scheduleRepo.ListOverlapping(ctx, start, end)
			if err != nil {
				return err
			}
			vehicles, err := vehicleRepo.ListByCompany(ctx, principal.CompanyID)
			if err != nil {
				return err
			}

			vehicleID, err := shift.PickVehicle(driver.ID, start, end, vehicles, overlapping, s.intn)
			if err != nil {
				return err
			}

			entry := &model.Schedule{
				UserID:    driver.ID,
				VehicleID: vehicleID,
				StartTime: start,
				EndTime:   end,
			}
			if err := scheduleRepo.Create(ctx, entry); err != nil {
				return err
			}
			created = entry
			return nil
		}, &sql.TxOptions{Isolation: sql.LevelSerializable})

		switch {
		case err == nil:
			result.Created = append(result.Created, CreatedAssignment{
				Date:       sel.Date,
				ShiftType:  sel.ShiftType,
				ScheduleID: created.ID,
				VehicleID:  created.VehicleID,
			})
		case errors.Is(err, shift.ErrDuplicateSignup),
			errors.Is(err, shift.ErrOverlappingShift),
			errors.Is(err, shift.ErrNoEligibleVehicles),
			errors.Is(err, shift.ErrShiftFull):
			result.Failed = append(result.Failed, FailedAssignment{Date: sel.Date, ShiftType: sel.ShiftType, Reason: err.Error()})
		default:
			s.log.Error().Err(err).
				Str("driver_id", driver.ID.String()).
				Str("date", sel.Date).
				Str("shift_type", sel.ShiftType).
				Msg("shift signup failed")
			result.Failed = append(result.Failed, FailedAssignment{Date: sel.Date, ShiftType: sel.ShiftType, Reason: "internal error"})
		}
	}

	return result, nil
}

type ShiftSummary struct {
	ID        uuid.UUID      `json:"id"`
	StartTime time.Time      `json:"startTime"`
	EndTime   time.Time      `json:"endTime"`
	Vehicle   *model.Vehicle `json:"vehicle,omitempty"`
}

type PickupSummary struct {
	Count                    int     `json:"count"`
	AvgMinutesBetweenPickups float64 `json:"avgMinutesBetweenPickups"`
}

type DriverDashboard struct {
	CurrentShift *ShiftSummary `json:"currentShift"`
	NextShift    *ShiftSummary `json:"nextShift"`
	Pickups      PickupSummary `json:"pickups"`
}

// Dashboard is the driver home screen: the running shift, the next upcoming
// one, and today's pickup activity.
func (s *DriverService) Dashboard(ctx context.Context, principal model.Principal, userID string) (*DriverDashboard, error) {
	driver, err := s.resolveDriver(ctx, principal, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(s.loc)
	dashboard := &DriverDashboard{}

	current, err := s.scheduleRepo.CurrentForUser(ctx, driver.ID, now)
	if err != nil {
		return nil, err
	}
	if current != nil {
		dashboard.CurrentShift = &ShiftSummary{ID: current.ID, StartTime: current.StartTime, EndTime: current.EndTime, Vehicle: current.Vehicle}
	}

	next, err := s.scheduleRepo.NextForUser(ctx, driver.ID, now)
	if err != nil {
		return nil, err
	}
	if next != nil {
		dashboard.NextShift = &ShiftSummary{ID: next.ID, StartTime: next.StartTime, EndTime: next.EndTime, Vehicle: next.Vehicle}
	}

	// On shift the pickup summary covers the shift window, otherwise the
	// local calendar day.
	from := startOfDay(now)
	to := from.AddDate(0, 0, 1)
	if current != nil {
		from, to = current.StartTime, current.EndTime
	}
	pickups, err := s.pickupRepo.ListForUserBetween(ctx, driver.ID, from, to)
	if err != nil {
		return nil, err
	}
	dashboard.Pickups = summarizePickups(pickups)

	return dashboard, nil
}

// summarizePickups assumes pickups ordered by timestamp, the repository's
// natural order.
func summarizePickups(pickups []model.PickupLocation) PickupSummary {
	summary := PickupSummary{Count: len(pickups)}
	if len(pickups) < 2 {
		return summary
	}
	span := pickups[len(pickups)-1].PickupTimestamp.Sub(pickups[0].PickupTimestamp)
	summary.AvgMinutesBetweenPickups = span.Minutes() / float64(len(pickups)-1)
	return summary
}

type WeeklyPickups struct {
	WeekStart string `json:"weekStart"`
	WeekEnd   string `json:"weekEnd"`
	Total     int    `json:"total"`
	Daily     [7]int `json:"daily"`
}

// WeeklyPickups counts last week's pickups per day, Monday first.
func (s *DriverService) WeeklyPickups(ctx context.Context, principal model.Principal, userID string) (*WeeklyPickups, error) {
	driver, err := s.resolveDriver(ctx, principal, userID)
	if err != nil {
		return nil, err
	}

	from, to := previousWeekRange(time.Now().In(s.loc))
	pickups, err := s.pickupRepo.ListForUserBetween(ctx, driver.ID, from, to)
	if err != nil {
		return nil, err
	}

	stats := &WeeklyPickups{
		WeekStart: from.Format(shift.DateLayout),
		WeekEnd:   to.Format(shift.DateLayout),
		Total:     len(pickups),
	}
	for _, p := range pickups {
		stats.Daily[weekdayIndex(p.PickupTimestamp.In(s.loc))]++
	}
	return stats, nil
}
