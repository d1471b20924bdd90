package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/M0steK/taxifleet-manager/internal/model"
	"github.com/M0steK/taxifleet-manager/internal/repository"
	"github.com/M0steK/taxifleet-manager/internal/shift"
)

type DashboardService struct {
	userRepo     *repository.UserRepository
	vehicleRepo  *repository.VehicleRepository
	scheduleRepo *repository.ScheduleRepository
	pickupRepo   *repository.PickupRepository
	loc          *time.Location
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	vehicleRepo *repository.VehicleRepository,
	scheduleRepo *repository.ScheduleRepository,
	pickupRepo *repository.PickupRepository,
	loc *time.Location,
) *DashboardService {
	return &DashboardService{
		userRepo:     userRepo,
		vehicleRepo:  vehicleRepo,
		scheduleRepo: scheduleRepo,
		pickupRepo:   pickupRepo,
		loc:          loc,
	}
}

type CompanyStats struct {
	TotalVehicles       int64           `json:"totalVehicles"`
	VehiclesInUse       int             `json:"vehiclesInUse"`
	VehiclesAvailable   int64           `json:"vehiclesAvailable"`
	TotalDrivers        int64           `json:"totalDrivers"`
	DriversOnShift      int             `json:"driversOnShift"`
	DriversAvailable    int64           `json:"driversAvailable"`
	UpcomingMaintenance []model.Vehicle `json:"upcomingMaintenance"`
}

// Stats is the admin overview: fleet size, what is on the road right now,
// and vehicles whose documents lapse within a week.
func (s *DashboardService) Stats(ctx context.Context, principal model.Principal) (*CompanyStats, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	now := time.Now().In(s.loc)

	totalVehicles, err := s.vehicleRepo.CountByCompany(ctx, principal.CompanyID)
	if err != nil {
		return nil, err
	}
	totalDrivers, err := s.userRepo.CountDriversByCompany(ctx, principal.CompanyID)
	if err != nil {
		return nil, err
	}

	active, err := s.scheduleRepo.ListActiveAt(ctx, principal.CompanyID, now)
	if err != nil {
		return nil, err
	}
	vehicles := make(map[uuid.UUID]struct{}, len(active))
	drivers := make(map[uuid.UUID]struct{}, len(active))
	for _, entry := range active {
		vehicles[entry.VehicleID] = struct{}{}
		drivers[entry.UserID] = struct{}{}
	}

	expiring, err := s.vehicleRepo.ListExpiringBy(ctx, principal.CompanyID, now.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}

	return &CompanyStats{
		TotalVehicles:       totalVehicles,
		VehiclesInUse:       len(vehicles),
		VehiclesAvailable:   totalVehicles - int64(len(vehicles)),
		TotalDrivers:        totalDrivers,
		DriversOnShift:      len(drivers),
		DriversAvailable:    totalDrivers - int64(len(drivers)),
		UpcomingMaintenance: expiring,
	}, nil
}

// WeeklyPickups aggregates last week's pickup counts per day across the
// whole company.
func (s *DashboardService) WeeklyPickups(ctx context.Context, principal model.Principal) (*WeeklyPickups, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	from, to := previousWeekRange(time.Now().In(s.loc))
	pickups, err := s.pickupRepo.ListForCompanyBetween(ctx, principal.CompanyID, from, to)
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

type TopDriver struct {
	UserID    uuid.UUID `json:"userId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Pickups   int       `json:"pickups"`
}

// TopDrivers ranks drivers by last week's pickup count, top five.
func (s *DashboardService) TopDrivers(ctx context.Context, principal model.Principal) ([]TopDriver, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	from, to := previousWeekRange(time.Now().In(s.loc))
	pickups, err := s.pickupRepo.ListForCompanyBetween(ctx, principal.CompanyID, from, to)
	if err != nil {
		return nil, err
	}

	byDriver := make(map[uuid.UUID]*TopDriver)
	for _, p := range pickups {
		entry, ok := byDriver[p.UserID]
		if !ok {
			entry = &TopDriver{UserID: p.UserID}
			if p.User != nil {
				entry.FirstName = p.User.FirstName
				entry.LastName = p.User.LastName
			}
			byDriver[p.UserID] = entry
		}
		entry.Pickups++
	}

	ranking := make([]TopDriver, 0, len(byDriver))
	for _, entry := range byDriver {
		ranking = append(ranking, *entry)
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Pickups != ranking[j].Pickups {
			return ranking[i].Pickups > ranking[j].Pickups
		}
		return ranking[i].UserID.String() < ranking[j].UserID.String()
	})
	if len(ranking) > 5 {
		ranking = ranking[:5]
	}
	return ranking, nil
}
