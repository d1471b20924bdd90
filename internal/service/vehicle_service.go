package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/M0steK/taxifleet-manager/internal/model"
	"github.com/M0steK/taxifleet-manager/internal/repository"
	"github.com/M0steK/taxifleet-manager/internal/utils"
)

type VehicleService struct {
	vehicleRepo *repository.VehicleRepository
	loc         *time.Location
}

func NewVehicleService(vehicleRepo *repository.VehicleRepository, loc *time.Location) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		loc:         loc,
	}
}

type CreateVehicleInput struct {
	Brand              string
	Model              string
	ProductionYear     int
	LicensePlate       string
	Vin                string
	Status             string
	Mileage            int
	InsuranceExpiry    string
	NextInspectionDate string
}

func (s *VehicleService) Create(ctx context.Context, principal model.Principal, input CreateVehicleInput) (*model.Vehicle, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	if input.Brand == "" || input.Model == "" || input.LicensePlate == "" || input.Vin == "" ||
		input.ProductionYear == 0 || input.InsuranceExpiry == "" || input.NextInspectionDate == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidInput)
	}

	status, ok := parseVehicleStatus(input.Status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown vehicle status", ErrInvalidInput)
	}

	insurance, err := parseTimeInput(input.InsuranceExpiry, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid insurance expiry date", ErrInvalidInput)
	}
	inspection, err := parseTimeInput(input.NextInspectionDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid inspection date", ErrInvalidInput)
	}

	// Valid documents force the vehicle active regardless of the requested
	// status; the caller cannot register a document-valid vehicle as expired.
	now := time.Now().In(s.loc)
	if !insurance.Before(now) && !inspection.Before(now) {
		status = model.VehicleStatusActive
	}

	vehicle := &model.Vehicle{
		CompanyID:          principal.CompanyID,
		Brand:              input.Brand,
		Model:              input.Model,
		ProductionYear:     input.ProductionYear,
		LicensePlate:       utils.NormalizePlate(input.LicensePlate),
		Vin:                utils.NormalizeVin(input.Vin),
		Status:             status,
		Mileage:            input.Mileage,
		InsuranceExpiry:    insurance,
		NextInspectionDate: inspection,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: vehicle with this license plate or vin already exists", ErrConflict)
		}
		return nil, err
	}

	return vehicle, nil
}

// List returns the company's vehicles after the opportunistic expiry sweep:
// any non-inactive, non-in-service vehicle whose document dates have passed
// today is flipped to inactive first, so the listing never shows a stale
// active status. The sweep is best-effort with respect to concurrent edits.
func (s *VehicleService) List(ctx context.Context, principal model.Principal) ([]model.Vehicle, error) {
	today := startOfDay(time.Now().In(s.loc))
	if _, err := s.vehicleRepo.ExpireOutdated(ctx, principal.CompanyID, today); err != nil {
		return nil, err
	}
	return s.vehicleRepo.ListByCompany(ctx, principal.CompanyID)
}

func (s *VehicleService) Get(ctx context.Context, principal model.Principal, id string) (*model.Vehicle, error) {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidInput
	}

	vehicle, err := s.vehicleRepo.GetInCompany(ctx, vehicleID, principal.CompanyID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, fmt.Errorf("%w: vehicle not found", ErrNotFound)
	}
	return vehicle, nil
}

type UpdateVehicleInput struct {
	Mileage            *int
	Status             *string
	InsuranceExpiry    *string
	NextInspectionDate *string
}

func (s *VehicleService) Update(ctx context.Context, principal model.Principal, id string, input UpdateVehicleInput) (*model.Vehicle, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	vehicle, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if input.Mileage != nil {
		vehicle.Mileage = *input.Mileage
	}
	if input.InsuranceExpiry != nil {
		insurance, err := parseTimeInput(*input.InsuranceExpiry, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid insurance expiry date", ErrInvalidInput)
		}
		vehicle.InsuranceExpiry = insurance
	}
	if input.NextInspectionDate != nil {
		inspection, err := parseTimeInput(*input.NextInspectionDate, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid inspection date", ErrInvalidInput)
		}
		vehicle.NextInspectionDate = inspection
	}

	// Same auto-status rule as on create, applied to the effective dates.
	now := time.Now().In(s.loc)
	if !vehicle.InsuranceExpiry.Before(now) && !vehicle.NextInspectionDate.Before(now) {
		vehicle.Status = model.VehicleStatusActive
	} else if input.Status != nil {
		status, ok := parseVehicleStatus(*input.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown vehicle status", ErrInvalidInput)
		}
		vehicle.Status = status
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: vehicle with this license plate or vin already exists", ErrConflict)
		}
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	vehicle, err := s.Get(ctx, principal, id)
	if err != nil {
		return err
	}

	affected, err := s.vehicleRepo.Delete(ctx, vehicle.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: vehicle not found", ErrNotFound)
	}
	return nil
}

func parseVehicleStatus(raw string) (model.VehicleStatus, bool) {
	switch model.VehicleStatus(raw) {
	case model.VehicleStatusActive, model.VehicleStatusInactive, model.VehicleStatusInService:
		return model.VehicleStatus(raw), true
	case "":
		return model.VehicleStatusActive, true
	default:
		return "", false
	}
}
