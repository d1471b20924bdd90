package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/M0steK/taxifleet-manager/internal/model"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// WithTx rebinds the repository to a transaction.
func (r *VehicleRepository) WithTx(tx *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: tx}
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *VehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vehicle).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) GetInCompany(ctx context.Context, id, companyID uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&vehicle).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&vehicles).Error
	return vehicles, err
}

func (r *VehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

func (r *VehicleRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Vehicle{})
	return res.RowsAffected, res.Error
}

// ExpireOutdated flips vehicles to inactive when either document date has
// passed the cutoff. In-service and already-inactive vehicles are left alone.
// Returns the number of vehicles flipped.
func (r *VehicleRepository) ExpireOutdated(ctx context.Context, companyID uuid.UUID, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Vehicle{}).
		Where("company_id = ?", companyID).
		Where("status NOT IN ?", []model.VehicleStatus{model.VehicleStatusInactive, model.VehicleStatusInService}).
		Where("insurance_expiry < ? OR next_inspection_date < ?", cutoff, cutoff).
		Update("status", model.VehicleStatusInactive)
	return res.RowsAffected, res.Error
}

// ListExpiringBy returns vehicles whose insurance or inspection lapses on or
// before the deadline, soonest inspection first.
func (r *VehicleRepository) ListExpiringBy(ctx context.Context, companyID uuid.UUID, deadline time.Time) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("insurance_expiry <= ? OR next_inspection_date <= ?", deadline, deadline).
		Order("next_inspection_date ASC").
		Find(&vehicles).Error
	return vehicles, err
}

func (r *VehicleRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Vehicle{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}
