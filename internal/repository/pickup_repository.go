package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/M0steK/taxifleet-manager/internal/model"
)

type PickupRepository struct {
	db *gorm.DB
}

func NewPickupRepository(db *gorm.DB) *PickupRepository {
	return &PickupRepository{db: db}
}

func (r *PickupRepository) Create(ctx context.Context, pickup *model.PickupLocation) error {
	return r.db.WithContext(ctx).Create(pickup).Error
}

func (r *PickupRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.PickupLocation, error) {
	var pickups []model.PickupLocation
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = pickup_locations.user_id").
		Where("users.company_id = ?", companyID).
		Order("pickup_locations.pickup_timestamp DESC").
		Find(&pickups).Error
	return pickups, err
}

// ListForUserBetween returns a driver's pickups within [from, to], oldest
// first.
func (r *PickupRepository) ListForUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]model.PickupLocation, error) {
	var pickups []model.PickupLocation
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND pickup_timestamp >= ? AND pickup_timestamp <= ?", userID, from, to).
		Order("pickup_timestamp ASC").
		Find(&pickups).Error
	return pickups, err
}

// ListForCompanyBetween returns company pickups within [from, to] with the
// driver preloaded, for the admin reports.
func (r *PickupRepository) ListForCompanyBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]model.PickupLocation, error) {
	var pickups []model.PickupLocation
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = pickup_locations.user_id").
		Where("users.company_id = ?", companyID).
		Where("pickup_locations.pickup_timestamp >= ? AND pickup_locations.pickup_timestamp <= ?", from, to).
		Find(&pickups).Error
	return pickups, err
}

// DeleteOlderThan purges pickups recorded before the cutoff and reports how
// many rows went away.
func (r *PickupRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("pickup_timestamp < ?", cutoff).
		Delete(&model.PickupLocation{})
	return res.RowsAffected, res.Error
}
