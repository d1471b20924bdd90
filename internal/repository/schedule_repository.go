package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/M0steK/taxifleet-manager/internal/model"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// WithTx rebinds the repository to a transaction.
func (r *ScheduleRepository) WithTx(tx *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: tx}
}

func (r *ScheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&schedule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

// GetDetailed loads the entry together with its driver and vehicle for
// display.
func (r *ScheduleRepository) GetDetailed(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Vehicle").
		Where("id = ?", id).
		First(&schedule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

// ListByCompany returns every entry whose driver belongs to the company,
// newest first, with driver and vehicle preloaded.
func (r *ScheduleRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Vehicle").
		Joins("JOIN users ON users.id = schedules.user_id").
		Where("users.company_id = ?", companyID).
		Order("schedules.start_time DESC").
		Find(&schedules).Error
	return schedules, err
}

// ListOverlapping returns every entry intersecting the half-open
// [start, end) window, any driver, any vehicle.
func (r *ScheduleRepository) ListOverlapping(ctx context.Context, start, end time.Time) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Where("start_time < ? AND end_time > ?", end, start).
		Find(&schedules).Error
	return schedules, err
}

// ListStartingBetween returns a company's entries with start_time in
// [from, to), earliest first, with driver and vehicle preloaded.
func (r *ScheduleRepository) ListStartingBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Vehicle").
		Joins("JOIN users ON users.id = schedules.user_id").
		Where("users.company_id = ?", companyID).
		Where("schedules.start_time >= ? AND schedules.start_time < ?", from, to).
		Order("schedules.start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

// CurrentForUser returns the entry covering now, if any.
func (r *ScheduleRepository) CurrentForUser(ctx context.Context, userID uuid.UUID, now time.Time) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("user_id = ? AND start_time <= ? AND end_time >= ?", userID, now, now).
		Order("start_time ASC").
		First(&schedule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

// NextForUser returns the soonest entry starting after now, if any.
func (r *ScheduleRepository) NextForUser(ctx context.Context, userID uuid.UUID, now time.Time) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("user_id = ? AND start_time > ?", userID, now).
		Order("start_time ASC").
		First(&schedule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *ScheduleRepository) Update(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Schedule{})
	return res.RowsAffected, res.Error
}

// ListActiveAt returns entries in progress at the given instant.
func (r *ScheduleRepository) ListActiveAt(ctx context.Context, companyID uuid.UUID, at time.Time) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = schedules.user_id").
		Where("users.company_id = ?", companyID).
		Where("schedules.start_time <= ? AND schedules.end_time >= ?", at, at).
		Find(&schedules).Error
	return schedules, err
}
