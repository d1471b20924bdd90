package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleStatus string

const (
	VehicleStatusActive    VehicleStatus = "active"
	VehicleStatusInactive  VehicleStatus = "inactive"
	VehicleStatusInService VehicleStatus = "in_service"
)

type Vehicle struct {
	ID                 uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CompanyID          uuid.UUID     `gorm:"type:uuid;not null;index" json:"company_id"`
	Brand              string        `gorm:"type:varchar(64);not null" json:"brand"`
	Model              string        `gorm:"type:varchar(64);not null" json:"model"`
	ProductionYear     int           `gorm:"not null" json:"production_year"`
	LicensePlate       string        `gorm:"type:varchar(32);uniqueIndex;not null" json:"license_plate"`
	Vin                string        `gorm:"column:vin;type:varchar(32);uniqueIndex;not null" json:"vin"`
	Status             VehicleStatus `gorm:"type:vehicle_status;not null;default:active" json:"status"`
	Mileage            int           `gorm:"not null" json:"mileage"`
	InsuranceExpiry    time.Time     `gorm:"not null" json:"insurance_expiry"`
	NextInspectionDate time.Time     `gorm:"not null" json:"next_inspection_date"`
	CreatedAt          time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
