package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PickupLocation struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Latitude        float64   `gorm:"not null" json:"latitude"`
	Longitude       float64   `gorm:"not null" json:"longitude"`
	PickupTimestamp time.Time `gorm:"not null;index" json:"pickup_timestamp"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PickupLocation) TableName() string {
	return "pickup_locations"
}

func (p *PickupLocation) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PickupTimestamp.IsZero() {
		p.PickupTimestamp = time.Now()
	}
	return nil
}
