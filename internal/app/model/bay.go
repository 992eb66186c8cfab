package model

import (
	"time"

	"gorm.io/gorm"
)

type BayStatus string

const (
	BayAvailable   BayStatus = "available"
	BayOccupied    BayStatus = "occupied"
	BayMaintenance BayStatus = "maintenance"
)

var BayStatuses = []BayStatus{
	BayAvailable,
	BayOccupied,
	BayMaintenance,
}

// Bay is a physical work area in the shop floor.
type Bay struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	BayNumber   string         `gorm:"uniqueIndex;type:varchar(10);not null" json:"bay_number"`
	Name        string         `json:"name,omitempty"`
	BayType     string         `gorm:"type:varchar(30)" json:"bay_type,omitempty"` // general, lift, alignment, diagnostic
	Status      BayStatus      `gorm:"type:varchar(20);default:'available'" json:"status"`
	HasLift     bool           `gorm:"default:false" json:"has_lift"`
	Notes       string         `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Bay) TableName() string {
	return "bays"
}
