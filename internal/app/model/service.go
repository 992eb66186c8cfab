package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is a catalog entry for labor sold by the shop. Pricing is either
// hourly (standard_hours × labor_rate) or a flat rate when FlatRate is set.
type Service struct {
	ID            uint             `gorm:"primarykey" json:"id"`
	ServiceCode   string           `gorm:"uniqueIndex;type:varchar(30);not null" json:"service_code"`
	Name          string           `gorm:"not null" json:"name"`
	Description   string           `gorm:"type:text" json:"description,omitempty"`
	CategoryID    *uint            `gorm:"index" json:"category_id,omitempty"`
	StandardHours decimal.Decimal  `gorm:"type:decimal(6,2);default:0" json:"standard_hours"`
	LaborRate     decimal.Decimal  `gorm:"type:decimal(12,2);default:0" json:"labor_rate"`
	FlatRate      *decimal.Decimal `gorm:"type:decimal(12,2)" json:"flat_rate,omitempty"`
	IsActive      bool             `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Service) TableName() string {
	return "services"
}

// Price returns the flat rate when one is set, otherwise hours times rate.
func (s *Service) Price() decimal.Decimal {
	if s.FlatRate != nil {
		return s.FlatRate.Round(2)
	}
	return s.StandardHours.Mul(s.LaborRate).Round(2)
}
