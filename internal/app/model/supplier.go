package model

import (
	"time"

	"gorm.io/gorm"
)

type Supplier struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	SupplierNumber string         `gorm:"uniqueIndex;type:varchar(20)" json:"supplier_number"` // SUP-000001
	Name           string         `gorm:"not null" json:"name"`
	ContactPerson  string         `json:"contact_person,omitempty"`
	Email          string         `json:"email,omitempty"`
	Phone          string         `json:"phone,omitempty"`
	Address        string         `json:"address,omitempty"`
	City           string         `json:"city,omitempty"`
	TaxNumber      string         `json:"tax_number,omitempty"`
	PaymentTerms   string         `json:"payment_terms,omitempty"` // e.g. net 30
	LeadTimeDays   int            `gorm:"default:0" json:"lead_time_days"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	Notes          string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Parts []Part `gorm:"foreignKey:SupplierID" json:"parts,omitempty"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
