package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EstimateStatus string

const (
	EstimateDraft     EstimateStatus = "draft"
	EstimateSent      EstimateStatus = "sent"
	EstimateApproved  EstimateStatus = "approved"
	EstimateRejected  EstimateStatus = "rejected"
	EstimateExpired   EstimateStatus = "expired"
	EstimateConverted EstimateStatus = "converted" // a work order was created from it
)

var EstimateStatuses = []EstimateStatus{
	EstimateDraft,
	EstimateSent,
	EstimateApproved,
	EstimateRejected,
	EstimateExpired,
	EstimateConverted,
}

// Line item kinds shared by estimates and work orders.
const (
	ItemTypeLabor  = "labor"
	ItemTypePart   = "part"
	ItemTypeSublet = "sublet"
)

type Estimate struct {
	ID                 uint            `gorm:"primarykey" json:"id"`
	EstimateNumber     string          `gorm:"uniqueIndex;type:varchar(20)" json:"estimate_number"` // EST-000001
	CustomerID         uint            `gorm:"not null;index" json:"customer_id"`
	VehicleID          uint            `gorm:"not null;index" json:"vehicle_id"`
	ValidUntil         time.Time       `gorm:"not null" json:"valid_until"`
	SubTotal           decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"sub_total"`
	Discount           decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"discount"`
	Tax                decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"tax"`
	Total              decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total"` // sub_total − discount + tax
	Status             EstimateStatus  `gorm:"type:varchar(20);default:'draft'" json:"status"`
	TermsAndConditions string          `gorm:"type:text" json:"terms_and_conditions,omitempty"`
	CustomerSignature  string          `json:"customer_signature,omitempty"`
	Notes              string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`

	Customer Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Vehicle  Vehicle        `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Items    []EstimateItem `gorm:"foreignKey:EstimateID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Estimate) TableName() string {
	return "estimates"
}

type EstimateItem struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	EstimateID  uint            `gorm:"not null;index" json:"estimate_id"`
	ItemType    string          `gorm:"type:varchar(20);not null" json:"item_type"` // labor, part, sublet
	Description string          `gorm:"not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"` // quantity × unit_price
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	Estimate Estimate `gorm:"foreignKey:EstimateID" json:"-"`
}

func (EstimateItem) TableName() string {
	return "estimate_items"
}
