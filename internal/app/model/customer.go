package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "individual"
	CustomerTypeBusiness   CustomerType = "business"
)

type Customer struct {
	ID                     uint            `gorm:"primarykey" json:"id"`
	CustomerNumber         string          `gorm:"uniqueIndex;type:varchar(20)" json:"customer_number"` // CUST-000001, assigned on create
	CustomerType           CustomerType    `gorm:"type:varchar(20);default:'individual'" json:"customer_type"`
	Name                   string          `gorm:"not null" json:"name"`
	CompanyName            string          `json:"company_name,omitempty"`
	Email                  string          `gorm:"not null" json:"email"`
	Phone                  string          `gorm:"not null" json:"phone"`
	SecondaryPhone         string          `json:"secondary_phone,omitempty"`
	Address                string          `json:"address,omitempty"`
	City                   string          `json:"city,omitempty"`
	State                  string          `json:"state,omitempty"`
	ZipCode                string          `json:"zip_code,omitempty"`
	TaxNumber              string          `json:"tax_number,omitempty"`
	PreferredContactMethod string          `json:"preferred_contact_method,omitempty"`
	ReferralSource         string          `json:"referral_source,omitempty"`
	CreditLimit            decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"credit_limit"`
	IsActive               bool            `gorm:"default:true" json:"is_active"`
	Notes                  string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
	DeletedAt              gorm.DeletedAt  `gorm:"index" json:"-"`

	Vehicles []Vehicle `gorm:"foreignKey:CustomerID" json:"vehicles,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}
