package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Part struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	PartNumber      string          `gorm:"uniqueIndex;type:varchar(50);not null" json:"part_number"`
	Name            string          `gorm:"not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	CategoryID      *uint           `gorm:"index" json:"category_id,omitempty"`
	SupplierID      *uint           `gorm:"index" json:"supplier_id,omitempty"`
	Manufacturer    string          `json:"manufacturer,omitempty"`
	CostPrice       decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"cost_price"`
	RetailPrice     decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"retail_price"`
	WholesalePrice  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"wholesale_price"`
	QuantityOnHand  int             `gorm:"default:0" json:"quantity_on_hand"`
	MinimumStock    int             `gorm:"default:0" json:"minimum_stock"`
	ReorderQuantity int             `gorm:"default:0" json:"reorder_quantity"`
	Location        string          `json:"location,omitempty"` // shelf or bin code
	CompatibleMakes pq.StringArray  `gorm:"type:text[]" json:"compatible_makes,omitempty"`
	ImageURL        string          `json:"image_url,omitempty"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

func (Part) TableName() string {
	return "parts"
}

// IsLowStock reports whether on-hand quantity has fallen to the minimum.
func (p *Part) IsLowStock() bool {
	return p.QuantityOnHand <= p.MinimumStock
}
