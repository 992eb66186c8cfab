package model

import (
	"time"

	"gorm.io/gorm"
)

type CategoryType string

const (
	CategoryService CategoryType = "service"
	CategoryPart    CategoryType = "part"
)

type Category struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Name             string         `gorm:"not null" json:"name"`
	CategoryType     CategoryType   `gorm:"type:varchar(20);not null;index" json:"category_type"`
	Description      string         `json:"description,omitempty"`
	ParentCategoryID *uint          `gorm:"index" json:"parent_category_id,omitempty"`
	DisplayOrder     int            `gorm:"default:0" json:"display_order"`
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	ParentCategory *Category  `gorm:"foreignKey:ParentCategoryID" json:"parent_category,omitempty"`
	SubCategories  []Category `gorm:"foreignKey:ParentCategoryID" json:"sub_categories,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}
