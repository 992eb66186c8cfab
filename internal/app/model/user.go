package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string // staff role used for route authorization

const (
	RoleSuperAdmin     UserRole = "super_admin"
	RoleShopManager    UserRole = "shop_manager"
	RoleServiceAdvisor UserRole = "service_advisor"
	RoleTechnician     UserRole = "technician"
	RolePartsManager   UserRole = "parts_manager"
	RoleCashier        UserRole = "cashier"
	RoleCustomer       UserRole = "customer"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	FirstName    string         `gorm:"not null" json:"first_name"`
	LastName     string         `gorm:"not null" json:"last_name"`
	Role         UserRole       `gorm:"type:varchar(20);default:'customer'" json:"role"`
	EmployeeID   string         `gorm:"type:varchar(50)" json:"employee_id,omitempty"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	LastLogin    *time.Time     `json:"last_login,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name for display fields on DTOs
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
