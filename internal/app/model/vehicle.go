package model

import (
	"time"

	"gorm.io/gorm"
)

type EngineType string

const (
	EnginePetrol   EngineType = "petrol"
	EngineDiesel   EngineType = "diesel"
	EngineHybrid   EngineType = "hybrid"
	EngineElectric EngineType = "electric"
)

type Vehicle struct {
	ID                    uint           `gorm:"primarykey" json:"id"`
	CustomerID            uint           `gorm:"not null;index" json:"customer_id"`
	RegistrationNumber    string         `gorm:"uniqueIndex;type:varchar(20);not null" json:"registration_number"`
	VIN                   string         `gorm:"type:varchar(30)" json:"vin,omitempty"`
	Make                  string         `gorm:"not null" json:"make"`
	Model                 string         `gorm:"not null" json:"model"`
	Year                  int            `gorm:"not null" json:"year"`
	EngineType            EngineType     `gorm:"type:varchar(20);default:'petrol'" json:"engine_type"`
	EngineSize            string         `json:"engine_size,omitempty"`
	Transmission          string         `json:"transmission,omitempty"`
	Color                 string         `json:"color,omitempty"`
	CurrentMileage        int            `json:"current_mileage"`
	FuelType              string         `json:"fuel_type,omitempty"`
	BodyType              string         `json:"body_type,omitempty"`
	InsuranceDetails      string         `json:"insurance_details,omitempty"`
	NextServiceDueDate    *time.Time     `json:"next_service_due_date,omitempty"`
	NextServiceDueMileage *int           `json:"next_service_due_mileage,omitempty"`
	Notes                 string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}
