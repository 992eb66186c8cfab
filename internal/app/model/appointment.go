package model

import (
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

// Appointment lifecycle states. Any value may be written over any other;
// there is no transition graph.
const (
	AppointmentScheduled   AppointmentStatus = "scheduled"
	AppointmentConfirmed   AppointmentStatus = "confirmed"
	AppointmentCheckedIn   AppointmentStatus = "checked_in"
	AppointmentInProgress  AppointmentStatus = "in_progress"
	AppointmentCompleted   AppointmentStatus = "completed"
	AppointmentNoShow      AppointmentStatus = "no_show"
	AppointmentCancelled   AppointmentStatus = "cancelled"
	AppointmentRescheduled AppointmentStatus = "rescheduled"
)

// AppointmentStatuses lists every accepted value, used for request validation.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentScheduled,
	AppointmentConfirmed,
	AppointmentCheckedIn,
	AppointmentInProgress,
	AppointmentCompleted,
	AppointmentNoShow,
	AppointmentCancelled,
	AppointmentRescheduled,
}

type Appointment struct {
	ID                   uint              `gorm:"primarykey" json:"id"`
	AppointmentNumber    string            `gorm:"uniqueIndex;type:varchar(20)" json:"appointment_number"` // APT-000001
	CustomerID           uint              `gorm:"not null;index" json:"customer_id"`
	VehicleID            uint              `gorm:"not null;index" json:"vehicle_id"`
	AppointmentDate      time.Time         `gorm:"not null;index" json:"appointment_date"`
	EstimatedDuration    int               `gorm:"not null" json:"estimated_duration"` // minutes
	Status               AppointmentStatus `gorm:"type:varchar(20);default:'scheduled'" json:"status"`
	BayID                *uint             `gorm:"index" json:"bay_id,omitempty"`
	TechnicianID         *uint             `gorm:"index" json:"technician_id,omitempty"`
	ServiceTypeRequested string            `json:"service_type_requested,omitempty"`
	CustomerNotes        string            `gorm:"type:text" json:"customer_notes,omitempty"`
	InternalNotes        string            `gorm:"type:text" json:"internal_notes,omitempty"`
	ReminderSent         bool              `gorm:"default:false" json:"reminder_sent"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
	DeletedAt            gorm.DeletedAt    `gorm:"index" json:"-"`

	Customer   Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Vehicle    Vehicle  `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Bay        *Bay     `gorm:"foreignKey:BayID" json:"bay,omitempty"`
	Technician *User    `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
