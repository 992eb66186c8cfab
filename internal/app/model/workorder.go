package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type WorkOrderStatus string
type Priority string

const (
	WorkOrderOpen               WorkOrderStatus = "open"
	WorkOrderAssigned           WorkOrderStatus = "assigned"
	WorkOrderInProgress         WorkOrderStatus = "in_progress"
	WorkOrderWaitingForParts    WorkOrderStatus = "waiting_for_parts"
	WorkOrderWaitingForApproval WorkOrderStatus = "waiting_for_approval"
	WorkOrderQualityCheck       WorkOrderStatus = "quality_check"
	WorkOrderReadyForPickup     WorkOrderStatus = "ready_for_pickup"
	WorkOrderCompleted          WorkOrderStatus = "completed"
	WorkOrderOnHold             WorkOrderStatus = "on_hold"
	WorkOrderCancelled          WorkOrderStatus = "cancelled"

	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var WorkOrderStatuses = []WorkOrderStatus{
	WorkOrderOpen,
	WorkOrderAssigned,
	WorkOrderInProgress,
	WorkOrderWaitingForParts,
	WorkOrderWaitingForApproval,
	WorkOrderQualityCheck,
	WorkOrderReadyForPickup,
	WorkOrderCompleted,
	WorkOrderOnHold,
	WorkOrderCancelled,
}

type WorkOrder struct {
	ID                 uint            `gorm:"primarykey" json:"id"`
	WorkOrderNumber    string          `gorm:"uniqueIndex;type:varchar(20)" json:"work_order_number"` // WO-000001
	EstimateID         *uint           `gorm:"index" json:"estimate_id,omitempty"`                    // originating estimate, if converted
	CustomerID         uint            `gorm:"not null;index" json:"customer_id"`
	VehicleID          uint            `gorm:"not null;index" json:"vehicle_id"`
	MileageIn          int             `json:"mileage_in"`
	MileageOut         *int            `json:"mileage_out,omitempty"`
	DateOpened         time.Time       `gorm:"not null" json:"date_opened"`
	DateDue            *time.Time      `json:"date_due,omitempty"`
	DateCompleted      *time.Time      `json:"date_completed,omitempty"`
	Priority           Priority        `gorm:"type:varchar(10);default:'normal'" json:"priority"`
	Status             WorkOrderStatus `gorm:"type:varchar(30);default:'open'" json:"status"`
	BayID              *uint           `gorm:"index" json:"bay_id,omitempty"`
	TechnicianID       *uint           `gorm:"index" json:"technician_id,omitempty"`
	CustomerComplaint  string          `gorm:"type:text" json:"customer_complaint,omitempty"`
	DiagnosisNotes     string          `gorm:"type:text" json:"diagnosis_notes,omitempty"`
	WorkPerformed      string          `gorm:"type:text" json:"work_performed,omitempty"`
	Recommendations    string          `gorm:"type:text" json:"recommendations,omitempty"`
	TechnicianSignOff  string          `json:"technician_sign_off,omitempty"`
	QualityCheckSignOff string         `json:"quality_check_sign_off,omitempty"`
	CustomerSignOff    string          `json:"customer_sign_off,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`

	Estimate   *Estimate       `gorm:"foreignKey:EstimateID" json:"estimate,omitempty"`
	Customer   Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Vehicle    Vehicle         `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Bay        *Bay            `gorm:"foreignKey:BayID" json:"bay,omitempty"`
	Technician *User           `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
	Items      []WorkOrderItem `gorm:"foreignKey:WorkOrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (WorkOrder) TableName() string {
	return "work_orders"
}

type WorkOrderItem struct {
	ID             uint             `gorm:"primarykey" json:"id"`
	WorkOrderID    uint             `gorm:"not null;index" json:"work_order_id"`
	ItemType       string           `gorm:"type:varchar(20);not null" json:"item_type"` // labor, part
	ServiceID      *uint            `gorm:"index" json:"service_id,omitempty"`
	PartID         *uint            `gorm:"index" json:"part_id,omitempty"`
	Description    string           `gorm:"not null" json:"description"`
	Quantity       decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"quantity"`
	UnitPrice      decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Total          decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"total"` // quantity × unit_price
	TechnicianID   *uint            `gorm:"index" json:"technician_id,omitempty"`
	EstimatedHours *decimal.Decimal `gorm:"type:decimal(6,2)" json:"estimated_hours,omitempty"`
	ActualHours    *decimal.Decimal `gorm:"type:decimal(6,2)" json:"actual_hours,omitempty"`
	Status         string           `gorm:"type:varchar(20)" json:"status,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`

	WorkOrder  WorkOrder `gorm:"foreignKey:WorkOrderID" json:"-"`
	Service    *Service  `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Part       *Part     `gorm:"foreignKey:PartID" json:"part,omitempty"`
	Technician *User     `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
}

func (WorkOrderItem) TableName() string {
	return "work_order_items"
}
