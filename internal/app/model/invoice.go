package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentStatus string
type PaymentMethod string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentOverdue  PaymentStatus = "overdue"
	PaymentRefunded PaymentStatus = "refunded"

	MethodCash         PaymentMethod = "cash"
	MethodCard         PaymentMethod = "card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheque       PaymentMethod = "cheque"
	MethodMobileMoney  PaymentMethod = "mobile_money"
)

var PaymentStatuses = []PaymentStatus{
	PaymentUnpaid,
	PaymentPartial,
	PaymentPaid,
	PaymentOverdue,
	PaymentRefunded,
}

var PaymentMethods = []PaymentMethod{
	MethodCash,
	MethodCard,
	MethodBankTransfer,
	MethodCheque,
	MethodMobileMoney,
}

// Invoice is a one-to-one billing record for a completed work order.
// AmountPaid and Balance are recomputed on every recorded payment.
type Invoice struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	InvoiceNumber string          `gorm:"uniqueIndex;type:varchar(20)" json:"invoice_number"` // INV-000001
	WorkOrderID   uint            `gorm:"uniqueIndex;not null" json:"work_order_id"`
	CustomerID    uint            `gorm:"not null;index" json:"customer_id"`
	InvoiceDate   time.Time       `gorm:"not null" json:"invoice_date"`
	DueDate       time.Time       `gorm:"not null" json:"due_date"`
	SubTotal      decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"sub_total"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"discount"`
	Tax           decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"tax"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"amount_paid"`
	Balance       decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"balance"` // total − amount_paid
	Status        PaymentStatus   `gorm:"type:varchar(20);default:'unpaid'" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	WorkOrder WorkOrder `gorm:"foreignKey:WorkOrderID" json:"work_order,omitempty"`
	Customer  Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Payments  []Payment `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

type Payment struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	InvoiceID   uint            `gorm:"not null;index" json:"invoice_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method      PaymentMethod   `gorm:"type:varchar(20);not null" json:"method"`
	Reference   string          `gorm:"type:varchar(64)" json:"reference,omitempty"`
	PaymentDate time.Time       `gorm:"not null" json:"payment_date"`
	ReceivedBy  *uint           `json:"received_by,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
