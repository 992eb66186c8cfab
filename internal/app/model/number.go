package model

import "fmt"

// Prefixes for the human-readable sequential document numbers.
const (
	CustomerNumberPrefix    = "CUST"
	AppointmentNumberPrefix = "APT"
	EstimateNumberPrefix    = "EST"
	WorkOrderNumberPrefix   = "WO"
	InvoiceNumberPrefix     = "INV"
	SupplierNumberPrefix    = "SUP"
)

// FormatEntityNumber derives the display number from the row's database
// identity, e.g. FormatEntityNumber(CustomerNumberPrefix, 42) == "CUST-000042".
// The identity must already be assigned: the number is written back after the
// insert, inside the same transaction, so concurrent creations can never
// collide on a label.
func FormatEntityNumber(prefix string, id uint) string {
	return fmt.Sprintf("%s-%06d", prefix, id)
}
