package errors

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is the parsed form of a persistence error
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a raw database error into a code/message pair that is
// safe to return to the client. The context string (e.g. "customer", "vehicle")
// picks the most specific message when the driver error is generic.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// Postgres unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") ||
		strings.Contains(errStrLower, "unique failed") {
		return parseDuplicateKeyError(errStrLower)
	}

	// Postgres foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStrLower)
	}

	// Postgres not-null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The database is unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "An internal error occurred. Please try again later",
	}
}

// HTTPStatus maps the parsed code to the response status it implies.
func (e ErrorInfo) HTTPStatus() int {
	switch e.Code {
	case CustomerNumberExists, VehicleRegistrationDup, PartNumberExists,
		ServiceCodeExists, BayNumberExists, InvoiceAlreadyExists,
		AuthEmailAlreadyExists, ResourceAlreadyExists, ResourceConflict:
		return http.StatusConflict
	case ValidationRequired, ValidationInvalidInput, ValidationInvalidID:
		return http.StatusBadRequest
	case ResourceNotFound, CustomerNotFound, VehicleNotFound, AppointmentNotFound,
		EstimateNotFound, WorkOrderNotFound, InvoiceNotFound, PartNotFound,
		ServiceNotFound, CategoryNotFound, SupplierNotFound, BayNotFound,
		TechnicianNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "customer_number"):
		return ErrorInfo{Code: CustomerNumberExists, Message: "Customer number is already in use"}
	case strings.Contains(errLower, "registration_number"):
		return ErrorInfo{Code: VehicleRegistrationDup, Message: "A vehicle with this registration number already exists"}
	case strings.Contains(errLower, "part_number"):
		return ErrorInfo{Code: PartNumberExists, Message: "A part with this part number already exists"}
	case strings.Contains(errLower, "service_code"):
		return ErrorInfo{Code: ServiceCodeExists, Message: "A service with this code already exists"}
	case strings.Contains(errLower, "bay_number"):
		return ErrorInfo{Code: BayNumberExists, Message: "A bay with this number already exists"}
	case strings.Contains(errLower, "work_order_id") && strings.Contains(errLower, "invoices"):
		return ErrorInfo{Code: InvoiceAlreadyExists, Message: "An invoice already exists for this work order"}
	case strings.Contains(errLower, "email"):
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "Email address is already in use"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "A record with these details already exists"}
}

func parseForeignKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "still referenced") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "The record cannot be deleted because other records reference it",
		}
	}

	switch {
	case strings.Contains(errLower, "customer_id"):
		return ErrorInfo{Code: CustomerNotFound, Message: "Referenced customer does not exist"}
	case strings.Contains(errLower, "vehicle_id"):
		return ErrorInfo{Code: VehicleNotFound, Message: "Referenced vehicle does not exist"}
	case strings.Contains(errLower, "work_order_id"):
		return ErrorInfo{Code: WorkOrderNotFound, Message: "Referenced work order does not exist"}
	case strings.Contains(errLower, "bay_id"):
		return ErrorInfo{Code: BayNotFound, Message: "Referenced bay does not exist"}
	case strings.Contains(errLower, "supplier_id"):
		return ErrorInfo{Code: SupplierNotFound, Message: "Referenced supplier does not exist"}
	case strings.Contains(errLower, "category_id"):
		return ErrorInfo{Code: CategoryNotFound, Message: "Referenced category does not exist"}
	}
	return ErrorInfo{Code: ResourceNotFound, Message: "A referenced record does not exist"}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "customer"):
		return "Customer not found"
	case strings.Contains(contextLower, "vehicle"):
		return "Vehicle not found"
	case strings.Contains(contextLower, "appointment"):
		return "Appointment not found"
	case strings.Contains(contextLower, "estimate"):
		return "Estimate not found"
	case strings.Contains(contextLower, "work order"), strings.Contains(contextLower, "workorder"):
		return "Work order not found"
	case strings.Contains(contextLower, "invoice"):
		return "Invoice not found"
	case strings.Contains(contextLower, "part"):
		return "Part not found"
	case strings.Contains(contextLower, "service"):
		return "Service not found"
	case strings.Contains(contextLower, "supplier"):
		return "Supplier not found"
	case strings.Contains(contextLower, "bay"):
		return "Bay not found"
	}
	return "The requested record was not found"
}
