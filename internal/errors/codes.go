package errors

// Error code constants returned in the "error" field of failure responses.
// Format: CATEGORY_SPECIFIC_DETAIL. The web client maps these to messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthAccountInactive    = "AUTH_ACCOUNT_INACTIVE"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Shop entities ====================
	CustomerNotFound       = "CUSTOMER_NOT_FOUND"
	CustomerNumberExists   = "CUSTOMER_NUMBER_EXISTS"
	VehicleNotFound        = "VEHICLE_NOT_FOUND"
	VehicleRegistrationDup = "VEHICLE_REGISTRATION_EXISTS"
	AppointmentNotFound    = "APPOINTMENT_NOT_FOUND"
	EstimateNotFound       = "ESTIMATE_NOT_FOUND"
	EstimateNotConvertible = "ESTIMATE_NOT_CONVERTIBLE"
	WorkOrderNotFound      = "WORK_ORDER_NOT_FOUND"
	InvoiceNotFound        = "INVOICE_NOT_FOUND"
	InvoiceAlreadyExists   = "INVOICE_ALREADY_EXISTS"
	PartNotFound           = "PART_NOT_FOUND"
	PartNumberExists       = "PART_NUMBER_EXISTS"
	ServiceNotFound        = "SERVICE_NOT_FOUND"
	ServiceCodeExists      = "SERVICE_CODE_EXISTS"
	CategoryNotFound       = "CATEGORY_NOT_FOUND"
	SupplierNotFound       = "SUPPLIER_NOT_FOUND"
	BayNotFound            = "BAY_NOT_FOUND"
	BayNumberExists        = "BAY_NUMBER_EXISTS"
	TechnicianNotFound     = "TECHNICIAN_NOT_FOUND"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
