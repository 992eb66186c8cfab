package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/service"
	"github.com/gearboxhq/autoshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CustomerController struct {
	customerService service.CustomerService
	vehicleService  service.VehicleService
}

func NewCustomerController(
	customerService service.CustomerService,
	vehicleService service.VehicleService,
) *CustomerController {
	return &CustomerController{
		customerService: customerService,
		vehicleService:  vehicleService,
	}
}

type CustomerRequest struct {
	CustomerType           model.CustomerType `json:"customer_type"`
	Name                   string             `json:"name" binding:"required"`
	CompanyName            string             `json:"company_name"`
	Email                  string             `json:"email" binding:"required,email"`
	Phone                  string             `json:"phone" binding:"required"`
	SecondaryPhone         string             `json:"secondary_phone"`
	Address                string             `json:"address"`
	City                   string             `json:"city"`
	State                  string             `json:"state"`
	ZipCode                string             `json:"zip_code"`
	TaxNumber              string             `json:"tax_number"`
	PreferredContactMethod string             `json:"preferred_contact_method"`
	ReferralSource         string             `json:"referral_source"`
	CreditLimit            decimal.Decimal    `json:"credit_limit"`
	IsActive               *bool              `json:"is_active"`
	Notes                  string             `json:"notes"`
}

func (req *CustomerRequest) toModel() *model.Customer {
	customer := &model.Customer{
		CustomerType:           req.CustomerType,
		Name:                   req.Name,
		CompanyName:            req.CompanyName,
		Email:                  req.Email,
		Phone:                  req.Phone,
		SecondaryPhone:         req.SecondaryPhone,
		Address:                req.Address,
		City:                   req.City,
		State:                  req.State,
		ZipCode:                req.ZipCode,
		TaxNumber:              req.TaxNumber,
		PreferredContactMethod: req.PreferredContactMethod,
		ReferralSource:         req.ReferralSource,
		CreditLimit:            req.CreditLimit,
		IsActive:               true,
		Notes:                  req.Notes,
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}
	return customer
}

// GetCustomers lists customers with optional search and type filters
// GET /api/v1/customers
func (ctrl *CustomerController) GetCustomers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customers, err := ctrl.customerService.ListCustomers(c.Query("search"), c.Query("customer_type"))
	if err != nil {
		log.Error("Failed to fetch customers", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch customers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"count":     len(customers),
	})
}

// GetCustomerByID returns one customer with their vehicles
// GET /api/v1/customers/:id
func (ctrl *CustomerController) GetCustomerByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid customer ID",
		})
		return
	}

	customer, err := ctrl.customerService.GetCustomerByID(id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Customer not found",
			})
			return
		}
		log.Error("Failed to fetch customer", err, map[string]interface{}{
			"customer_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch customer",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
	})
}

// GetCustomerVehicles returns the customer's vehicles
// GET /api/v1/customers/:id/vehicles
func (ctrl *CustomerController) GetCustomerVehicles(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid customer ID",
		})
		return
	}

	vehicles, err := ctrl.vehicleService.ListVehiclesByCustomer(id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Customer not found",
			})
			return
		}
		log.Error("Failed to fetch customer vehicles", err, map[string]interface{}{
			"customer_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch vehicles",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicles": vehicles,
		"count":    len(vehicles),
	})
}

// CreateCustomer creates a customer; the customer number is assigned by the
// server and returned in the response
// POST /api/v1/customers
func (ctrl *CustomerController) CreateCustomer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create customer request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	customer := req.toModel()
	if err := ctrl.customerService.CreateCustomer(customer); err != nil {
		log.Error("Failed to create customer", err, map[string]interface{}{
			"name": req.Name,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create customer",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"customer": customer,
	})
}

// UpdateCustomer updates a customer
// PUT /api/v1/customers/:id
func (ctrl *CustomerController) UpdateCustomer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid customer ID",
		})
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	customer := req.toModel()
	customer.ID = id

	if err := ctrl.customerService.UpdateCustomer(customer); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Customer not found",
			})
			return
		}
		log.Error("Failed to update customer", err, map[string]interface{}{
			"customer_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update customer",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
	})
}

// DeleteCustomer soft deletes a customer
// DELETE /api/v1/customers/:id
func (ctrl *CustomerController) DeleteCustomer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid customer ID",
		})
		return
	}

	if err := ctrl.customerService.DeleteCustomer(id); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Customer not found",
			})
			return
		}
		log.Error("Failed to delete customer", err, map[string]interface{}{
			"customer_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete customer",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer deleted successfully",
	})
}

// parseIDParam parses the :id path parameter shared by all controllers.
func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
