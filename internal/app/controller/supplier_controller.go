package controller

import (
	"errors"
	"net/http"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/service"
	"github.com/gearboxhq/autoshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type SupplierController struct {
	inventoryService service.InventoryService
}

func NewSupplierController(inventoryService service.InventoryService) *SupplierController {
	return &SupplierController{
		inventoryService: inventoryService,
	}
}

type SupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	TaxNumber     string `json:"tax_number"`
	PaymentTerms  string `json:"payment_terms"`
	LeadTimeDays  int    `json:"lead_time_days"`
	IsActive      *bool  `json:"is_active"`
	Notes         string `json:"notes"`
}

func (req *SupplierRequest) toModel() *model.Supplier {
	supplier := &model.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		TaxNumber:     req.TaxNumber,
		PaymentTerms:  req.PaymentTerms,
		LeadTimeDays:  req.LeadTimeDays,
		IsActive:      true,
		Notes:         req.Notes,
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}
	return supplier
}

// GetSuppliers lists suppliers
// GET /api/v1/suppliers?search=&active=
func (ctrl *SupplierController) GetSuppliers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	suppliers, err := ctrl.inventoryService.ListSuppliers(c.Query("search"), c.Query("active") == "true")
	if err != nil {
		log.Error("Failed to fetch suppliers", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suppliers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suppliers": suppliers,
		"count":     len(suppliers),
	})
}

// GetSupplierByID returns one supplier with their parts
// GET /api/v1/suppliers/:id
func (ctrl *SupplierController) GetSupplierByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID"})
		return
	}

	supplier, err := ctrl.inventoryService.GetSupplierByID(id)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
			return
		}
		log.Error("Failed to fetch supplier", err, map[string]interface{}{
			"supplier_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch supplier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"supplier": supplier,
	})
}

// CreateSupplier creates a supplier; the supplier number is server-assigned
// POST /api/v1/suppliers
func (ctrl *SupplierController) CreateSupplier(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	supplier := req.toModel()
	if err := ctrl.inventoryService.CreateSupplier(supplier); err != nil {
		log.Error("Failed to create supplier", err, map[string]interface{}{
			"name": req.Name,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplier"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"supplier": supplier,
	})
}

// UpdateSupplier updates a supplier
// PUT /api/v1/suppliers/:id
func (ctrl *SupplierController) UpdateSupplier(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID"})
		return
	}

	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	supplier := req.toModel()
	supplier.ID = id

	if err := ctrl.inventoryService.UpdateSupplier(supplier); err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
			return
		}
		log.Error("Failed to update supplier", err, map[string]interface{}{
			"supplier_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supplier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"supplier": supplier,
	})
}

// DeleteSupplier soft deletes a supplier
// DELETE /api/v1/suppliers/:id
func (ctrl *SupplierController) DeleteSupplier(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID"})
		return
	}

	if err := ctrl.inventoryService.DeleteSupplier(id); err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
			return
		}
		log.Error("Failed to delete supplier", err, map[string]interface{}{
			"supplier_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete supplier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Supplier deleted successfully",
	})
}
