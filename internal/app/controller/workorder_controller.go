package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/service"
	"github.com/gearboxhq/autoshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type WorkOrderController struct {
	workOrderService service.WorkOrderService
}

func NewWorkOrderController(workOrderService service.WorkOrderService) *WorkOrderController {
	return &WorkOrderController{
		workOrderService: workOrderService,
	}
}

type WorkOrderItemInput struct {
	ItemType       string           `json:"item_type" binding:"required,oneof=labor part"`
	ServiceID      *uint            `json:"service_id"`
	PartID         *uint            `json:"part_id"`
	Description    string           `json:"description" binding:"required"`
	Quantity       decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice      decimal.Decimal  `json:"unit_price" binding:"required"`
	TechnicianID   *uint            `json:"technician_id"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours"`
	ActualHours    *decimal.Decimal `json:"actual_hours"`
}

type WorkOrderRequest struct {
	CustomerID        uint                  `json:"customer_id" binding:"required"`
	VehicleID         uint                  `json:"vehicle_id" binding:"required"`
	MileageIn         int                   `json:"mileage_in"`
	MileageOut        *int                  `json:"mileage_out"`
	DateDue           *time.Time            `json:"date_due"`
	Priority          model.Priority        `json:"priority"`
	Status            model.WorkOrderStatus `json:"status"`
	BayID             *uint                 `json:"bay_id"`
	TechnicianID      *uint                 `json:"technician_id"`
	CustomerComplaint string                `json:"customer_complaint"`
	DiagnosisNotes    string                `json:"diagnosis_notes"`
	WorkPerformed     string                `json:"work_performed"`
	Recommendations   string                `json:"recommendations"`
	Items             []WorkOrderItemInput  `json:"items" binding:"dive"`
}

type UpdateWorkOrderStatusRequest struct {
	Status model.WorkOrderStatus `json:"status" binding:"required"`
}

type AssignTechnicianRequest struct {
	TechnicianID uint `json:"technician_id" binding:"required"`
}

func (req *WorkOrderRequest) toModel() *model.WorkOrder {
	items := make([]model.WorkOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = model.WorkOrderItem{
			ItemType:       item.ItemType,
			ServiceID:      item.ServiceID,
			PartID:         item.PartID,
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			TechnicianID:   item.TechnicianID,
			EstimatedHours: item.EstimatedHours,
			ActualHours:    item.ActualHours,
		}
	}
	return &model.WorkOrder{
		CustomerID:        req.CustomerID,
		VehicleID:         req.VehicleID,
		MileageIn:         req.MileageIn,
		MileageOut:        req.MileageOut,
		DateDue:           req.DateDue,
		Priority:          req.Priority,
		Status:            req.Status,
		BayID:             req.BayID,
		TechnicianID:      req.TechnicianID,
		CustomerComplaint: req.CustomerComplaint,
		DiagnosisNotes:    req.DiagnosisNotes,
		WorkPerformed:     req.WorkPerformed,
		Recommendations:   req.Recommendations,
		Items:             items,
	}
}

func respondWorkOrderError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrWorkOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Work order not found"})
	case errors.Is(err, service.ErrCustomerNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer does not exist"})
	case errors.Is(err, service.ErrVehicleNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vehicle does not exist"})
	case errors.Is(err, service.ErrTechnicianNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Technician does not exist"})
	case errors.Is(err, service.ErrBayNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bay does not exist"})
	case errors.Is(err, service.ErrInvalidWorkOrderState):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown work order status"})
	default:
		return false
	}
	return true
}

// GetWorkOrders lists work orders with optional filters
// GET /api/v1/work-orders?status=&customer_id=&technician_id=
func (ctrl *WorkOrderController) GetWorkOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var customerID, technicianID uint
	if raw := c.Query("customer_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer_id filter"})
			return
		}
		customerID = uint(parsed)
	}
	if raw := c.Query("technician_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid technician_id filter"})
			return
		}
		technicianID = uint(parsed)
	}

	workOrders, err := ctrl.workOrderService.ListWorkOrders(c.Query("status"), customerID, technicianID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidWorkOrderState) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown work order status filter"})
			return
		}
		log.Error("Failed to fetch work orders", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch work orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"work_orders": workOrders,
		"count":       len(workOrders),
	})
}

// GetWorkOrderByID returns one work order with its line items
// GET /api/v1/work-orders/:id
func (ctrl *WorkOrderController) GetWorkOrderByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid work order ID"})
		return
	}

	workOrder, err := ctrl.workOrderService.GetWorkOrderByID(id)
	if err != nil {
		if respondWorkOrderError(c, err) {
			return
		}
		log.Error("Failed to fetch work order", err, map[string]interface{}{
			"work_order_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch work order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"work_order": workOrder,
	})
}

// CreateWorkOrder opens a work order
// POST /api/v1/work-orders
func (ctrl *WorkOrderController) CreateWorkOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req WorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create work order request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	workOrder := req.toModel()
	if err := ctrl.workOrderService.CreateWorkOrder(workOrder); err != nil {
		if respondWorkOrderError(c, err) {
			return
		}
		log.Error("Failed to create work order", err, map[string]interface{}{
			"customer_id": req.CustomerID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create work order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"work_order": workOrder,
	})
}

// UpdateWorkOrder replaces the work order header and line items
// PUT /api/v1/work-orders/:id
func (ctrl *WorkOrderController) UpdateWorkOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid work order ID"})
		return
	}

	var req WorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	workOrder := req.toModel()
	workOrder.ID = id
	if workOrder.Status == "" {
		workOrder.Status = model.WorkOrderOpen
	}
	if workOrder.Priority == "" {
		workOrder.Priority = model.PriorityNormal
	}

	if err := ctrl.workOrderService.UpdateWorkOrder(workOrder); err != nil {
		if respondWorkOrderError(c, err) {
			return
		}
		log.Error("Failed to update work order", err, map[string]interface{}{
			"work_order_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update work order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"work_order": workOrder,
	})
}

// UpdateWorkOrderStatus sets the work order status
// PATCH /api/v1/work-orders/:id/status
func (ctrl *WorkOrderController) UpdateWorkOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid work order ID"})
		return
	}

	var req UpdateWorkOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := ctrl.workOrderService.UpdateStatus(id, req.Status); err != nil {
		if respondWorkOrderError(c, err) {
			return
		}
		log.Error("Failed to update work order status", err, map[string]interface{}{
			"work_order_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update work order status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Work order status updated",
		"status":  req.Status,
	})
}

// AssignTechnician assigns a technician to the work order
// PATCH /api/v1/work-orders/:id/assign
func (ctrl *WorkOrderController) AssignTechnician(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid work order ID"})
		return
	}

	var req AssignTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := ctrl.workOrderService.AssignTechnician(id, req.TechnicianID); err != nil {
		if respondWorkOrderError(c, err) {
			return
		}
		log.Error("Failed to assign technician", err, map[string]interface{}{
			"work_order_id": id,
			"technician_id": req.TechnicianID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign technician"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Technician assigned",
	})
}

// DeleteWorkOrder soft deletes a work order
// DELETE /api/v1/work-orders/:id
func (ctrl *WorkOrderController) DeleteWorkOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid work order ID"})
		return
	}

	if err := ctrl.workOrderService.DeleteWorkOrder(id); err != nil {
		if respondWorkOrderError(c, err) {
			return
		}
		log.Error("Failed to delete work order", err, map[string]interface{}{
			"work_order_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete work order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Work order deleted successfully",
	})
}
