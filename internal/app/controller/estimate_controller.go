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

type EstimateController struct {
	estimateService service.EstimateService
}

func NewEstimateController(estimateService service.EstimateService) *EstimateController {
	return &EstimateController{
		estimateService: estimateService,
	}
}

type EstimateItemInput struct {
	ItemType    string          `json:"item_type" binding:"required,oneof=labor part sublet"`
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Notes       string          `json:"notes"`
}

type EstimateRequest struct {
	CustomerID         uint                 `json:"customer_id" binding:"required"`
	VehicleID          uint                 `json:"vehicle_id" binding:"required"`
	ValidUntil         time.Time            `json:"valid_until" binding:"required"`
	Discount           decimal.Decimal      `json:"discount"`
	Tax                decimal.Decimal      `json:"tax"`
	Status             model.EstimateStatus `json:"status"`
	TermsAndConditions string               `json:"terms_and_conditions"`
	Notes              string               `json:"notes"`
	Items              []EstimateItemInput  `json:"items" binding:"required,min=1,dive"`
}

type UpdateEstimateStatusRequest struct {
	Status model.EstimateStatus `json:"status" binding:"required"`
}

func (req *EstimateRequest) toModel() *model.Estimate {
	items := make([]model.EstimateItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = model.EstimateItem{
			ItemType:    item.ItemType,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Notes:       item.Notes,
		}
	}
	return &model.Estimate{
		CustomerID:         req.CustomerID,
		VehicleID:          req.VehicleID,
		ValidUntil:         req.ValidUntil,
		Discount:           req.Discount,
		Tax:                req.Tax,
		Status:             req.Status,
		TermsAndConditions: req.TermsAndConditions,
		Notes:              req.Notes,
		Items:              items,
	}
}

// GetEstimates lists estimates with optional filters
// GET /api/v1/estimates?status=&customer_id=
func (ctrl *EstimateController) GetEstimates(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var customerID uint
	if raw := c.Query("customer_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid customer_id filter",
			})
			return
		}
		customerID = uint(parsed)
	}

	estimates, err := ctrl.estimateService.ListEstimates(c.Query("status"), customerID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEstimateState) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown estimate status filter",
			})
			return
		}
		log.Error("Failed to fetch estimates", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch estimates",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"estimates": estimates,
		"count":     len(estimates),
	})
}

// GetEstimateByID returns one estimate with its line items
// GET /api/v1/estimates/:id
func (ctrl *EstimateController) GetEstimateByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid estimate ID",
		})
		return
	}

	estimate, err := ctrl.estimateService.GetEstimateByID(id)
	if err != nil {
		if errors.Is(err, service.ErrEstimateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Estimate not found",
			})
			return
		}
		log.Error("Failed to fetch estimate", err, map[string]interface{}{
			"estimate_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch estimate",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"estimate": estimate,
	})
}

// CreateEstimate creates an estimate; totals are derived server-side
// POST /api/v1/estimates
func (ctrl *EstimateController) CreateEstimate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create estimate request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	estimate := req.toModel()
	if err := ctrl.estimateService.CreateEstimate(estimate); err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Customer does not exist",
			})
		case errors.Is(err, service.ErrVehicleNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Vehicle does not exist",
			})
		case errors.Is(err, service.ErrInvalidEstimateState):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown estimate status",
			})
		default:
			log.Error("Failed to create estimate", err, map[string]interface{}{
				"customer_id": req.CustomerID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create estimate",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"estimate": estimate,
	})
}

// UpdateEstimate replaces the estimate header and line items
// PUT /api/v1/estimates/:id
func (ctrl *EstimateController) UpdateEstimate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid estimate ID",
		})
		return
	}

	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	estimate := req.toModel()
	estimate.ID = id
	if estimate.Status == "" {
		estimate.Status = model.EstimateDraft
	}

	if err := ctrl.estimateService.UpdateEstimate(estimate); err != nil {
		switch {
		case errors.Is(err, service.ErrEstimateNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Estimate not found",
			})
		case errors.Is(err, service.ErrInvalidEstimateState):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown estimate status",
			})
		default:
			log.Error("Failed to update estimate", err, map[string]interface{}{
				"estimate_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update estimate",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"estimate": estimate,
	})
}

// UpdateEstimateStatus sets the estimate status
// PATCH /api/v1/estimates/:id/status
func (ctrl *EstimateController) UpdateEstimateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid estimate ID",
		})
		return
	}

	var req UpdateEstimateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := ctrl.estimateService.UpdateStatus(id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrEstimateNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Estimate not found",
			})
		case errors.Is(err, service.ErrInvalidEstimateState):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown estimate status",
			})
		default:
			log.Error("Failed to update estimate status", err, map[string]interface{}{
				"estimate_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update estimate status",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Estimate status updated",
		"status":  req.Status,
	})
}

// ConvertEstimate converts the estimate into a work order
// POST /api/v1/estimates/:id/convert
func (ctrl *EstimateController) ConvertEstimate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid estimate ID",
		})
		return
	}

	workOrder, err := ctrl.estimateService.ConvertToWorkOrder(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEstimateNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Estimate not found",
			})
		case errors.Is(err, service.ErrEstimateNotConvertible):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Estimate has already been converted",
			})
		default:
			log.Error("Failed to convert estimate", err, map[string]interface{}{
				"estimate_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to convert estimate",
			})
		}
		return
	}

	log.Info("Estimate converted", map[string]interface{}{
		"estimate_id":   id,
		"work_order_id": workOrder.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"work_order": workOrder,
	})
}

// DeleteEstimate soft deletes an estimate
// DELETE /api/v1/estimates/:id
func (ctrl *EstimateController) DeleteEstimate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid estimate ID",
		})
		return
	}

	if err := ctrl.estimateService.DeleteEstimate(id); err != nil {
		if errors.Is(err, service.ErrEstimateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Estimate not found",
			})
			return
		}
		log.Error("Failed to delete estimate", err, map[string]interface{}{
			"estimate_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete estimate",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Estimate deleted successfully",
	})
}
