package controller

import (
	"errors"
	"net/http"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/service"
	apperrors "github.com/gearboxhq/autoshop-backend/internal/errors"
	"github.com/gearboxhq/autoshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type BayController struct {
	bayService service.BayService
}

func NewBayController(bayService service.BayService) *BayController {
	return &BayController{
		bayService: bayService,
	}
}

type BayRequest struct {
	BayNumber string          `json:"bay_number" binding:"required"`
	Name      string          `json:"name"`
	BayType   string          `json:"bay_type"`
	Status    model.BayStatus `json:"status"`
	HasLift   bool            `json:"has_lift"`
	Notes     string          `json:"notes"`
}

type UpdateBayStatusRequest struct {
	Status model.BayStatus `json:"status" binding:"required"`
}

func (req *BayRequest) toModel() *model.Bay {
	return &model.Bay{
		BayNumber: req.BayNumber,
		Name:      req.Name,
		BayType:   req.BayType,
		Status:    req.Status,
		HasLift:   req.HasLift,
		Notes:     req.Notes,
	}
}

// GetBays lists service bays
// GET /api/v1/bays?status=
func (ctrl *BayController) GetBays(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	bays, err := ctrl.bayService.ListBays(c.Query("status"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidBayStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown bay status filter"})
			return
		}
		log.Error("Failed to fetch bays", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bays"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bays":  bays,
		"count": len(bays),
	})
}

// GetBayByID returns one bay
// GET /api/v1/bays/:id
func (ctrl *BayController) GetBayByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bay ID"})
		return
	}

	bay, err := ctrl.bayService.GetBayByID(id)
	if err != nil {
		if errors.Is(err, service.ErrBayNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bay not found"})
			return
		}
		log.Error("Failed to fetch bay", err, map[string]interface{}{
			"bay_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bay"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bay": bay,
	})
}

// CreateBay adds a bay
// POST /api/v1/bays
func (ctrl *BayController) CreateBay(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	bay := req.toModel()
	if err := ctrl.bayService.CreateBay(bay); err != nil {
		if errors.Is(err, service.ErrInvalidBayStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown bay status"})
			return
		}
		log.Error("Failed to create bay", err, map[string]interface{}{
			"bay_number": req.BayNumber,
		})
		apperrors.RespondWithDBError(c, err, "bay")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"bay": bay,
	})
}

// UpdateBay updates a bay
// PUT /api/v1/bays/:id
func (ctrl *BayController) UpdateBay(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bay ID"})
		return
	}

	var req BayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	bay := req.toModel()
	bay.ID = id
	if bay.Status == "" {
		bay.Status = model.BayAvailable
	}

	if err := ctrl.bayService.UpdateBay(bay); err != nil {
		switch {
		case errors.Is(err, service.ErrBayNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bay not found"})
		case errors.Is(err, service.ErrInvalidBayStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown bay status"})
		default:
			log.Error("Failed to update bay", err, map[string]interface{}{
				"bay_id": id,
			})
			apperrors.RespondWithDBError(c, err, "bay")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bay": bay,
	})
}

// UpdateBayStatus sets the bay status
// PATCH /api/v1/bays/:id/status
func (ctrl *BayController) UpdateBayStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bay ID"})
		return
	}

	var req UpdateBayStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := ctrl.bayService.UpdateStatus(id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrBayNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bay not found"})
		case errors.Is(err, service.ErrInvalidBayStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown bay status"})
		default:
			log.Error("Failed to update bay status", err, map[string]interface{}{
				"bay_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bay status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bay status updated",
		"status":  req.Status,
	})
}

// DeleteBay soft deletes a bay
// DELETE /api/v1/bays/:id
func (ctrl *BayController) DeleteBay(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bay ID"})
		return
	}

	if err := ctrl.bayService.DeleteBay(id); err != nil {
		if errors.Is(err, service.ErrBayNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bay not found"})
			return
		}
		log.Error("Failed to delete bay", err, map[string]interface{}{
			"bay_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bay"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bay deleted successfully",
	})
}
