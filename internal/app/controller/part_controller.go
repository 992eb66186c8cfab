package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/service"
	apperrors "github.com/gearboxhq/autoshop-backend/internal/errors"
	"github.com/gearboxhq/autoshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PartController struct {
	inventoryService service.InventoryService
}

func NewPartController(inventoryService service.InventoryService) *PartController {
	return &PartController{
		inventoryService: inventoryService,
	}
}

type PartRequest struct {
	PartNumber      string          `json:"part_number" binding:"required"`
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	CategoryID      *uint           `json:"category_id"`
	SupplierID      *uint           `json:"supplier_id"`
	Manufacturer    string          `json:"manufacturer"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	RetailPrice     decimal.Decimal `json:"retail_price"`
	WholesalePrice  decimal.Decimal `json:"wholesale_price"`
	QuantityOnHand  int             `json:"quantity_on_hand"`
	MinimumStock    int             `json:"minimum_stock"`
	ReorderQuantity int             `json:"reorder_quantity"`
	Location        string          `json:"location"`
	CompatibleMakes []string        `json:"compatible_makes"`
	ImageURL        string          `json:"image_url"`
	IsActive        *bool           `json:"is_active"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type UploadImageRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size"`
}

func (req *PartRequest) toModel() *model.Part {
	part := &model.Part{
		PartNumber:      req.PartNumber,
		Name:            req.Name,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		SupplierID:      req.SupplierID,
		Manufacturer:    req.Manufacturer,
		CostPrice:       req.CostPrice,
		RetailPrice:     req.RetailPrice,
		WholesalePrice:  req.WholesalePrice,
		QuantityOnHand:  req.QuantityOnHand,
		MinimumStock:    req.MinimumStock,
		ReorderQuantity: req.ReorderQuantity,
		Location:        req.Location,
		CompatibleMakes: pq.StringArray(req.CompatibleMakes),
		ImageURL:        req.ImageURL,
		IsActive:        true,
	}
	if req.IsActive != nil {
		part.IsActive = *req.IsActive
	}
	return part
}

// GetParts lists parts with optional filters
// GET /api/v1/parts?search=&category_id=&supplier_id=&low_stock=
func (ctrl *PartController) GetParts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var categoryID, supplierID uint
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id filter"})
			return
		}
		categoryID = uint(parsed)
	}
	if raw := c.Query("supplier_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier_id filter"})
			return
		}
		supplierID = uint(parsed)
	}
	lowStock := c.Query("low_stock") == "true"

	parts, err := ctrl.inventoryService.ListParts(c.Query("search"), categoryID, supplierID, lowStock)
	if err != nil {
		log.Error("Failed to fetch parts", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch parts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"parts": parts,
		"count": len(parts),
	})
}

// GetPartByID returns one part
// GET /api/v1/parts/:id
func (ctrl *PartController) GetPartByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part ID"})
		return
	}

	part, err := ctrl.inventoryService.GetPartByID(id)
	if err != nil {
		if errors.Is(err, service.ErrPartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
			return
		}
		log.Error("Failed to fetch part", err, map[string]interface{}{
			"part_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch part"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"part": part,
	})
}

// CreatePart adds a part to inventory
// POST /api/v1/parts
func (ctrl *PartController) CreatePart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create part request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	part := req.toModel()
	if err := ctrl.inventoryService.CreatePart(part); err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Supplier does not exist"})
			return
		}
		log.Error("Failed to create part", err, map[string]interface{}{
			"part_number": req.PartNumber,
		})
		apperrors.RespondWithDBError(c, err, "part")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"part": part,
	})
}

// UpdatePart updates a part
// PUT /api/v1/parts/:id
func (ctrl *PartController) UpdatePart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part ID"})
		return
	}

	var req PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	part := req.toModel()
	part.ID = id

	if err := ctrl.inventoryService.UpdatePart(part); err != nil {
		switch {
		case errors.Is(err, service.ErrPartNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
		case errors.Is(err, service.ErrSupplierNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Supplier does not exist"})
		default:
			log.Error("Failed to update part", err, map[string]interface{}{
				"part_id": id,
			})
			apperrors.RespondWithDBError(c, err, "part")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"part": part,
	})
}

// AdjustStock applies a signed quantity delta to a part
// PATCH /api/v1/parts/:id/stock
func (ctrl *PartController) AdjustStock(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part ID"})
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	part, err := ctrl.inventoryService.AdjustStock(id, req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPartNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
		case errors.Is(err, service.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": "Adjustment would make stock negative"})
		default:
			log.Error("Failed to adjust stock", err, map[string]interface{}{
				"part_id": id,
				"delta":   req.Delta,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust stock"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"part": part,
	})
}

// UploadImage issues a presigned URL for a part image upload
// POST /api/v1/parts/upload-image
func (ctrl *PartController) UploadImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UploadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := ctrl.inventoryService.GenerateImageUploadURL(req.Filename, req.ContentType, req.Size)
	if err != nil {
		if errors.Is(err, service.ErrInvalidUpload) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File type or size not allowed"})
			return
		}
		log.Error("Failed to generate upload URL", err, map[string]interface{}{
			"filename": req.Filename,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate upload URL"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeletePart soft deletes a part
// DELETE /api/v1/parts/:id
func (ctrl *PartController) DeletePart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part ID"})
		return
	}

	if err := ctrl.inventoryService.DeletePart(id); err != nil {
		if errors.Is(err, service.ErrPartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
			return
		}
		log.Error("Failed to delete part", err, map[string]interface{}{
			"part_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete part"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Part deleted successfully",
	})
}
