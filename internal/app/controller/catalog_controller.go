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
	"github.com/shopspring/decimal"
)

// CatalogController serves the labor catalog and the shared category tree.
type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

type ServiceRequest struct {
	ServiceCode   string           `json:"service_code" binding:"required"`
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	CategoryID    *uint            `json:"category_id"`
	StandardHours decimal.Decimal  `json:"standard_hours"`
	LaborRate     decimal.Decimal  `json:"labor_rate"`
	FlatRate      *decimal.Decimal `json:"flat_rate"`
	IsActive      *bool            `json:"is_active"`
}

type CategoryRequest struct {
	Name             string             `json:"name" binding:"required"`
	CategoryType     model.CategoryType `json:"category_type" binding:"required,oneof=service part"`
	Description      string             `json:"description"`
	ParentCategoryID *uint              `json:"parent_category_id"`
	DisplayOrder     int                `json:"display_order"`
	IsActive         *bool              `json:"is_active"`
}

func (req *ServiceRequest) toModel() *model.Service {
	svc := &model.Service{
		ServiceCode:   req.ServiceCode,
		Name:          req.Name,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		StandardHours: req.StandardHours,
		LaborRate:     req.LaborRate,
		FlatRate:      req.FlatRate,
		IsActive:      true,
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	return svc
}

func (req *CategoryRequest) toModel() *model.Category {
	category := &model.Category{
		Name:             req.Name,
		CategoryType:     req.CategoryType,
		Description:      req.Description,
		ParentCategoryID: req.ParentCategoryID,
		DisplayOrder:     req.DisplayOrder,
		IsActive:         true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	return category
}

// GetServices lists catalog services
// GET /api/v1/services?search=&category_id=&active=
func (ctrl *CatalogController) GetServices(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var categoryID uint
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id filter"})
			return
		}
		categoryID = uint(parsed)
	}

	services, err := ctrl.catalogService.ListServices(c.Query("search"), categoryID, c.Query("active") == "true")
	if err != nil {
		log.Error("Failed to fetch services", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"count":    len(services),
	})
}

// GetServiceByID returns one catalog service
// GET /api/v1/services/:id
func (ctrl *CatalogController) GetServiceByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	svc, err := ctrl.catalogService.GetServiceByID(id)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
			return
		}
		log.Error("Failed to fetch service", err, map[string]interface{}{
			"service_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service": svc,
	})
}

// CreateService adds a catalog service
// POST /api/v1/services
func (ctrl *CatalogController) CreateService(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	svc := req.toModel()
	if err := ctrl.catalogService.CreateService(svc); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}
		log.Error("Failed to create service", err, map[string]interface{}{
			"service_code": req.ServiceCode,
		})
		apperrors.RespondWithDBError(c, err, "service")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"service": svc,
	})
}

// UpdateService updates a catalog service
// PUT /api/v1/services/:id
func (ctrl *CatalogController) UpdateService(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	svc := req.toModel()
	svc.ID = id

	if err := ctrl.catalogService.UpdateService(svc); err != nil {
		switch {
		case errors.Is(err, service.ErrServiceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		case errors.Is(err, service.ErrCategoryNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
		default:
			log.Error("Failed to update service", err, map[string]interface{}{
				"service_id": id,
			})
			apperrors.RespondWithDBError(c, err, "service")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service": svc,
	})
}

// DeleteService soft deletes a catalog service
// DELETE /api/v1/services/:id
func (ctrl *CatalogController) DeleteService(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	if err := ctrl.catalogService.DeleteService(id); err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
			return
		}
		log.Error("Failed to delete service", err, map[string]interface{}{
			"service_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Service deleted successfully",
	})
}

// GetCategories lists top-level categories with their subcategories
// GET /api/v1/categories?type=
func (ctrl *CatalogController) GetCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.catalogService.ListCategories(c.Query("type"))
	if err != nil {
		log.Error("Failed to fetch categories", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetCategoryByID returns one category
// GET /api/v1/categories/:id
func (ctrl *CatalogController) GetCategoryByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	category, err := ctrl.catalogService.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		log.Error("Failed to fetch category", err, map[string]interface{}{
			"category_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// CreateCategory creates a category
// POST /api/v1/categories
func (ctrl *CatalogController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	category := req.toModel()
	if err := ctrl.catalogService.CreateCategory(category); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent category does not exist"})
			return
		}
		log.Error("Failed to create category", err, map[string]interface{}{
			"name": req.Name,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"category": category,
	})
}

// UpdateCategory updates a category
// PUT /api/v1/categories/:id
func (ctrl *CatalogController) UpdateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	category := req.toModel()
	category.ID = id

	if err := ctrl.catalogService.UpdateCategory(category); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		log.Error("Failed to update category", err, map[string]interface{}{
			"category_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// DeleteCategory soft deletes a category
// DELETE /api/v1/categories/:id
func (ctrl *CatalogController) DeleteCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := ctrl.catalogService.DeleteCategory(id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		log.Error("Failed to delete category", err, map[string]interface{}{
			"category_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully",
	})
}
