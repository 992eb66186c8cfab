package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/service"
	apperrors "github.com/gearboxhq/autoshop-backend/internal/errors"
	"github.com/gearboxhq/autoshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type VehicleController struct {
	vehicleService service.VehicleService
}

func NewVehicleController(vehicleService service.VehicleService) *VehicleController {
	return &VehicleController{
		vehicleService: vehicleService,
	}
}

type VehicleRequest struct {
	CustomerID            uint             `json:"customer_id" binding:"required"`
	RegistrationNumber    string           `json:"registration_number" binding:"required"`
	VIN                   string           `json:"vin"`
	Make                  string           `json:"make" binding:"required"`
	Model                 string           `json:"model" binding:"required"`
	Year                  int              `json:"year" binding:"required"`
	EngineType            model.EngineType `json:"engine_type"`
	EngineSize            string           `json:"engine_size"`
	Transmission          string           `json:"transmission"`
	Color                 string           `json:"color"`
	CurrentMileage        int              `json:"current_mileage"`
	FuelType              string           `json:"fuel_type"`
	BodyType              string           `json:"body_type"`
	InsuranceDetails      string           `json:"insurance_details"`
	NextServiceDueDate    *time.Time       `json:"next_service_due_date"`
	NextServiceDueMileage *int             `json:"next_service_due_mileage"`
	Notes                 string           `json:"notes"`
}

// VehicleResponse flattens the owner's name onto the vehicle for list views.
type VehicleResponse struct {
	model.Vehicle
	CustomerName string `json:"customer_name,omitempty"`
}

func (req *VehicleRequest) toModel() *model.Vehicle {
	return &model.Vehicle{
		CustomerID:            req.CustomerID,
		RegistrationNumber:    req.RegistrationNumber,
		VIN:                   req.VIN,
		Make:                  req.Make,
		Model:                 req.Model,
		Year:                  req.Year,
		EngineType:            req.EngineType,
		EngineSize:            req.EngineSize,
		Transmission:          req.Transmission,
		Color:                 req.Color,
		CurrentMileage:        req.CurrentMileage,
		FuelType:              req.FuelType,
		BodyType:              req.BodyType,
		InsuranceDetails:      req.InsuranceDetails,
		NextServiceDueDate:    req.NextServiceDueDate,
		NextServiceDueMileage: req.NextServiceDueMileage,
		Notes:                 req.Notes,
	}
}

func toVehicleResponse(vehicle model.Vehicle) VehicleResponse {
	return VehicleResponse{
		Vehicle:      vehicle,
		CustomerName: vehicle.Customer.Name,
	}
}

// GetVehicles lists vehicles with optional search
// GET /api/v1/vehicles
func (ctrl *VehicleController) GetVehicles(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	vehicles, err := ctrl.vehicleService.ListVehicles(c.Query("search"))
	if err != nil {
		log.Error("Failed to fetch vehicles", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch vehicles",
		})
		return
	}

	responses := make([]VehicleResponse, len(vehicles))
	for i, vehicle := range vehicles {
		responses[i] = toVehicleResponse(vehicle)
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicles": responses,
		"count":    len(responses),
	})
}

// GetVehicleByID returns one vehicle
// GET /api/v1/vehicles/:id
func (ctrl *VehicleController) GetVehicleByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vehicle ID",
		})
		return
	}

	vehicle, err := ctrl.vehicleService.GetVehicleByID(id)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Vehicle not found",
			})
			return
		}
		log.Error("Failed to fetch vehicle", err, map[string]interface{}{
			"vehicle_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch vehicle",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicle": toVehicleResponse(*vehicle),
	})
}

// CreateVehicle registers a vehicle against an existing customer
// POST /api/v1/vehicles
func (ctrl *VehicleController) CreateVehicle(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create vehicle request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	vehicle := req.toModel()
	if err := ctrl.vehicleService.CreateVehicle(vehicle); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Customer does not exist",
			})
			return
		}
		log.Error("Failed to create vehicle", err, map[string]interface{}{
			"registration_number": req.RegistrationNumber,
		})
		apperrors.RespondWithDBError(c, err, "vehicle")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"vehicle": vehicle,
	})
}

// UpdateVehicle updates a vehicle
// PUT /api/v1/vehicles/:id
func (ctrl *VehicleController) UpdateVehicle(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vehicle ID",
		})
		return
	}

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	vehicle := req.toModel()
	vehicle.ID = id

	if err := ctrl.vehicleService.UpdateVehicle(vehicle); err != nil {
		switch {
		case errors.Is(err, service.ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Vehicle not found",
			})
		case errors.Is(err, service.ErrCustomerNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Customer does not exist",
			})
		default:
			log.Error("Failed to update vehicle", err, map[string]interface{}{
				"vehicle_id": id,
			})
			apperrors.RespondWithDBError(c, err, "vehicle")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicle": vehicle,
	})
}

// DeleteVehicle soft deletes a vehicle
// DELETE /api/v1/vehicles/:id
func (ctrl *VehicleController) DeleteVehicle(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vehicle ID",
		})
		return
	}

	if err := ctrl.vehicleService.DeleteVehicle(id); err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Vehicle not found",
			})
			return
		}
		log.Error("Failed to delete vehicle", err, map[string]interface{}{
			"vehicle_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete vehicle",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vehicle deleted successfully",
	})
}
