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
)

type AppointmentController struct {
	appointmentService service.AppointmentService
}

func NewAppointmentController(appointmentService service.AppointmentService) *AppointmentController {
	return &AppointmentController{
		appointmentService: appointmentService,
	}
}

type AppointmentRequest struct {
	CustomerID           uint                    `json:"customer_id" binding:"required"`
	VehicleID            uint                    `json:"vehicle_id" binding:"required"`
	AppointmentDate      time.Time               `json:"appointment_date" binding:"required"`
	EstimatedDuration    int                     `json:"estimated_duration" binding:"required,min=1"`
	Status               model.AppointmentStatus `json:"status"`
	BayID                *uint                   `json:"bay_id"`
	TechnicianID         *uint                   `json:"technician_id"`
	ServiceTypeRequested string                  `json:"service_type_requested"`
	CustomerNotes        string                  `json:"customer_notes"`
	InternalNotes        string                  `json:"internal_notes"`
}

type UpdateAppointmentStatusRequest struct {
	Status model.AppointmentStatus `json:"status" binding:"required"`
}

func (req *AppointmentRequest) toModel() *model.Appointment {
	return &model.Appointment{
		CustomerID:           req.CustomerID,
		VehicleID:            req.VehicleID,
		AppointmentDate:      req.AppointmentDate,
		EstimatedDuration:    req.EstimatedDuration,
		Status:               req.Status,
		BayID:                req.BayID,
		TechnicianID:         req.TechnicianID,
		ServiceTypeRequested: req.ServiceTypeRequested,
		CustomerNotes:        req.CustomerNotes,
		InternalNotes:        req.InternalNotes,
	}
}

// GetAppointments lists appointments with optional filters
// GET /api/v1/appointments?status=&customer_id=&from=&to=
func (ctrl *AppointmentController) GetAppointments(c *gin.Context) {
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

	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid from filter, expected RFC3339",
			})
			return
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid to filter, expected RFC3339",
			})
			return
		}
		to = &parsed
	}

	appointments, err := ctrl.appointmentService.ListAppointments(c.Query("status"), customerID, from, to)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAppointmentState) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown appointment status filter",
			})
			return
		}
		log.Error("Failed to fetch appointments", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch appointments",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// GetAppointmentByID returns one appointment
// GET /api/v1/appointments/:id
func (ctrl *AppointmentController) GetAppointmentByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment ID",
		})
		return
	}

	appointment, err := ctrl.appointmentService.GetAppointmentByID(id)
	if err != nil {
		if errors.Is(err, service.ErrAppointmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
			return
		}
		log.Error("Failed to fetch appointment", err, map[string]interface{}{
			"appointment_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch appointment",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment": appointment,
	})
}

// CreateAppointment books an appointment
// POST /api/v1/appointments
func (ctrl *AppointmentController) CreateAppointment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create appointment request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	appointment := req.toModel()
	if err := ctrl.appointmentService.CreateAppointment(appointment); err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Customer does not exist",
			})
		case errors.Is(err, service.ErrVehicleNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Vehicle does not exist",
			})
		case errors.Is(err, service.ErrInvalidAppointmentState):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown appointment status",
			})
		default:
			log.Error("Failed to create appointment", err, map[string]interface{}{
				"customer_id": req.CustomerID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create appointment",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment": appointment,
	})
}

// UpdateAppointment updates an appointment
// PUT /api/v1/appointments/:id
func (ctrl *AppointmentController) UpdateAppointment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment ID",
		})
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	appointment := req.toModel()
	appointment.ID = id
	if appointment.Status == "" {
		appointment.Status = model.AppointmentScheduled
	}

	if err := ctrl.appointmentService.UpdateAppointment(appointment); err != nil {
		switch {
		case errors.Is(err, service.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
		case errors.Is(err, service.ErrInvalidAppointmentState):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown appointment status",
			})
		default:
			log.Error("Failed to update appointment", err, map[string]interface{}{
				"appointment_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update appointment",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment": appointment,
	})
}

// UpdateAppointmentStatus sets the appointment status
// PATCH /api/v1/appointments/:id/status
func (ctrl *AppointmentController) UpdateAppointmentStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment ID",
		})
		return
	}

	var req UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := ctrl.appointmentService.UpdateStatus(id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
		case errors.Is(err, service.ErrInvalidAppointmentState):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown appointment status",
			})
		default:
			log.Error("Failed to update appointment status", err, map[string]interface{}{
				"appointment_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update appointment status",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Appointment status updated",
		"status":  req.Status,
	})
}

// DeleteAppointment soft deletes an appointment
// DELETE /api/v1/appointments/:id
func (ctrl *AppointmentController) DeleteAppointment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment ID",
		})
		return
	}

	if err := ctrl.appointmentService.DeleteAppointment(id); err != nil {
		if errors.Is(err, service.ErrAppointmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
			return
		}
		log.Error("Failed to delete appointment", err, map[string]interface{}{
			"appointment_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete appointment",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Appointment deleted successfully",
	})
}
