package service

import (
	"errors"
	"time"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrInvalidAppointmentState = errors.New("invalid appointment status")
)

type AppointmentService interface {
	CreateAppointment(appointment *model.Appointment) error
	GetAppointmentByID(id uint) (*model.Appointment, error)
	ListAppointments(status string, customerID uint, from, to *time.Time) ([]model.Appointment, error)
	ListAppointmentsForDay(day time.Time) ([]model.Appointment, error)
	UpdateAppointment(appointment *model.Appointment) error
	UpdateStatus(id uint, status model.AppointmentStatus) error
	DeleteAppointment(id uint) error
}

type appointmentService struct {
	appointmentRepo repository.AppointmentRepository
	customerRepo    repository.CustomerRepository
	vehicleRepo     repository.VehicleRepository
}

func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		vehicleRepo:     vehicleRepo,
	}
}

func validAppointmentStatus(status model.AppointmentStatus) bool {
	for _, s := range model.AppointmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s *appointmentService) CreateAppointment(appointment *model.Appointment) error {
	logger.Info("Creating appointment", map[string]interface{}{
		"customer_id":      appointment.CustomerID,
		"vehicle_id":       appointment.VehicleID,
		"appointment_date": appointment.AppointmentDate,
	})

	if _, err := s.customerRepo.FindByID(appointment.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	if _, err := s.vehicleRepo.FindByID(appointment.VehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}

	appointment.AppointmentNumber = ""
	if appointment.Status == "" {
		appointment.Status = model.AppointmentScheduled
	}
	if !validAppointmentStatus(appointment.Status) {
		return ErrInvalidAppointmentState
	}

	if err := s.appointmentRepo.Create(appointment); err != nil {
		logger.Error("Failed to create appointment", err, map[string]interface{}{
			"customer_id": appointment.CustomerID,
		})
		return err
	}

	logger.Info("Appointment created successfully", map[string]interface{}{
		"appointment_id":     appointment.ID,
		"appointment_number": appointment.AppointmentNumber,
	})
	return nil
}

func (s *appointmentService) GetAppointmentByID(id uint) (*model.Appointment, error) {
	appointment, err := s.appointmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) ListAppointments(status string, customerID uint, from, to *time.Time) ([]model.Appointment, error) {
	if status != "" && !validAppointmentStatus(model.AppointmentStatus(status)) {
		return nil, ErrInvalidAppointmentState
	}
	return s.appointmentRepo.FindAll(status, customerID, from, to)
}

func (s *appointmentService) ListAppointmentsForDay(day time.Time) ([]model.Appointment, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return s.appointmentRepo.FindByDateRange(start, start.AddDate(0, 0, 1))
}

func (s *appointmentService) UpdateAppointment(appointment *model.Appointment) error {
	existing, err := s.appointmentRepo.FindByID(appointment.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}

	if !validAppointmentStatus(appointment.Status) {
		return ErrInvalidAppointmentState
	}

	appointment.AppointmentNumber = existing.AppointmentNumber
	appointment.CreatedAt = existing.CreatedAt

	if err := s.appointmentRepo.Update(appointment); err != nil {
		logger.Error("Failed to update appointment", err, map[string]interface{}{
			"appointment_id": appointment.ID,
		})
		return err
	}

	logger.Info("Appointment updated successfully", map[string]interface{}{
		"appointment_id": appointment.ID,
		"status":         appointment.Status,
	})
	return nil
}

// UpdateStatus writes the new status without constraining the transition.
// Front desk staff routinely correct mis-set states, so any known status may
// replace any other.
func (s *appointmentService) UpdateStatus(id uint, status model.AppointmentStatus) error {
	if !validAppointmentStatus(status) {
		logger.Warn("Rejected unknown appointment status", map[string]interface{}{
			"appointment_id": id,
			"status":         status,
		})
		return ErrInvalidAppointmentState
	}

	if _, err := s.appointmentRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}

	if err := s.appointmentRepo.UpdateStatus(id, status); err != nil {
		return err
	}

	logger.Info("Appointment status updated", map[string]interface{}{
		"appointment_id": id,
		"status":         status,
	})
	return nil
}

func (s *appointmentService) DeleteAppointment(id uint) error {
	if _, err := s.appointmentRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}

	if err := s.appointmentRepo.Delete(id); err != nil {
		logger.Error("Failed to delete appointment", err, map[string]interface{}{
			"appointment_id": id,
		})
		return err
	}

	logger.Info("Appointment deleted", map[string]interface{}{
		"appointment_id": id,
	})
	return nil
}
