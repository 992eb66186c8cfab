package repository

import (
	"time"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(appointment *model.Appointment) error
	FindByID(id uint) (*model.Appointment, error)
	FindAll(status string, customerID uint, from, to *time.Time) ([]model.Appointment, error)
	FindByDateRange(from, to time.Time) ([]model.Appointment, error)
	Update(appointment *model.Appointment) error
	UpdateStatus(id uint, status model.AppointmentStatus) error
	Delete(id uint) error
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) preloadAppointment() *gorm.DB {
	return r.db.Preload("Customer").Preload("Vehicle").Preload("Bay").Preload("Technician")
}

// Create inserts the appointment and derives its number from the new row's
// identity inside the same transaction.
func (r *appointmentRepository) Create(appointment *model.Appointment) error {
	logger.Debug("Creating appointment in database", map[string]interface{}{
		"customer_id":      appointment.CustomerID,
		"vehicle_id":       appointment.VehicleID,
		"appointment_date": appointment.AppointmentDate,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(appointment).Error; err != nil {
			return err
		}
		appointment.AppointmentNumber = model.FormatEntityNumber(model.AppointmentNumberPrefix, appointment.ID)
		return tx.Model(appointment).Update("appointment_number", appointment.AppointmentNumber).Error
	})
	if err != nil {
		logger.Error("Failed to create appointment in database", err, map[string]interface{}{
			"customer_id": appointment.CustomerID,
		})
		return err
	}

	logger.Debug("Appointment created in database", map[string]interface{}{
		"appointment_id":     appointment.ID,
		"appointment_number": appointment.AppointmentNumber,
	})
	return nil
}

func (r *appointmentRepository) FindByID(id uint) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := r.preloadAppointment().First(&appointment, id).Error; err != nil {
		logger.Error("Failed to find appointment by ID in database", err, map[string]interface{}{
			"appointment_id": id,
		})
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(status string, customerID uint, from, to *time.Time) ([]model.Appointment, error) {
	logger.Debug("Finding appointments in database", map[string]interface{}{
		"status":      status,
		"customer_id": customerID,
	})

	var appointments []model.Appointment
	query := r.preloadAppointment().Order("appointment_date ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID != 0 {
		query = query.Where("customer_id = ?", customerID)
	}
	if from != nil {
		query = query.Where("appointment_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("appointment_date <= ?", *to)
	}

	if err := query.Find(&appointments).Error; err != nil {
		logger.Error("Failed to find appointments in database", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}

	logger.Debug("Appointments found in database", map[string]interface{}{
		"count": len(appointments),
	})
	return appointments, nil
}

func (r *appointmentRepository) FindByDateRange(from, to time.Time) ([]model.Appointment, error) {
	var appointments []model.Appointment
	if err := r.preloadAppointment().
		Where("appointment_date >= ? AND appointment_date < ?", from, to).
		Order("appointment_date ASC").
		Find(&appointments).Error; err != nil {
		logger.Error("Failed to find appointments by date range in database", err)
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(appointment *model.Appointment) error {
	logger.Debug("Updating appointment in database", map[string]interface{}{
		"appointment_id": appointment.ID,
		"status":         appointment.Status,
	})

	if err := r.db.Save(appointment).Error; err != nil {
		logger.Error("Failed to update appointment in database", err, map[string]interface{}{
			"appointment_id": appointment.ID,
		})
		return err
	}
	return nil
}

func (r *appointmentRepository) UpdateStatus(id uint, status model.AppointmentStatus) error {
	logger.Debug("Updating appointment status in database", map[string]interface{}{
		"appointment_id": id,
		"status":         status,
	})

	if err := r.db.Model(&model.Appointment{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update appointment status in database", err, map[string]interface{}{
			"appointment_id": id,
			"status":         status,
		})
		return err
	}
	return nil
}

func (r *appointmentRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Appointment{}, id).Error; err != nil {
		logger.Error("Failed to delete appointment in database", err, map[string]interface{}{
			"appointment_id": id,
		})
		return err
	}
	return nil
}
