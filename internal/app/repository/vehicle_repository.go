package repository

import (
	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type VehicleRepository interface {
	Create(vehicle *model.Vehicle) error
	FindByID(id uint) (*model.Vehicle, error)
	FindByRegistration(registration string) (*model.Vehicle, error)
	FindByCustomerID(customerID uint) ([]model.Vehicle, error)
	FindAll(search string) ([]model.Vehicle, error)
	Update(vehicle *model.Vehicle) error
	Delete(id uint) error
}

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(vehicle *model.Vehicle) error {
	logger.Debug("Creating vehicle in database", map[string]interface{}{
		"registration_number": vehicle.RegistrationNumber,
		"customer_id":         vehicle.CustomerID,
	})

	if err := r.db.Create(vehicle).Error; err != nil {
		logger.Error("Failed to create vehicle in database", err, map[string]interface{}{
			"registration_number": vehicle.RegistrationNumber,
		})
		return err
	}

	logger.Debug("Vehicle created in database", map[string]interface{}{
		"vehicle_id":          vehicle.ID,
		"registration_number": vehicle.RegistrationNumber,
	})
	return nil
}

func (r *vehicleRepository) FindByID(id uint) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.Preload("Customer").First(&vehicle, id).Error; err != nil {
		logger.Error("Failed to find vehicle by ID in database", err, map[string]interface{}{
			"vehicle_id": id,
		})
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) FindByRegistration(registration string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.Preload("Customer").
		Where("registration_number = ?", registration).
		First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) FindByCustomerID(customerID uint) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&vehicles).Error; err != nil {
		logger.Error("Failed to find vehicles by customer ID in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) FindAll(search string) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	query := r.db.Preload("Customer").Order("created_at DESC")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"registration_number LIKE ? OR vin LIKE ? OR make LIKE ? OR model LIKE ?",
			like, like, like, like,
		)
	}
	if err := query.Find(&vehicles).Error; err != nil {
		logger.Error("Failed to find vehicles in database", err, map[string]interface{}{
			"search": search,
		})
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) Update(vehicle *model.Vehicle) error {
	logger.Debug("Updating vehicle in database", map[string]interface{}{
		"vehicle_id": vehicle.ID,
	})

	if err := r.db.Save(vehicle).Error; err != nil {
		logger.Error("Failed to update vehicle in database", err, map[string]interface{}{
			"vehicle_id": vehicle.ID,
		})
		return err
	}
	return nil
}

func (r *vehicleRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Vehicle{}, id).Error; err != nil {
		logger.Error("Failed to delete vehicle in database", err, map[string]interface{}{
			"vehicle_id": id,
		})
		return err
	}
	return nil
}
