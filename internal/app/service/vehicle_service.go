package service

import (
	"errors"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

type VehicleService interface {
	CreateVehicle(vehicle *model.Vehicle) error
	GetVehicleByID(id uint) (*model.Vehicle, error)
	GetVehicleByRegistration(registration string) (*model.Vehicle, error)
	ListVehicles(search string) ([]model.Vehicle, error)
	ListVehiclesByCustomer(customerID uint) ([]model.Vehicle, error)
	UpdateVehicle(vehicle *model.Vehicle) error
	DeleteVehicle(id uint) error
}

type vehicleService struct {
	vehicleRepo  repository.VehicleRepository
	customerRepo repository.CustomerRepository
}

func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	customerRepo repository.CustomerRepository,
) VehicleService {
	return &vehicleService{
		vehicleRepo:  vehicleRepo,
		customerRepo: customerRepo,
	}
}

// CreateVehicle stores a vehicle after confirming its owner exists.
func (s *vehicleService) CreateVehicle(vehicle *model.Vehicle) error {
	logger.Info("Creating vehicle", map[string]interface{}{
		"registration_number": vehicle.RegistrationNumber,
		"customer_id":         vehicle.CustomerID,
	})

	if _, err := s.customerRepo.FindByID(vehicle.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Vehicle creation failed: customer not found", map[string]interface{}{
				"customer_id": vehicle.CustomerID,
			})
			return ErrCustomerNotFound
		}
		return err
	}

	if err := s.vehicleRepo.Create(vehicle); err != nil {
		logger.Error("Failed to create vehicle", err, map[string]interface{}{
			"registration_number": vehicle.RegistrationNumber,
		})
		return err
	}

	logger.Info("Vehicle created successfully", map[string]interface{}{
		"vehicle_id":          vehicle.ID,
		"registration_number": vehicle.RegistrationNumber,
	})
	return nil
}

func (s *vehicleService) GetVehicleByID(id uint) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

func (s *vehicleService) GetVehicleByRegistration(registration string) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByRegistration(registration)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

func (s *vehicleService) ListVehicles(search string) ([]model.Vehicle, error) {
	return s.vehicleRepo.FindAll(search)
}

func (s *vehicleService) ListVehiclesByCustomer(customerID uint) ([]model.Vehicle, error) {
	if _, err := s.customerRepo.FindByID(customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return s.vehicleRepo.FindByCustomerID(customerID)
}

func (s *vehicleService) UpdateVehicle(vehicle *model.Vehicle) error {
	existing, err := s.vehicleRepo.FindByID(vehicle.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}

	if vehicle.CustomerID != existing.CustomerID {
		if _, err := s.customerRepo.FindByID(vehicle.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}
	}

	vehicle.CreatedAt = existing.CreatedAt

	if err := s.vehicleRepo.Update(vehicle); err != nil {
		logger.Error("Failed to update vehicle", err, map[string]interface{}{
			"vehicle_id": vehicle.ID,
		})
		return err
	}

	logger.Info("Vehicle updated successfully", map[string]interface{}{
		"vehicle_id": vehicle.ID,
	})
	return nil
}

func (s *vehicleService) DeleteVehicle(id uint) error {
	if _, err := s.vehicleRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}

	if err := s.vehicleRepo.Delete(id); err != nil {
		logger.Error("Failed to delete vehicle", err, map[string]interface{}{
			"vehicle_id": id,
		})
		return err
	}

	logger.Info("Vehicle deleted", map[string]interface{}{
		"vehicle_id": id,
	})
	return nil
}
