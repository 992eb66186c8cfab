package service

import (
	"errors"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrCustomerNotFound = errors.New("customer not found")

type CustomerService interface {
	CreateCustomer(customer *model.Customer) error
	GetCustomerByID(id uint) (*model.Customer, error)
	GetCustomerByNumber(number string) (*model.Customer, error)
	ListCustomers(search, customerType string) ([]model.Customer, error)
	UpdateCustomer(customer *model.Customer) error
	DeleteCustomer(id uint) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

// CreateCustomer stores the customer. The customer number is assigned by the
// repository from the new row's identity, so callers must not set it.
func (s *customerService) CreateCustomer(customer *model.Customer) error {
	logger.Info("Creating customer", map[string]interface{}{
		"name":          customer.Name,
		"customer_type": customer.CustomerType,
	})

	customer.CustomerNumber = ""
	if customer.CustomerType == "" {
		customer.CustomerType = model.CustomerTypeIndividual
	}

	if err := s.customerRepo.Create(customer); err != nil {
		logger.Error("Failed to create customer", err, map[string]interface{}{
			"name": customer.Name,
		})
		return err
	}

	logger.Info("Customer created successfully", map[string]interface{}{
		"customer_id":     customer.ID,
		"customer_number": customer.CustomerNumber,
	})
	return nil
}

func (s *customerService) GetCustomerByID(id uint) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) GetCustomerByNumber(number string) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByNumber(number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) ListCustomers(search, customerType string) ([]model.Customer, error) {
	return s.customerRepo.FindAll(search, customerType)
}

func (s *customerService) UpdateCustomer(customer *model.Customer) error {
	existing, err := s.customerRepo.FindByID(customer.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}

	// The assigned number is immutable
	customer.CustomerNumber = existing.CustomerNumber
	customer.CreatedAt = existing.CreatedAt

	if err := s.customerRepo.Update(customer); err != nil {
		logger.Error("Failed to update customer", err, map[string]interface{}{
			"customer_id": customer.ID,
		})
		return err
	}

	logger.Info("Customer updated successfully", map[string]interface{}{
		"customer_id": customer.ID,
	})
	return nil
}

func (s *customerService) DeleteCustomer(id uint) error {
	if _, err := s.customerRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}

	if err := s.customerRepo.Delete(id); err != nil {
		logger.Error("Failed to delete customer", err, map[string]interface{}{
			"customer_id": id,
		})
		return err
	}

	logger.Info("Customer deleted", map[string]interface{}{
		"customer_id": id,
	})
	return nil
}
