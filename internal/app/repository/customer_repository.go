package repository

import (
	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindByID(id uint) (*model.Customer, error)
	FindByNumber(number string) (*model.Customer, error)
	FindAll(search string, customerType string) ([]model.Customer, error)
	Update(customer *model.Customer) error
	Delete(id uint) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create inserts the customer and assigns its customer number from the
// database identity inside the same transaction. The number is never
// precomputed from a table scan, so concurrent creates cannot collide.
func (r *customerRepository) Create(customer *model.Customer) error {
	logger.Debug("Creating customer in database", map[string]interface{}{
		"name":          customer.Name,
		"customer_type": customer.CustomerType,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(customer).Error; err != nil {
			return err
		}
		customer.CustomerNumber = model.FormatEntityNumber(model.CustomerNumberPrefix, customer.ID)
		return tx.Model(customer).Update("customer_number", customer.CustomerNumber).Error
	})
	if err != nil {
		logger.Error("Failed to create customer in database", err, map[string]interface{}{
			"name": customer.Name,
		})
		return err
	}

	logger.Debug("Customer created in database", map[string]interface{}{
		"customer_id":     customer.ID,
		"customer_number": customer.CustomerNumber,
	})
	return nil
}

func (r *customerRepository) FindByID(id uint) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.Preload("Vehicles").First(&customer, id).Error; err != nil {
		logger.Error("Failed to find customer by ID in database", err, map[string]interface{}{
			"customer_id": id,
		})
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindByNumber(number string) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.Preload("Vehicles").
		Where("customer_number = ?", number).
		First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindAll(search string, customerType string) ([]model.Customer, error) {
	logger.Debug("Finding customers in database", map[string]interface{}{
		"search":        search,
		"customer_type": customerType,
	})

	var customers []model.Customer
	query := r.db.Order("created_at DESC")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"name LIKE ? OR email LIKE ? OR phone LIKE ? OR customer_number LIKE ?",
			like, like, like, like,
		)
	}
	if customerType != "" {
		query = query.Where("customer_type = ?", customerType)
	}

	if err := query.Find(&customers).Error; err != nil {
		logger.Error("Failed to find customers in database", err, map[string]interface{}{
			"search": search,
		})
		return nil, err
	}

	logger.Debug("Customers found in database", map[string]interface{}{
		"count": len(customers),
	})
	return customers, nil
}

func (r *customerRepository) Update(customer *model.Customer) error {
	logger.Debug("Updating customer in database", map[string]interface{}{
		"customer_id": customer.ID,
	})

	if err := r.db.Save(customer).Error; err != nil {
		logger.Error("Failed to update customer in database", err, map[string]interface{}{
			"customer_id": customer.ID,
		})
		return err
	}
	return nil
}

func (r *customerRepository) Delete(id uint) error {
	logger.Debug("Deleting customer in database", map[string]interface{}{
		"customer_id": id,
	})

	if err := r.db.Delete(&model.Customer{}, id).Error; err != nil {
		logger.Error("Failed to delete customer in database", err, map[string]interface{}{
			"customer_id": id,
		})
		return err
	}
	return nil
}
