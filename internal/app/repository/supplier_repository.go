package repository

import (
	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(supplier *model.Supplier) error
	FindByID(id uint) (*model.Supplier, error)
	FindAll(search string, activeOnly bool) ([]model.Supplier, error)
	Update(supplier *model.Supplier) error
	Delete(id uint) error
}

type supplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

// Create inserts the supplier and derives its number from the new row's
// identity inside the same transaction.
func (r *supplierRepository) Create(supplier *model.Supplier) error {
	logger.Debug("Creating supplier in database", map[string]interface{}{
		"name": supplier.Name,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(supplier).Error; err != nil {
			return err
		}
		supplier.SupplierNumber = model.FormatEntityNumber(model.SupplierNumberPrefix, supplier.ID)
		return tx.Model(supplier).Update("supplier_number", supplier.SupplierNumber).Error
	})
	if err != nil {
		logger.Error("Failed to create supplier in database", err, map[string]interface{}{
			"name": supplier.Name,
		})
		return err
	}

	logger.Debug("Supplier created in database", map[string]interface{}{
		"supplier_id":     supplier.ID,
		"supplier_number": supplier.SupplierNumber,
	})
	return nil
}

func (r *supplierRepository) FindByID(id uint) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.Preload("Parts").First(&supplier, id).Error; err != nil {
		logger.Error("Failed to find supplier by ID in database", err, map[string]interface{}{
			"supplier_id": id,
		})
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) FindAll(search string, activeOnly bool) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	query := r.db.Order("name ASC")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR supplier_number LIKE ? OR contact_person LIKE ?", like, like, like)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&suppliers).Error; err != nil {
		logger.Error("Failed to find suppliers in database", err, map[string]interface{}{
			"search": search,
		})
		return nil, err
	}
	return suppliers, nil
}

func (r *supplierRepository) Update(supplier *model.Supplier) error {
	if err := r.db.Save(supplier).Error; err != nil {
		logger.Error("Failed to update supplier in database", err, map[string]interface{}{
			"supplier_id": supplier.ID,
		})
		return err
	}
	return nil
}

func (r *supplierRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Supplier{}, id).Error; err != nil {
		logger.Error("Failed to delete supplier in database", err, map[string]interface{}{
			"supplier_id": id,
		})
		return err
	}
	return nil
}
