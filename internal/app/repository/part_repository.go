package repository

import (
	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type PartRepository interface {
	Create(part *model.Part) error
	FindByID(id uint) (*model.Part, error)
	FindByPartNumber(partNumber string) (*model.Part, error)
	FindAll(search string, categoryID, supplierID uint, lowStockOnly bool) ([]model.Part, error)
	Update(part *model.Part) error
	AdjustStock(id uint, delta int) (*model.Part, error)
	Delete(id uint) error
	BulkCreate(parts []model.Part, batchSize int) error
}

type partRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) PartRepository {
	return &partRepository{db: db}
}

func (r *partRepository) Create(part *model.Part) error {
	logger.Debug("Creating part in database", map[string]interface{}{
		"part_number": part.PartNumber,
		"name":        part.Name,
	})

	if err := r.db.Create(part).Error; err != nil {
		logger.Error("Failed to create part in database", err, map[string]interface{}{
			"part_number": part.PartNumber,
		})
		return err
	}

	logger.Debug("Part created in database", map[string]interface{}{
		"part_id":     part.ID,
		"part_number": part.PartNumber,
	})
	return nil
}

func (r *partRepository) FindByID(id uint) (*model.Part, error) {
	var part model.Part
	if err := r.db.Preload("Category").Preload("Supplier").First(&part, id).Error; err != nil {
		logger.Error("Failed to find part by ID in database", err, map[string]interface{}{
			"part_id": id,
		})
		return nil, err
	}
	return &part, nil
}

func (r *partRepository) FindByPartNumber(partNumber string) (*model.Part, error) {
	var part model.Part
	if err := r.db.Preload("Category").Preload("Supplier").
		Where("part_number = ?", partNumber).
		First(&part).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *partRepository) FindAll(search string, categoryID, supplierID uint, lowStockOnly bool) ([]model.Part, error) {
	logger.Debug("Finding parts in database", map[string]interface{}{
		"search":      search,
		"category_id": categoryID,
		"supplier_id": supplierID,
		"low_stock":   lowStockOnly,
	})

	var parts []model.Part
	query := r.db.Preload("Category").Preload("Supplier").Order("name ASC")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("part_number LIKE ? OR name LIKE ? OR manufacturer LIKE ?", like, like, like)
	}
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if supplierID != 0 {
		query = query.Where("supplier_id = ?", supplierID)
	}
	if lowStockOnly {
		query = query.Where("quantity_on_hand <= minimum_stock")
	}

	if err := query.Find(&parts).Error; err != nil {
		logger.Error("Failed to find parts in database", err, map[string]interface{}{
			"search": search,
		})
		return nil, err
	}

	logger.Debug("Parts found in database", map[string]interface{}{
		"count": len(parts),
	})
	return parts, nil
}

func (r *partRepository) Update(part *model.Part) error {
	logger.Debug("Updating part in database", map[string]interface{}{
		"part_id": part.ID,
	})

	if err := r.db.Save(part).Error; err != nil {
		logger.Error("Failed to update part in database", err, map[string]interface{}{
			"part_id": part.ID,
		})
		return err
	}
	return nil
}

// AdjustStock applies a signed delta to on-hand quantity and returns the
// refreshed row. The update is atomic against concurrent adjustments.
func (r *partRepository) AdjustStock(id uint, delta int) (*model.Part, error) {
	logger.Debug("Adjusting part stock in database", map[string]interface{}{
		"part_id": id,
		"delta":   delta,
	})

	var part model.Part
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Part{}).Where("id = ?", id).
			Update("quantity_on_hand", gorm.Expr("quantity_on_hand + ?", delta)).Error; err != nil {
			return err
		}
		return tx.Preload("Category").Preload("Supplier").First(&part, id).Error
	})
	if err != nil {
		logger.Error("Failed to adjust part stock in database", err, map[string]interface{}{
			"part_id": id,
			"delta":   delta,
		})
		return nil, err
	}

	logger.Debug("Part stock adjusted in database", map[string]interface{}{
		"part_id":          part.ID,
		"quantity_on_hand": part.QuantityOnHand,
	})
	return &part, nil
}

// BulkCreate inserts parts in batches. Used by the inventory seed command.
func (r *partRepository) BulkCreate(parts []model.Part, batchSize int) error {
	if err := r.db.CreateInBatches(parts, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create parts in database", err, map[string]interface{}{
			"count": len(parts),
		})
		return err
	}

	logger.Info("Parts bulk created in database", map[string]interface{}{
		"count": len(parts),
	})
	return nil
}

func (r *partRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Part{}, id).Error; err != nil {
		logger.Error("Failed to delete part in database", err, map[string]interface{}{
			"part_id": id,
		})
		return err
	}
	return nil
}
