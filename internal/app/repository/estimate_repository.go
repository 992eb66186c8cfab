package repository

import (
	"time"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type EstimateRepository interface {
	Create(estimate *model.Estimate) error
	FindByID(id uint) (*model.Estimate, error)
	FindAll(status string, customerID uint) ([]model.Estimate, error)
	FindExpiredCandidates() ([]model.Estimate, error)
	Update(estimate *model.Estimate) error
	UpdateStatus(id uint, status model.EstimateStatus) error
	ReplaceItems(estimateID uint, items []model.EstimateItem) error
	Delete(id uint) error
}

type estimateRepository struct {
	db *gorm.DB
}

func NewEstimateRepository(db *gorm.DB) EstimateRepository {
	return &estimateRepository{db: db}
}

func (r *estimateRepository) preloadEstimate() *gorm.DB {
	return r.db.Preload("Customer").Preload("Vehicle").Preload("Items")
}

// Create inserts the estimate with its items and derives the estimate number
// from the new row's identity inside the same transaction.
func (r *estimateRepository) Create(estimate *model.Estimate) error {
	logger.Debug("Creating estimate in database", map[string]interface{}{
		"customer_id": estimate.CustomerID,
		"vehicle_id":  estimate.VehicleID,
		"items":       len(estimate.Items),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(estimate).Error; err != nil {
			return err
		}
		estimate.EstimateNumber = model.FormatEntityNumber(model.EstimateNumberPrefix, estimate.ID)
		return tx.Model(estimate).Update("estimate_number", estimate.EstimateNumber).Error
	})
	if err != nil {
		logger.Error("Failed to create estimate in database", err, map[string]interface{}{
			"customer_id": estimate.CustomerID,
		})
		return err
	}

	logger.Debug("Estimate created in database", map[string]interface{}{
		"estimate_id":     estimate.ID,
		"estimate_number": estimate.EstimateNumber,
		"total":           estimate.Total,
	})
	return nil
}

func (r *estimateRepository) FindByID(id uint) (*model.Estimate, error) {
	var estimate model.Estimate
	if err := r.preloadEstimate().First(&estimate, id).Error; err != nil {
		logger.Error("Failed to find estimate by ID in database", err, map[string]interface{}{
			"estimate_id": id,
		})
		return nil, err
	}
	return &estimate, nil
}

func (r *estimateRepository) FindAll(status string, customerID uint) ([]model.Estimate, error) {
	logger.Debug("Finding estimates in database", map[string]interface{}{
		"status":      status,
		"customer_id": customerID,
	})

	var estimates []model.Estimate
	query := r.preloadEstimate().Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID != 0 {
		query = query.Where("customer_id = ?", customerID)
	}

	if err := query.Find(&estimates).Error; err != nil {
		logger.Error("Failed to find estimates in database", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}

	logger.Debug("Estimates found in database", map[string]interface{}{
		"count": len(estimates),
	})
	return estimates, nil
}

// FindExpiredCandidates returns estimates whose validity date has passed but
// were never resolved. Used by the daily billing sweep.
func (r *estimateRepository) FindExpiredCandidates() ([]model.Estimate, error) {
	var estimates []model.Estimate
	if err := r.db.
		Where("valid_until < ? AND status IN ?",
			time.Now(), []model.EstimateStatus{model.EstimateDraft, model.EstimateSent}).
		Find(&estimates).Error; err != nil {
		logger.Error("Failed to find expired estimate candidates in database", err)
		return nil, err
	}
	return estimates, nil
}

func (r *estimateRepository) Update(estimate *model.Estimate) error {
	logger.Debug("Updating estimate in database", map[string]interface{}{
		"estimate_id": estimate.ID,
		"status":      estimate.Status,
	})

	if err := r.db.Save(estimate).Error; err != nil {
		logger.Error("Failed to update estimate in database", err, map[string]interface{}{
			"estimate_id": estimate.ID,
		})
		return err
	}
	return nil
}

func (r *estimateRepository) UpdateStatus(id uint, status model.EstimateStatus) error {
	logger.Debug("Updating estimate status in database", map[string]interface{}{
		"estimate_id": id,
		"status":      status,
	})

	if err := r.db.Model(&model.Estimate{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update estimate status in database", err, map[string]interface{}{
			"estimate_id": id,
			"status":      status,
		})
		return err
	}
	return nil
}

// ReplaceItems swaps the estimate's line items for a new set in one
// transaction. Old rows are hard-deleted; they carry no history of their own.
func (r *estimateRepository) ReplaceItems(estimateID uint, items []model.EstimateItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("estimate_id = ?", estimateID).
			Delete(&model.EstimateItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].EstimateID = estimateID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// Delete soft-deletes the estimate together with its line items.
func (r *estimateRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("estimate_id = ?", id).Delete(&model.EstimateItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Estimate{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete estimate in database", err, map[string]interface{}{
			"estimate_id": id,
		})
		return err
	}
	return nil
}
