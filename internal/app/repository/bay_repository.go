package repository

import (
	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type BayRepository interface {
	Create(bay *model.Bay) error
	FindByID(id uint) (*model.Bay, error)
	FindAll(status string) ([]model.Bay, error)
	Update(bay *model.Bay) error
	UpdateStatus(id uint, status model.BayStatus) error
	Delete(id uint) error
}

type bayRepository struct {
	db *gorm.DB
}

func NewBayRepository(db *gorm.DB) BayRepository {
	return &bayRepository{db: db}
}

func (r *bayRepository) Create(bay *model.Bay) error {
	if err := r.db.Create(bay).Error; err != nil {
		logger.Error("Failed to create bay in database", err, map[string]interface{}{
			"bay_number": bay.BayNumber,
		})
		return err
	}
	return nil
}

func (r *bayRepository) FindByID(id uint) (*model.Bay, error) {
	var bay model.Bay
	if err := r.db.First(&bay, id).Error; err != nil {
		logger.Error("Failed to find bay by ID in database", err, map[string]interface{}{
			"bay_id": id,
		})
		return nil, err
	}
	return &bay, nil
}

func (r *bayRepository) FindAll(status string) ([]model.Bay, error) {
	var bays []model.Bay
	query := r.db.Order("bay_number ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&bays).Error; err != nil {
		logger.Error("Failed to find bays in database", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}
	return bays, nil
}

func (r *bayRepository) Update(bay *model.Bay) error {
	if err := r.db.Save(bay).Error; err != nil {
		logger.Error("Failed to update bay in database", err, map[string]interface{}{
			"bay_id": bay.ID,
		})
		return err
	}
	return nil
}

func (r *bayRepository) UpdateStatus(id uint, status model.BayStatus) error {
	if err := r.db.Model(&model.Bay{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update bay status in database", err, map[string]interface{}{
			"bay_id": id,
			"status": status,
		})
		return err
	}
	return nil
}

func (r *bayRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Bay{}, id).Error; err != nil {
		logger.Error("Failed to delete bay in database", err, map[string]interface{}{
			"bay_id": id,
		})
		return err
	}
	return nil
}
