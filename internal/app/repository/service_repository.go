package repository

import (
	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(service *model.Service) error
	FindByID(id uint) (*model.Service, error)
	FindByCode(code string) (*model.Service, error)
	FindAll(search string, categoryID uint, activeOnly bool) ([]model.Service, error)
	Update(service *model.Service) error
	Delete(id uint) error
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(service *model.Service) error {
	logger.Debug("Creating service in database", map[string]interface{}{
		"service_code": service.ServiceCode,
		"name":         service.Name,
	})

	if err := r.db.Create(service).Error; err != nil {
		logger.Error("Failed to create service in database", err, map[string]interface{}{
			"service_code": service.ServiceCode,
		})
		return err
	}
	return nil
}

func (r *serviceRepository) FindByID(id uint) (*model.Service, error) {
	var service model.Service
	if err := r.db.Preload("Category").First(&service, id).Error; err != nil {
		logger.Error("Failed to find service by ID in database", err, map[string]interface{}{
			"service_id": id,
		})
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) FindByCode(code string) (*model.Service, error) {
	var service model.Service
	if err := r.db.Preload("Category").
		Where("service_code = ?", code).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) FindAll(search string, categoryID uint, activeOnly bool) ([]model.Service, error) {
	var services []model.Service
	query := r.db.Preload("Category").Order("name ASC")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("service_code LIKE ? OR name LIKE ?", like, like)
	}
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Find(&services).Error; err != nil {
		logger.Error("Failed to find services in database", err, map[string]interface{}{
			"search": search,
		})
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) Update(service *model.Service) error {
	if err := r.db.Save(service).Error; err != nil {
		logger.Error("Failed to update service in database", err, map[string]interface{}{
			"service_id": service.ID,
		})
		return err
	}
	return nil
}

func (r *serviceRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Service{}, id).Error; err != nil {
		logger.Error("Failed to delete service in database", err, map[string]interface{}{
			"service_id": id,
		})
		return err
	}
	return nil
}
