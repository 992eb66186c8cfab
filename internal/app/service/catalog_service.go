package service

import (
	"errors"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// CatalogService manages the shop's sellable services and the category tree
// shared by services and parts.
type CatalogService interface {
	CreateService(service *model.Service) error
	GetServiceByID(id uint) (*model.Service, error)
	GetServiceByCode(code string) (*model.Service, error)
	ListServices(search string, categoryID uint, activeOnly bool) ([]model.Service, error)
	UpdateService(service *model.Service) error
	DeleteService(id uint) error

	CreateCategory(category *model.Category) error
	GetCategoryByID(id uint) (*model.Category, error)
	ListCategories(categoryType string) ([]model.Category, error)
	UpdateCategory(category *model.Category) error
	DeleteCategory(id uint) error
}

type catalogService struct {
	serviceRepo  repository.ServiceRepository
	categoryRepo repository.CategoryRepository
}

func NewCatalogService(
	serviceRepo repository.ServiceRepository,
	categoryRepo repository.CategoryRepository,
) CatalogService {
	return &catalogService{
		serviceRepo:  serviceRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *catalogService) CreateService(service *model.Service) error {
	logger.Info("Creating service", map[string]interface{}{
		"service_code": service.ServiceCode,
		"name":         service.Name,
	})

	if service.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*service.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
	}

	if err := s.serviceRepo.Create(service); err != nil {
		logger.Error("Failed to create service", err, map[string]interface{}{
			"service_code": service.ServiceCode,
		})
		return err
	}

	logger.Info("Service created successfully", map[string]interface{}{
		"service_id":   service.ID,
		"service_code": service.ServiceCode,
	})
	return nil
}

func (s *catalogService) GetServiceByID(id uint) (*model.Service, error) {
	service, err := s.serviceRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return service, nil
}

func (s *catalogService) GetServiceByCode(code string) (*model.Service, error) {
	service, err := s.serviceRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return service, nil
}

func (s *catalogService) ListServices(search string, categoryID uint, activeOnly bool) ([]model.Service, error) {
	return s.serviceRepo.FindAll(search, categoryID, activeOnly)
}

func (s *catalogService) UpdateService(service *model.Service) error {
	existing, err := s.serviceRepo.FindByID(service.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		return err
	}

	if service.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*service.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
	}

	service.CreatedAt = existing.CreatedAt

	if err := s.serviceRepo.Update(service); err != nil {
		logger.Error("Failed to update service", err, map[string]interface{}{
			"service_id": service.ID,
		})
		return err
	}
	return nil
}

func (s *catalogService) DeleteService(id uint) error {
	if _, err := s.serviceRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	return s.serviceRepo.Delete(id)
}

func (s *catalogService) CreateCategory(category *model.Category) error {
	if category.ParentCategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*category.ParentCategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
	}

	if err := s.categoryRepo.Create(category); err != nil {
		logger.Error("Failed to create category", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}

	logger.Info("Category created successfully", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return nil
}

func (s *catalogService) GetCategoryByID(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) ListCategories(categoryType string) ([]model.Category, error) {
	return s.categoryRepo.FindAll(categoryType)
}

func (s *catalogService) UpdateCategory(category *model.Category) error {
	existing, err := s.categoryRepo.FindByID(category.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	category.CreatedAt = existing.CreatedAt

	if err := s.categoryRepo.Update(category); err != nil {
		logger.Error("Failed to update category", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

func (s *catalogService) DeleteCategory(id uint) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return s.categoryRepo.Delete(id)
}
