package service

import (
	"errors"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/internal/storage"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrPartNotFound      = errors.New("part not found")
	ErrSupplierNotFound  = errors.New("supplier not found")
	ErrInsufficientStock = errors.New("insufficient stock for adjustment")
	ErrInvalidUpload     = errors.New("invalid upload request")
)

const partImageMaxSize = 5 * 1024 * 1024

var partImageContentTypes = []string{"image/jpeg", "image/png", "image/webp"}

type InventoryService interface {
	CreatePart(part *model.Part) error
	GetPartByID(id uint) (*model.Part, error)
	GetPartByNumber(partNumber string) (*model.Part, error)
	ListParts(search string, categoryID, supplierID uint, lowStockOnly bool) ([]model.Part, error)
	UpdatePart(part *model.Part) error
	AdjustStock(id uint, delta int) (*model.Part, error)
	DeletePart(id uint) error
	GenerateImageUploadURL(filename, contentType string, size int64) (*storage.PresignedURLResponse, error)

	CreateSupplier(supplier *model.Supplier) error
	GetSupplierByID(id uint) (*model.Supplier, error)
	ListSuppliers(search string, activeOnly bool) ([]model.Supplier, error)
	UpdateSupplier(supplier *model.Supplier) error
	DeleteSupplier(id uint) error
}

type inventoryService struct {
	partRepo     repository.PartRepository
	supplierRepo repository.SupplierRepository
	s3           *storage.S3Storage
}

func NewInventoryService(
	partRepo repository.PartRepository,
	supplierRepo repository.SupplierRepository,
	s3 *storage.S3Storage,
) InventoryService {
	return &inventoryService{
		partRepo:     partRepo,
		supplierRepo: supplierRepo,
		s3:           s3,
	}
}

func (s *inventoryService) CreatePart(part *model.Part) error {
	logger.Info("Creating part", map[string]interface{}{
		"part_number": part.PartNumber,
		"name":        part.Name,
	})

	if part.SupplierID != nil {
		if _, err := s.supplierRepo.FindByID(*part.SupplierID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSupplierNotFound
			}
			return err
		}
	}

	if err := s.partRepo.Create(part); err != nil {
		logger.Error("Failed to create part", err, map[string]interface{}{
			"part_number": part.PartNumber,
		})
		return err
	}

	logger.Info("Part created successfully", map[string]interface{}{
		"part_id":     part.ID,
		"part_number": part.PartNumber,
	})
	return nil
}

func (s *inventoryService) GetPartByID(id uint) (*model.Part, error) {
	part, err := s.partRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}
	return part, nil
}

func (s *inventoryService) GetPartByNumber(partNumber string) (*model.Part, error) {
	part, err := s.partRepo.FindByPartNumber(partNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}
	return part, nil
}

func (s *inventoryService) ListParts(search string, categoryID, supplierID uint, lowStockOnly bool) ([]model.Part, error) {
	return s.partRepo.FindAll(search, categoryID, supplierID, lowStockOnly)
}

func (s *inventoryService) UpdatePart(part *model.Part) error {
	existing, err := s.partRepo.FindByID(part.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPartNotFound
		}
		return err
	}

	if part.SupplierID != nil {
		if _, err := s.supplierRepo.FindByID(*part.SupplierID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSupplierNotFound
			}
			return err
		}
	}

	part.CreatedAt = existing.CreatedAt

	if err := s.partRepo.Update(part); err != nil {
		logger.Error("Failed to update part", err, map[string]interface{}{
			"part_id": part.ID,
		})
		return err
	}

	logger.Info("Part updated successfully", map[string]interface{}{
		"part_id": part.ID,
	})
	return nil
}

// AdjustStock applies a signed delta. Negative stock is rejected; receiving
// and consumption both funnel through here.
func (s *inventoryService) AdjustStock(id uint, delta int) (*model.Part, error) {
	part, err := s.partRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}

	if part.QuantityOnHand+delta < 0 {
		logger.Warn("Stock adjustment rejected: would go negative", map[string]interface{}{
			"part_id":          id,
			"quantity_on_hand": part.QuantityOnHand,
			"delta":            delta,
		})
		return nil, ErrInsufficientStock
	}

	updated, err := s.partRepo.AdjustStock(id, delta)
	if err != nil {
		return nil, err
	}

	if updated.IsLowStock() {
		logger.Warn("Part stock at or below minimum", map[string]interface{}{
			"part_id":          updated.ID,
			"part_number":      updated.PartNumber,
			"quantity_on_hand": updated.QuantityOnHand,
			"minimum_stock":    updated.MinimumStock,
		})
	}

	return updated, nil
}

func (s *inventoryService) DeletePart(id uint) error {
	if _, err := s.partRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPartNotFound
		}
		return err
	}

	if err := s.partRepo.Delete(id); err != nil {
		logger.Error("Failed to delete part", err, map[string]interface{}{
			"part_id": id,
		})
		return err
	}

	logger.Info("Part deleted", map[string]interface{}{
		"part_id": id,
	})
	return nil
}

// GenerateImageUploadURL returns a presigned PUT URL for a part image. The
// client uploads directly and stores the returned file URL on the part.
func (s *inventoryService) GenerateImageUploadURL(filename, contentType string, size int64) (*storage.PresignedURLResponse, error) {
	if filename == "" || contentType == "" {
		return nil, ErrInvalidUpload
	}
	if err := s.s3.ValidateContentType(contentType, partImageContentTypes); err != nil {
		logger.Warn("Part image upload rejected: content type", map[string]interface{}{
			"content_type": contentType,
		})
		return nil, ErrInvalidUpload
	}
	if size > 0 {
		if err := s.s3.ValidateFileSize(size, partImageMaxSize); err != nil {
			logger.Warn("Part image upload rejected: size", map[string]interface{}{
				"size": size,
			})
			return nil, ErrInvalidUpload
		}
	}

	resp, err := s.s3.GeneratePresignedURLWithFolder(filename, contentType, "parts")
	if err != nil {
		logger.Error("Failed to generate part image upload URL", err, map[string]interface{}{
			"filename": filename,
		})
		return nil, err
	}

	logger.Info("Part image upload URL generated", map[string]interface{}{
		"key": resp.Key,
	})
	return resp, nil
}

func (s *inventoryService) CreateSupplier(supplier *model.Supplier) error {
	logger.Info("Creating supplier", map[string]interface{}{
		"name": supplier.Name,
	})

	supplier.SupplierNumber = ""

	if err := s.supplierRepo.Create(supplier); err != nil {
		logger.Error("Failed to create supplier", err, map[string]interface{}{
			"name": supplier.Name,
		})
		return err
	}

	logger.Info("Supplier created successfully", map[string]interface{}{
		"supplier_id":     supplier.ID,
		"supplier_number": supplier.SupplierNumber,
	})
	return nil
}

func (s *inventoryService) GetSupplierByID(id uint) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	return supplier, nil
}

func (s *inventoryService) ListSuppliers(search string, activeOnly bool) ([]model.Supplier, error) {
	return s.supplierRepo.FindAll(search, activeOnly)
}

func (s *inventoryService) UpdateSupplier(supplier *model.Supplier) error {
	existing, err := s.supplierRepo.FindByID(supplier.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSupplierNotFound
		}
		return err
	}

	supplier.SupplierNumber = existing.SupplierNumber
	supplier.CreatedAt = existing.CreatedAt

	if err := s.supplierRepo.Update(supplier); err != nil {
		logger.Error("Failed to update supplier", err, map[string]interface{}{
			"supplier_id": supplier.ID,
		})
		return err
	}

	logger.Info("Supplier updated successfully", map[string]interface{}{
		"supplier_id": supplier.ID,
	})
	return nil
}

func (s *inventoryService) DeleteSupplier(id uint) error {
	if _, err := s.supplierRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSupplierNotFound
		}
		return err
	}

	if err := s.supplierRepo.Delete(id); err != nil {
		logger.Error("Failed to delete supplier", err, map[string]interface{}{
			"supplier_id": id,
		})
		return err
	}

	logger.Info("Supplier deleted", map[string]interface{}{
		"supplier_id": id,
	})
	return nil
}
