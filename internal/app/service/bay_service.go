package service

import (
	"errors"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrInvalidBayStatus = errors.New("invalid bay status")

type BayService interface {
	CreateBay(bay *model.Bay) error
	GetBayByID(id uint) (*model.Bay, error)
	ListBays(status string) ([]model.Bay, error)
	UpdateBay(bay *model.Bay) error
	UpdateStatus(id uint, status model.BayStatus) error
	DeleteBay(id uint) error
}

type bayService struct {
	bayRepo repository.BayRepository
}

func NewBayService(bayRepo repository.BayRepository) BayService {
	return &bayService{bayRepo: bayRepo}
}

func validBayStatus(status model.BayStatus) bool {
	for _, s := range model.BayStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s *bayService) CreateBay(bay *model.Bay) error {
	if bay.Status == "" {
		bay.Status = model.BayAvailable
	}
	if !validBayStatus(bay.Status) {
		return ErrInvalidBayStatus
	}

	if err := s.bayRepo.Create(bay); err != nil {
		logger.Error("Failed to create bay", err, map[string]interface{}{
			"bay_number": bay.BayNumber,
		})
		return err
	}

	logger.Info("Bay created successfully", map[string]interface{}{
		"bay_id":     bay.ID,
		"bay_number": bay.BayNumber,
	})
	return nil
}

func (s *bayService) GetBayByID(id uint) (*model.Bay, error) {
	bay, err := s.bayRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBayNotFound
		}
		return nil, err
	}
	return bay, nil
}

func (s *bayService) ListBays(status string) ([]model.Bay, error) {
	if status != "" && !validBayStatus(model.BayStatus(status)) {
		return nil, ErrInvalidBayStatus
	}
	return s.bayRepo.FindAll(status)
}

func (s *bayService) UpdateBay(bay *model.Bay) error {
	existing, err := s.bayRepo.FindByID(bay.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBayNotFound
		}
		return err
	}

	if !validBayStatus(bay.Status) {
		return ErrInvalidBayStatus
	}

	bay.CreatedAt = existing.CreatedAt
	return s.bayRepo.Update(bay)
}

func (s *bayService) UpdateStatus(id uint, status model.BayStatus) error {
	if !validBayStatus(status) {
		return ErrInvalidBayStatus
	}

	if _, err := s.bayRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBayNotFound
		}
		return err
	}

	if err := s.bayRepo.UpdateStatus(id, status); err != nil {
		return err
	}

	logger.Info("Bay status updated", map[string]interface{}{
		"bay_id": id,
		"status": status,
	})
	return nil
}

func (s *bayService) DeleteBay(id uint) error {
	if _, err := s.bayRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBayNotFound
		}
		return err
	}
	return s.bayRepo.Delete(id)
}
