package service

import (
	"errors"
	"time"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEstimateNotFound       = errors.New("estimate not found")
	ErrInvalidEstimateState   = errors.New("invalid estimate status")
	ErrEstimateNotConvertible = errors.New("estimate cannot be converted to a work order")
)

type EstimateService interface {
	CreateEstimate(estimate *model.Estimate) error
	GetEstimateByID(id uint) (*model.Estimate, error)
	ListEstimates(status string, customerID uint) ([]model.Estimate, error)
	UpdateEstimate(estimate *model.Estimate) error
	UpdateStatus(id uint, status model.EstimateStatus) error
	ConvertToWorkOrder(id uint) (*model.WorkOrder, error)
	ExpireStaleEstimates() (int, error)
	DeleteEstimate(id uint) error
}

type estimateService struct {
	estimateRepo  repository.EstimateRepository
	workOrderRepo repository.WorkOrderRepository
	customerRepo  repository.CustomerRepository
	vehicleRepo   repository.VehicleRepository
}

func NewEstimateService(
	estimateRepo repository.EstimateRepository,
	workOrderRepo repository.WorkOrderRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
) EstimateService {
	return &estimateService{
		estimateRepo:  estimateRepo,
		workOrderRepo: workOrderRepo,
		customerRepo:  customerRepo,
		vehicleRepo:   vehicleRepo,
	}
}

func validEstimateStatus(status model.EstimateStatus) bool {
	for _, s := range model.EstimateStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// recalculateTotals derives per-line and document totals from the items,
// ignoring whatever the caller supplied for those fields.
func (s *estimateService) recalculateTotals(estimate *model.Estimate) {
	lineTotals := make([]decimal.Decimal, 0, len(estimate.Items))
	for i := range estimate.Items {
		estimate.Items[i].Total = model.LineTotal(estimate.Items[i].Quantity, estimate.Items[i].UnitPrice)
		lineTotals = append(lineTotals, estimate.Items[i].Total)
	}
	estimate.SubTotal = model.SumLineTotals(lineTotals)
	estimate.Total = model.DocumentTotal(estimate.SubTotal, estimate.Discount, estimate.Tax)
}

func (s *estimateService) CreateEstimate(estimate *model.Estimate) error {
	logger.Info("Creating estimate", map[string]interface{}{
		"customer_id": estimate.CustomerID,
		"vehicle_id":  estimate.VehicleID,
		"items":       len(estimate.Items),
	})

	if _, err := s.customerRepo.FindByID(estimate.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	if _, err := s.vehicleRepo.FindByID(estimate.VehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}

	estimate.EstimateNumber = ""
	if estimate.Status == "" {
		estimate.Status = model.EstimateDraft
	}
	if !validEstimateStatus(estimate.Status) {
		return ErrInvalidEstimateState
	}
	s.recalculateTotals(estimate)

	if err := s.estimateRepo.Create(estimate); err != nil {
		logger.Error("Failed to create estimate", err, map[string]interface{}{
			"customer_id": estimate.CustomerID,
		})
		return err
	}

	logger.Info("Estimate created successfully", map[string]interface{}{
		"estimate_id":     estimate.ID,
		"estimate_number": estimate.EstimateNumber,
		"total":           estimate.Total,
	})
	return nil
}

func (s *estimateService) GetEstimateByID(id uint) (*model.Estimate, error) {
	estimate, err := s.estimateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEstimateNotFound
		}
		return nil, err
	}
	return estimate, nil
}

func (s *estimateService) ListEstimates(status string, customerID uint) ([]model.Estimate, error) {
	if status != "" && !validEstimateStatus(model.EstimateStatus(status)) {
		return nil, ErrInvalidEstimateState
	}
	return s.estimateRepo.FindAll(status, customerID)
}

func (s *estimateService) UpdateEstimate(estimate *model.Estimate) error {
	existing, err := s.estimateRepo.FindByID(estimate.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEstimateNotFound
		}
		return err
	}

	if !validEstimateStatus(estimate.Status) {
		return ErrInvalidEstimateState
	}

	estimate.EstimateNumber = existing.EstimateNumber
	estimate.CreatedAt = existing.CreatedAt
	s.recalculateTotals(estimate)

	if err := s.estimateRepo.ReplaceItems(estimate.ID, estimate.Items); err != nil {
		logger.Error("Failed to replace estimate items", err, map[string]interface{}{
			"estimate_id": estimate.ID,
		})
		return err
	}

	// Save the header without re-inserting item associations
	items := estimate.Items
	estimate.Items = nil
	err = s.estimateRepo.Update(estimate)
	estimate.Items = items
	if err != nil {
		logger.Error("Failed to update estimate", err, map[string]interface{}{
			"estimate_id": estimate.ID,
		})
		return err
	}

	logger.Info("Estimate updated successfully", map[string]interface{}{
		"estimate_id": estimate.ID,
		"total":       estimate.Total,
	})
	return nil
}

// UpdateStatus writes the new status without constraining the transition.
func (s *estimateService) UpdateStatus(id uint, status model.EstimateStatus) error {
	if !validEstimateStatus(status) {
		return ErrInvalidEstimateState
	}

	if _, err := s.estimateRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEstimateNotFound
		}
		return err
	}

	if err := s.estimateRepo.UpdateStatus(id, status); err != nil {
		return err
	}

	logger.Info("Estimate status updated", map[string]interface{}{
		"estimate_id": id,
		"status":      status,
	})
	return nil
}

// ConvertToWorkOrder creates a work order carrying the estimate's line items
// and marks the estimate converted. An estimate converts exactly once;
// sublet lines are carried over as labor since work orders track only labor
// and parts.
func (s *estimateService) ConvertToWorkOrder(id uint) (*model.WorkOrder, error) {
	estimate, err := s.estimateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEstimateNotFound
		}
		return nil, err
	}

	if estimate.Status == model.EstimateConverted {
		logger.Warn("Estimate already converted", map[string]interface{}{
			"estimate_id": id,
		})
		return nil, ErrEstimateNotConvertible
	}

	items := make([]model.WorkOrderItem, 0, len(estimate.Items))
	for _, item := range estimate.Items {
		itemType := item.ItemType
		if itemType == model.ItemTypeSublet {
			itemType = model.ItemTypeLabor
		}
		items = append(items, model.WorkOrderItem{
			ItemType:    itemType,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}

	workOrder := &model.WorkOrder{
		EstimateID:        &estimate.ID,
		CustomerID:        estimate.CustomerID,
		VehicleID:         estimate.VehicleID,
		DateOpened:        time.Now(),
		Priority:          model.PriorityNormal,
		Status:            model.WorkOrderOpen,
		CustomerComplaint: estimate.Notes,
		Items:             items,
	}

	if err := s.workOrderRepo.Create(workOrder); err != nil {
		logger.Error("Failed to create work order from estimate", err, map[string]interface{}{
			"estimate_id": id,
		})
		return nil, err
	}

	if err := s.estimateRepo.UpdateStatus(id, model.EstimateConverted); err != nil {
		logger.Error("Failed to mark estimate converted", err, map[string]interface{}{
			"estimate_id":   id,
			"work_order_id": workOrder.ID,
		})
		return nil, err
	}

	logger.Info("Estimate converted to work order", map[string]interface{}{
		"estimate_id":       id,
		"work_order_id":     workOrder.ID,
		"work_order_number": workOrder.WorkOrderNumber,
	})
	return workOrder, nil
}

// ExpireStaleEstimates marks draft and sent estimates past their validity
// date as expired. Returns the number of estimates touched.
func (s *estimateService) ExpireStaleEstimates() (int, error) {
	candidates, err := s.estimateRepo.FindExpiredCandidates()
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, estimate := range candidates {
		if err := s.estimateRepo.UpdateStatus(estimate.ID, model.EstimateExpired); err != nil {
			logger.Error("Failed to expire estimate", err, map[string]interface{}{
				"estimate_id": estimate.ID,
			})
			return expired, err
		}
		expired++
	}

	if expired > 0 {
		logger.Info("Stale estimates expired", map[string]interface{}{
			"count": expired,
		})
	}
	return expired, nil
}

func (s *estimateService) DeleteEstimate(id uint) error {
	if _, err := s.estimateRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEstimateNotFound
		}
		return err
	}

	if err := s.estimateRepo.Delete(id); err != nil {
		logger.Error("Failed to delete estimate", err, map[string]interface{}{
			"estimate_id": id,
		})
		return err
	}

	logger.Info("Estimate deleted", map[string]interface{}{
		"estimate_id": id,
	})
	return nil
}
