package service

import (
	"errors"
	"time"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrWorkOrderNotFound     = errors.New("work order not found")
	ErrInvalidWorkOrderState = errors.New("invalid work order status")
	ErrTechnicianNotFound    = errors.New("technician not found")
	ErrBayNotFound           = errors.New("bay not found")
)

type WorkOrderService interface {
	CreateWorkOrder(workOrder *model.WorkOrder) error
	GetWorkOrderByID(id uint) (*model.WorkOrder, error)
	ListWorkOrders(status string, customerID, technicianID uint) ([]model.WorkOrder, error)
	UpdateWorkOrder(workOrder *model.WorkOrder) error
	UpdateStatus(id uint, status model.WorkOrderStatus) error
	AssignTechnician(id, technicianID uint) error
	DeleteWorkOrder(id uint) error
}

type workOrderService struct {
	workOrderRepo repository.WorkOrderRepository
	customerRepo  repository.CustomerRepository
	vehicleRepo   repository.VehicleRepository
	userRepo      repository.UserRepository
	bayRepo       repository.BayRepository
}

func NewWorkOrderService(
	workOrderRepo repository.WorkOrderRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	bayRepo repository.BayRepository,
) WorkOrderService {
	return &workOrderService{
		workOrderRepo: workOrderRepo,
		customerRepo:  customerRepo,
		vehicleRepo:   vehicleRepo,
		userRepo:      userRepo,
		bayRepo:       bayRepo,
	}
}

func validWorkOrderStatus(status model.WorkOrderStatus) bool {
	for _, s := range model.WorkOrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s *workOrderService) recalculateItemTotals(workOrder *model.WorkOrder) {
	for i := range workOrder.Items {
		workOrder.Items[i].Total = model.LineTotal(workOrder.Items[i].Quantity, workOrder.Items[i].UnitPrice)
	}
}

func (s *workOrderService) checkReferences(workOrder *model.WorkOrder) error {
	if _, err := s.customerRepo.FindByID(workOrder.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	if _, err := s.vehicleRepo.FindByID(workOrder.VehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}
	if workOrder.TechnicianID != nil {
		if _, err := s.userRepo.FindByID(*workOrder.TechnicianID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTechnicianNotFound
			}
			return err
		}
	}
	if workOrder.BayID != nil {
		if _, err := s.bayRepo.FindByID(*workOrder.BayID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBayNotFound
			}
			return err
		}
	}
	return nil
}

func (s *workOrderService) CreateWorkOrder(workOrder *model.WorkOrder) error {
	logger.Info("Creating work order", map[string]interface{}{
		"customer_id": workOrder.CustomerID,
		"vehicle_id":  workOrder.VehicleID,
		"items":       len(workOrder.Items),
	})

	if err := s.checkReferences(workOrder); err != nil {
		return err
	}

	workOrder.WorkOrderNumber = ""
	if workOrder.Status == "" {
		workOrder.Status = model.WorkOrderOpen
	}
	if !validWorkOrderStatus(workOrder.Status) {
		return ErrInvalidWorkOrderState
	}
	if workOrder.Priority == "" {
		workOrder.Priority = model.PriorityNormal
	}
	if workOrder.DateOpened.IsZero() {
		workOrder.DateOpened = time.Now()
	}
	s.recalculateItemTotals(workOrder)

	if err := s.workOrderRepo.Create(workOrder); err != nil {
		logger.Error("Failed to create work order", err, map[string]interface{}{
			"customer_id": workOrder.CustomerID,
		})
		return err
	}

	logger.Info("Work order created successfully", map[string]interface{}{
		"work_order_id":     workOrder.ID,
		"work_order_number": workOrder.WorkOrderNumber,
	})
	return nil
}

func (s *workOrderService) GetWorkOrderByID(id uint) (*model.WorkOrder, error) {
	workOrder, err := s.workOrderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkOrderNotFound
		}
		return nil, err
	}
	return workOrder, nil
}

func (s *workOrderService) ListWorkOrders(status string, customerID, technicianID uint) ([]model.WorkOrder, error) {
	if status != "" && !validWorkOrderStatus(model.WorkOrderStatus(status)) {
		return nil, ErrInvalidWorkOrderState
	}
	return s.workOrderRepo.FindAll(status, customerID, technicianID)
}

func (s *workOrderService) UpdateWorkOrder(workOrder *model.WorkOrder) error {
	existing, err := s.workOrderRepo.FindByID(workOrder.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkOrderNotFound
		}
		return err
	}

	if !validWorkOrderStatus(workOrder.Status) {
		return ErrInvalidWorkOrderState
	}
	if err := s.checkReferences(workOrder); err != nil {
		return err
	}

	workOrder.WorkOrderNumber = existing.WorkOrderNumber
	workOrder.CreatedAt = existing.CreatedAt
	s.recalculateItemTotals(workOrder)

	// Completion timestamp follows the status
	if workOrder.Status == model.WorkOrderCompleted && workOrder.DateCompleted == nil {
		now := time.Now()
		workOrder.DateCompleted = &now
	}

	if err := s.workOrderRepo.ReplaceItems(workOrder.ID, workOrder.Items); err != nil {
		logger.Error("Failed to replace work order items", err, map[string]interface{}{
			"work_order_id": workOrder.ID,
		})
		return err
	}

	items := workOrder.Items
	workOrder.Items = nil
	err = s.workOrderRepo.Update(workOrder)
	workOrder.Items = items
	if err != nil {
		logger.Error("Failed to update work order", err, map[string]interface{}{
			"work_order_id": workOrder.ID,
		})
		return err
	}

	logger.Info("Work order updated successfully", map[string]interface{}{
		"work_order_id": workOrder.ID,
		"status":        workOrder.Status,
	})
	return nil
}

// UpdateStatus writes the new status without constraining the transition.
// Completing a work order stamps DateCompleted if it is not already set.
func (s *workOrderService) UpdateStatus(id uint, status model.WorkOrderStatus) error {
	if !validWorkOrderStatus(status) {
		logger.Warn("Rejected unknown work order status", map[string]interface{}{
			"work_order_id": id,
			"status":        status,
		})
		return ErrInvalidWorkOrderState
	}

	workOrder, err := s.workOrderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkOrderNotFound
		}
		return err
	}

	if status == model.WorkOrderCompleted && workOrder.DateCompleted == nil {
		now := time.Now()
		workOrder.DateCompleted = &now
		workOrder.Status = status
		items := workOrder.Items
		workOrder.Items = nil
		err = s.workOrderRepo.Update(workOrder)
		workOrder.Items = items
		if err != nil {
			return err
		}
	} else if err := s.workOrderRepo.UpdateStatus(id, status); err != nil {
		return err
	}

	logger.Info("Work order status updated", map[string]interface{}{
		"work_order_id": id,
		"status":        status,
	})
	return nil
}

func (s *workOrderService) AssignTechnician(id, technicianID uint) error {
	workOrder, err := s.workOrderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkOrderNotFound
		}
		return err
	}

	if _, err := s.userRepo.FindByID(technicianID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTechnicianNotFound
		}
		return err
	}

	workOrder.TechnicianID = &technicianID
	if workOrder.Status == model.WorkOrderOpen {
		workOrder.Status = model.WorkOrderAssigned
	}

	items := workOrder.Items
	workOrder.Items = nil
	err = s.workOrderRepo.Update(workOrder)
	workOrder.Items = items
	if err != nil {
		logger.Error("Failed to assign technician", err, map[string]interface{}{
			"work_order_id": id,
			"technician_id": technicianID,
		})
		return err
	}

	logger.Info("Technician assigned to work order", map[string]interface{}{
		"work_order_id": id,
		"technician_id": technicianID,
	})
	return nil
}

func (s *workOrderService) DeleteWorkOrder(id uint) error {
	if _, err := s.workOrderRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkOrderNotFound
		}
		return err
	}

	if err := s.workOrderRepo.Delete(id); err != nil {
		logger.Error("Failed to delete work order", err, map[string]interface{}{
			"work_order_id": id,
		})
		return err
	}

	logger.Info("Work order deleted", map[string]interface{}{
		"work_order_id": id,
	})
	return nil
}
