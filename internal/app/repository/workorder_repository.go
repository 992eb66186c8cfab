package repository

import (
	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type WorkOrderRepository interface {
	Create(workOrder *model.WorkOrder) error
	FindByID(id uint) (*model.WorkOrder, error)
	FindAll(status string, customerID, technicianID uint) ([]model.WorkOrder, error)
	Update(workOrder *model.WorkOrder) error
	UpdateStatus(id uint, status model.WorkOrderStatus) error
	ReplaceItems(workOrderID uint, items []model.WorkOrderItem) error
	Delete(id uint) error
}

type workOrderRepository struct {
	db *gorm.DB
}

func NewWorkOrderRepository(db *gorm.DB) WorkOrderRepository {
	return &workOrderRepository{db: db}
}

func (r *workOrderRepository) preloadWorkOrder() *gorm.DB {
	return r.db.Preload("Customer").Preload("Vehicle").Preload("Bay").
		Preload("Technician").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Preload("Service").Preload("Part").Preload("Technician")
		})
}

// Create inserts the work order with its items and derives the work order
// number from the new row's identity inside the same transaction.
func (r *workOrderRepository) Create(workOrder *model.WorkOrder) error {
	logger.Debug("Creating work order in database", map[string]interface{}{
		"customer_id": workOrder.CustomerID,
		"vehicle_id":  workOrder.VehicleID,
		"items":       len(workOrder.Items),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(workOrder).Error; err != nil {
			return err
		}
		workOrder.WorkOrderNumber = model.FormatEntityNumber(model.WorkOrderNumberPrefix, workOrder.ID)
		return tx.Model(workOrder).Update("work_order_number", workOrder.WorkOrderNumber).Error
	})
	if err != nil {
		logger.Error("Failed to create work order in database", err, map[string]interface{}{
			"customer_id": workOrder.CustomerID,
		})
		return err
	}

	logger.Debug("Work order created in database", map[string]interface{}{
		"work_order_id":     workOrder.ID,
		"work_order_number": workOrder.WorkOrderNumber,
	})
	return nil
}

func (r *workOrderRepository) FindByID(id uint) (*model.WorkOrder, error) {
	var workOrder model.WorkOrder
	if err := r.preloadWorkOrder().First(&workOrder, id).Error; err != nil {
		logger.Error("Failed to find work order by ID in database", err, map[string]interface{}{
			"work_order_id": id,
		})
		return nil, err
	}
	return &workOrder, nil
}

func (r *workOrderRepository) FindAll(status string, customerID, technicianID uint) ([]model.WorkOrder, error) {
	logger.Debug("Finding work orders in database", map[string]interface{}{
		"status":        status,
		"customer_id":   customerID,
		"technician_id": technicianID,
	})

	var workOrders []model.WorkOrder
	query := r.preloadWorkOrder().Order("date_opened DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID != 0 {
		query = query.Where("customer_id = ?", customerID)
	}
	if technicianID != 0 {
		query = query.Where("technician_id = ?", technicianID)
	}

	if err := query.Find(&workOrders).Error; err != nil {
		logger.Error("Failed to find work orders in database", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}

	logger.Debug("Work orders found in database", map[string]interface{}{
		"count": len(workOrders),
	})
	return workOrders, nil
}

func (r *workOrderRepository) Update(workOrder *model.WorkOrder) error {
	logger.Debug("Updating work order in database", map[string]interface{}{
		"work_order_id": workOrder.ID,
		"status":        workOrder.Status,
	})

	if err := r.db.Save(workOrder).Error; err != nil {
		logger.Error("Failed to update work order in database", err, map[string]interface{}{
			"work_order_id": workOrder.ID,
		})
		return err
	}
	return nil
}

func (r *workOrderRepository) UpdateStatus(id uint, status model.WorkOrderStatus) error {
	logger.Debug("Updating work order status in database", map[string]interface{}{
		"work_order_id": id,
		"status":        status,
	})

	if err := r.db.Model(&model.WorkOrder{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update work order status in database", err, map[string]interface{}{
			"work_order_id": id,
			"status":        status,
		})
		return err
	}
	return nil
}

// ReplaceItems swaps the work order's line items for a new set in one
// transaction.
func (r *workOrderRepository) ReplaceItems(workOrderID uint, items []model.WorkOrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("work_order_id = ?", workOrderID).
			Delete(&model.WorkOrderItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].WorkOrderID = workOrderID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// Delete soft-deletes the work order together with its line items.
func (r *workOrderRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_order_id = ?", id).Delete(&model.WorkOrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.WorkOrder{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete work order in database", err, map[string]interface{}{
			"work_order_id": id,
		})
		return err
	}
	return nil
}
