package service

import (
	"testing"
	"time"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWorkOrderServiceTest(t *testing.T) (*gorm.DB, WorkOrderService, *model.Customer, *model.Vehicle, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	customer, vehicle := seedCustomerAndVehicle(t, testDB)

	technician := &model.User{
		Email:        "tech@autoshop.local",
		PasswordHash: "not-a-real-hash",
		FirstName:    "Yaw",
		LastName:     "Asante",
		Role:         model.RoleTechnician,
		IsActive:     true,
	}
	require.NoError(t, repository.NewUserRepository(testDB).Create(technician))

	workOrderService := NewWorkOrderService(
		repository.NewWorkOrderRepository(testDB),
		repository.NewCustomerRepository(testDB),
		repository.NewVehicleRepository(testDB),
		repository.NewUserRepository(testDB),
		repository.NewBayRepository(testDB),
	)

	return testDB, workOrderService, customer, vehicle, technician
}

func newOpenWorkOrder(customer *model.Customer, vehicle *model.Vehicle) *model.WorkOrder {
	return &model.WorkOrder{
		CustomerID:        customer.ID,
		VehicleID:         vehicle.ID,
		CustomerComplaint: "Grinding noise when braking",
		Items: []model.WorkOrderItem{
			{
				ItemType:    model.ItemTypeLabor,
				Description: "Front brake service",
				Quantity:    decimal.NewFromFloat(1.5),
				UnitPrice:   decimal.NewFromInt(80),
			},
		},
	}
}

func TestWorkOrderService_CreateWorkOrder_Defaults(t *testing.T) {
	testDB, workOrderService, customer, vehicle, _ := setupWorkOrderServiceTest(t)
	defer db.CleanupTestDB(testDB)

	workOrder := newOpenWorkOrder(customer, vehicle)
	require.NoError(t, workOrderService.CreateWorkOrder(workOrder))

	assert.Equal(t, "WO-000001", workOrder.WorkOrderNumber)
	assert.Equal(t, model.WorkOrderOpen, workOrder.Status)
	assert.Equal(t, model.PriorityNormal, workOrder.Priority)
	assert.False(t, workOrder.DateOpened.IsZero())
	require.Len(t, workOrder.Items, 1)
	assert.True(t, decimal.NewFromInt(120).Equal(workOrder.Items[0].Total), "want 120, got %s", workOrder.Items[0].Total)
}

func TestWorkOrderService_CreateWorkOrder_UnknownReferences(t *testing.T) {
	testDB, workOrderService, customer, vehicle, _ := setupWorkOrderServiceTest(t)
	defer db.CleanupTestDB(testDB)

	workOrder := newOpenWorkOrder(customer, vehicle)
	workOrder.VehicleID = 9999
	assert.ErrorIs(t, workOrderService.CreateWorkOrder(workOrder), ErrVehicleNotFound)

	workOrder = newOpenWorkOrder(customer, vehicle)
	unknownBay := uint(9999)
	workOrder.BayID = &unknownBay
	assert.ErrorIs(t, workOrderService.CreateWorkOrder(workOrder), ErrBayNotFound)
}

func TestWorkOrderService_UpdateStatus_CompletionStampsDate(t *testing.T) {
	testDB, workOrderService, customer, vehicle, _ := setupWorkOrderServiceTest(t)
	defer db.CleanupTestDB(testDB)

	workOrder := newOpenWorkOrder(customer, vehicle)
	require.NoError(t, workOrderService.CreateWorkOrder(workOrder))

	require.NoError(t, workOrderService.UpdateStatus(workOrder.ID, model.WorkOrderInProgress))
	stored, err := workOrderService.GetWorkOrderByID(workOrder.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.DateCompleted)

	require.NoError(t, workOrderService.UpdateStatus(workOrder.ID, model.WorkOrderCompleted))
	stored, err = workOrderService.GetWorkOrderByID(workOrder.ID)
	require.NoError(t, err)
	assert.Equal(t, model.WorkOrderCompleted, stored.Status)
	require.NotNil(t, stored.DateCompleted)
	assert.WithinDuration(t, time.Now(), *stored.DateCompleted, time.Minute)

	assert.ErrorIs(t, workOrderService.UpdateStatus(workOrder.ID, "bogus"), ErrInvalidWorkOrderState)
}

func TestWorkOrderService_AssignTechnician(t *testing.T) {
	testDB, workOrderService, customer, vehicle, technician := setupWorkOrderServiceTest(t)
	defer db.CleanupTestDB(testDB)

	workOrder := newOpenWorkOrder(customer, vehicle)
	require.NoError(t, workOrderService.CreateWorkOrder(workOrder))

	require.NoError(t, workOrderService.AssignTechnician(workOrder.ID, technician.ID))

	stored, err := workOrderService.GetWorkOrderByID(workOrder.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.TechnicianID)
	assert.Equal(t, technician.ID, *stored.TechnicianID)

	// Assignment moves an open work order forward
	assert.Equal(t, model.WorkOrderAssigned, stored.Status)

	assert.ErrorIs(t, workOrderService.AssignTechnician(workOrder.ID, 9999), ErrTechnicianNotFound)
	assert.ErrorIs(t, workOrderService.AssignTechnician(9999, technician.ID), ErrWorkOrderNotFound)
}
