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

// seedCustomerAndVehicle inserts the customer and vehicle most service tests
// hang their fixtures on.
func seedCustomerAndVehicle(t *testing.T, testDB *gorm.DB) (*model.Customer, *model.Vehicle) {
	customer := &model.Customer{
		Name:  "Ama Mensah",
		Email: "ama@example.com",
		Phone: "0244-000-001",
	}
	require.NoError(t, repository.NewCustomerRepository(testDB).Create(customer))

	vehicle := &model.Vehicle{
		CustomerID:         customer.ID,
		RegistrationNumber: "GR-1234-22",
		Make:               "Toyota",
		Model:              "Corolla",
		Year:               2019,
	}
	require.NoError(t, repository.NewVehicleRepository(testDB).Create(vehicle))

	return customer, vehicle
}

func setupEstimateServiceTest(t *testing.T) (*gorm.DB, EstimateService, *model.Customer, *model.Vehicle) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	customer, vehicle := seedCustomerAndVehicle(t, testDB)

	estimateService := NewEstimateService(
		repository.NewEstimateRepository(testDB),
		repository.NewWorkOrderRepository(testDB),
		repository.NewCustomerRepository(testDB),
		repository.NewVehicleRepository(testDB),
	)

	return testDB, estimateService, customer, vehicle
}

func newDraftEstimate(customer *model.Customer, vehicle *model.Vehicle) *model.Estimate {
	return &model.Estimate{
		CustomerID: customer.ID,
		VehicleID:  vehicle.ID,
		ValidUntil: time.Now().Add(30 * 24 * time.Hour),
		Items: []model.EstimateItem{
			{
				ItemType:    model.ItemTypeLabor,
				Description: "Front brake service",
				Quantity:    decimal.NewFromFloat(1.5),
				UnitPrice:   decimal.NewFromInt(80),
			},
			{
				ItemType:    model.ItemTypePart,
				Description: "Brake pad set",
				Quantity:    decimal.NewFromInt(2),
				UnitPrice:   decimal.NewFromInt(45),
			},
		},
	}
}

func TestEstimateService_CreateEstimate_RecalculatesTotals(t *testing.T) {
	testDB, estimateService, customer, vehicle := setupEstimateServiceTest(t)
	defer db.CleanupTestDB(testDB)

	estimate := newDraftEstimate(customer, vehicle)
	estimate.Discount = decimal.NewFromInt(10)
	estimate.Tax = decimal.NewFromInt(20)
	// Caller supplied totals are ignored and rederived from the items
	estimate.SubTotal = decimal.NewFromInt(9999)
	estimate.Total = decimal.NewFromInt(9999)

	require.NoError(t, estimateService.CreateEstimate(estimate))

	assert.Equal(t, "EST-000001", estimate.EstimateNumber)
	assert.Equal(t, model.EstimateDraft, estimate.Status)
	assert.True(t, decimal.NewFromInt(210).Equal(estimate.SubTotal), "want 210, got %s", estimate.SubTotal)
	assert.True(t, decimal.NewFromInt(220).Equal(estimate.Total), "want 220, got %s", estimate.Total)
	for _, item := range estimate.Items {
		assert.False(t, item.Total.IsZero())
	}
}

func TestEstimateService_CreateEstimate_UnknownReferences(t *testing.T) {
	testDB, estimateService, customer, vehicle := setupEstimateServiceTest(t)
	defer db.CleanupTestDB(testDB)

	estimate := newDraftEstimate(customer, vehicle)
	estimate.CustomerID = 9999
	assert.ErrorIs(t, estimateService.CreateEstimate(estimate), ErrCustomerNotFound)

	estimate = newDraftEstimate(customer, vehicle)
	estimate.VehicleID = 9999
	assert.ErrorIs(t, estimateService.CreateEstimate(estimate), ErrVehicleNotFound)
}

func TestEstimateService_ConvertToWorkOrder(t *testing.T) {
	testDB, estimateService, customer, vehicle := setupEstimateServiceTest(t)
	defer db.CleanupTestDB(testDB)

	estimate := newDraftEstimate(customer, vehicle)
	estimate.Items = append(estimate.Items, model.EstimateItem{
		ItemType:    model.ItemTypeSublet,
		Description: "Windscreen replacement",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(300),
	})
	require.NoError(t, estimateService.CreateEstimate(estimate))

	workOrder, err := estimateService.ConvertToWorkOrder(estimate.ID)
	require.NoError(t, err)
	require.NotNil(t, workOrder)

	assert.Equal(t, "WO-000001", workOrder.WorkOrderNumber)
	assert.Equal(t, model.WorkOrderOpen, workOrder.Status)
	assert.Equal(t, estimate.ID, *workOrder.EstimateID)
	require.Len(t, workOrder.Items, 3)

	// Sublet lines are carried over as labor
	for _, item := range workOrder.Items {
		assert.NotEqual(t, model.ItemTypeSublet, item.ItemType)
	}

	stored, err := estimateService.GetEstimateByID(estimate.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EstimateConverted, stored.Status)

	// An estimate converts exactly once
	_, err = estimateService.ConvertToWorkOrder(estimate.ID)
	assert.ErrorIs(t, err, ErrEstimateNotConvertible)
}

func TestEstimateService_ExpireStaleEstimates(t *testing.T) {
	testDB, estimateService, customer, vehicle := setupEstimateServiceTest(t)
	defer db.CleanupTestDB(testDB)

	stale := newDraftEstimate(customer, vehicle)
	stale.ValidUntil = time.Now().Add(-24 * time.Hour)
	require.NoError(t, estimateService.CreateEstimate(stale))

	current := newDraftEstimate(customer, vehicle)
	require.NoError(t, estimateService.CreateEstimate(current))

	expired, err := estimateService.ExpireStaleEstimates()
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	stored, err := estimateService.GetEstimateByID(stale.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EstimateExpired, stored.Status)

	stored, err = estimateService.GetEstimateByID(current.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EstimateDraft, stored.Status)
}

func TestEstimateService_UpdateStatus(t *testing.T) {
	testDB, estimateService, customer, vehicle := setupEstimateServiceTest(t)
	defer db.CleanupTestDB(testDB)

	estimate := newDraftEstimate(customer, vehicle)
	require.NoError(t, estimateService.CreateEstimate(estimate))

	require.NoError(t, estimateService.UpdateStatus(estimate.ID, model.EstimateSent))

	stored, err := estimateService.GetEstimateByID(estimate.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EstimateSent, stored.Status)

	assert.ErrorIs(t, estimateService.UpdateStatus(estimate.ID, "bogus"), ErrInvalidEstimateState)
	assert.ErrorIs(t, estimateService.UpdateStatus(9999, model.EstimateSent), ErrEstimateNotFound)
}
