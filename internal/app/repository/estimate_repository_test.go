package repository

import (
	"testing"
	"time"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupEstimateTest(t *testing.T) (*gorm.DB, EstimateRepository, *model.Customer, *model.Vehicle) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	customer := &model.Customer{
		Name:  "Ama Mensah",
		Email: "ama@example.com",
		Phone: "0244-000-001",
	}
	require.NoError(t, NewCustomerRepository(testDB).Create(customer))

	vehicle := &model.Vehicle{
		CustomerID:         customer.ID,
		RegistrationNumber: "GR-1234-22",
		Make:               "Toyota",
		Model:              "Corolla",
		Year:               2019,
	}
	require.NoError(t, NewVehicleRepository(testDB).Create(vehicle))

	repo := NewEstimateRepository(testDB)
	return testDB, repo, customer, vehicle
}

func newTestEstimate(customer *model.Customer, vehicle *model.Vehicle) *model.Estimate {
	return &model.Estimate{
		CustomerID: customer.ID,
		VehicleID:  vehicle.ID,
		ValidUntil: time.Now().Add(30 * 24 * time.Hour),
		Status:     model.EstimateDraft,
		Items: []model.EstimateItem{
			{
				ItemType:    model.ItemTypeLabor,
				Description: "Front brake service",
				Quantity:    decimal.NewFromFloat(1.5),
				UnitPrice:   decimal.NewFromInt(80),
				Total:       decimal.NewFromInt(120),
			},
		},
	}
}

func TestEstimateRepository_Create_AssignsNumber(t *testing.T) {
	testDB, repo, customer, vehicle := setupEstimateTest(t)
	defer db.CleanupTestDB(testDB)

	estimate := newTestEstimate(customer, vehicle)
	require.NoError(t, repo.Create(estimate))
	assert.Equal(t, "EST-000001", estimate.EstimateNumber)
	require.Len(t, estimate.Items, 1)
	assert.NotZero(t, estimate.Items[0].ID)
}

func TestEstimateRepository_Delete_SoftDeletesItems(t *testing.T) {
	testDB, repo, customer, vehicle := setupEstimateTest(t)
	defer db.CleanupTestDB(testDB)

	estimate := newTestEstimate(customer, vehicle)
	require.NoError(t, repo.Create(estimate))
	require.NoError(t, repo.Delete(estimate.ID))

	_, err := repo.FindByID(estimate.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Line items go with their estimate
	var liveItems int64
	require.NoError(t, testDB.Model(&model.EstimateItem{}).
		Where("estimate_id = ?", estimate.ID).Count(&liveItems).Error)
	assert.Zero(t, liveItems)

	// Soft deleted, not erased
	var allItems int64
	require.NoError(t, testDB.Unscoped().Model(&model.EstimateItem{}).
		Where("estimate_id = ?", estimate.ID).Count(&allItems).Error)
	assert.Equal(t, int64(1), allItems)
}
