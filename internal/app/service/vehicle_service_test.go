package service

import (
	"testing"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupVehicleServiceTest(t *testing.T) (*gorm.DB, VehicleService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	vehicleService := NewVehicleService(
		repository.NewVehicleRepository(testDB),
		repository.NewCustomerRepository(testDB),
	)

	return testDB, vehicleService
}

func TestVehicleService_CreateVehicle(t *testing.T) {
	testDB, vehicleService := setupVehicleServiceTest(t)
	defer db.CleanupTestDB(testDB)

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
	require.NoError(t, vehicleService.CreateVehicle(vehicle))
	assert.NotZero(t, vehicle.ID)

	found, err := vehicleService.GetVehicleByRegistration("GR-1234-22")
	require.NoError(t, err)
	assert.Equal(t, vehicle.ID, found.ID)
	assert.Equal(t, customer.ID, found.CustomerID)
}

func TestVehicleService_CreateVehicle_CustomerNotFound(t *testing.T) {
	testDB, vehicleService := setupVehicleServiceTest(t)
	defer db.CleanupTestDB(testDB)

	vehicle := &model.Vehicle{
		CustomerID:         9999,
		RegistrationNumber: "GR-1234-22",
		Make:               "Toyota",
		Model:              "Corolla",
		Year:               2019,
	}

	err := vehicleService.CreateVehicle(vehicle)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	// Nothing is written when the owner check fails
	var count int64
	require.NoError(t, testDB.Model(&model.Vehicle{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestVehicleService_GetVehicleByID_NotFound(t *testing.T) {
	testDB, vehicleService := setupVehicleServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := vehicleService.GetVehicleByID(9999)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}
