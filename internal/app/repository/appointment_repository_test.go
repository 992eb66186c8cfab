package repository

import (
	"testing"
	"time"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAppointmentTest(t *testing.T) (*gorm.DB, AppointmentRepository, *model.Customer, *model.Vehicle) {
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

	repo := NewAppointmentRepository(testDB)
	return testDB, repo, customer, vehicle
}

func TestAppointmentRepository_Create_AssignsNumber(t *testing.T) {
	testDB, repo, customer, vehicle := setupAppointmentTest(t)
	defer db.CleanupTestDB(testDB)

	appointment := &model.Appointment{
		CustomerID:        customer.ID,
		VehicleID:         vehicle.ID,
		AppointmentDate:   time.Now().Add(24 * time.Hour),
		EstimatedDuration: 60,
	}
	require.NoError(t, repo.Create(appointment))
	assert.Equal(t, "APT-000001", appointment.AppointmentNumber)

	// Default status applies at the database level
	stored, err := repo.FindByID(appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentScheduled, stored.Status)
}

func TestAppointmentRepository_FindAll_Filters(t *testing.T) {
	testDB, repo, customer, vehicle := setupAppointmentTest(t)
	defer db.CleanupTestDB(testDB)

	now := time.Now()
	fixtures := []struct {
		offset time.Duration
		status model.AppointmentStatus
	}{
		{24 * time.Hour, model.AppointmentScheduled},
		{48 * time.Hour, model.AppointmentConfirmed},
		{-24 * time.Hour, model.AppointmentCompleted},
	}
	for _, f := range fixtures {
		appointment := &model.Appointment{
			CustomerID:        customer.ID,
			VehicleID:         vehicle.ID,
			AppointmentDate:   now.Add(f.offset),
			EstimatedDuration: 60,
			Status:            f.status,
		}
		require.NoError(t, repo.Create(appointment))
	}

	t.Run("By status", func(t *testing.T) {
		appointments, err := repo.FindAll("confirmed", 0, nil, nil)
		require.NoError(t, err)
		assert.Len(t, appointments, 1)
	})

	t.Run("By customer", func(t *testing.T) {
		appointments, err := repo.FindAll("", customer.ID, nil, nil)
		require.NoError(t, err)
		assert.Len(t, appointments, 3)
	})

	t.Run("Upcoming only", func(t *testing.T) {
		from := now
		appointments, err := repo.FindAll("", 0, &from, nil)
		require.NoError(t, err)
		assert.Len(t, appointments, 2)
	})

	t.Run("Bounded window", func(t *testing.T) {
		from := now
		to := now.Add(36 * time.Hour)
		appointments, err := repo.FindAll("", 0, &from, &to)
		require.NoError(t, err)
		assert.Len(t, appointments, 1)
	})
}

func TestAppointmentRepository_UpdateStatus(t *testing.T) {
	testDB, repo, customer, vehicle := setupAppointmentTest(t)
	defer db.CleanupTestDB(testDB)

	appointment := &model.Appointment{
		CustomerID:        customer.ID,
		VehicleID:         vehicle.ID,
		AppointmentDate:   time.Now().Add(24 * time.Hour),
		EstimatedDuration: 45,
	}
	require.NoError(t, repo.Create(appointment))

	// Every enumerated status is writable as-is
	for _, status := range model.AppointmentStatuses {
		t.Run(string(status), func(t *testing.T) {
			require.NoError(t, repo.UpdateStatus(appointment.ID, status))

			stored, err := repo.FindByID(appointment.ID)
			require.NoError(t, err)
			assert.Equal(t, status, stored.Status)
		})
	}
}
