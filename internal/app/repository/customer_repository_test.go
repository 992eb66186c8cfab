package repository

import (
	"testing"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCustomerTest(t *testing.T) (*gorm.DB, CustomerRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewCustomerRepository(testDB)
	return testDB, repo
}

func TestCustomerRepository_Create_AssignsSequentialNumbers(t *testing.T) {
	testDB, repo := setupCustomerTest(t)
	defer db.CleanupTestDB(testDB)

	first := &model.Customer{
		Name:  "Ama Mensah",
		Email: "ama@example.com",
		Phone: "0244-000-001",
	}
	require.NoError(t, repo.Create(first))
	assert.Equal(t, "CUST-000001", first.CustomerNumber)

	second := &model.Customer{
		Name:  "Kofi Boateng",
		Email: "kofi@example.com",
		Phone: "0244-000-002",
	}
	require.NoError(t, repo.Create(second))
	assert.Equal(t, "CUST-000002", second.CustomerNumber)

	// The number must be persisted, not just set on the struct
	stored, err := repo.FindByID(second.ID)
	require.NoError(t, err)
	assert.Equal(t, "CUST-000002", stored.CustomerNumber)
}

func TestCustomerRepository_FindByNumber(t *testing.T) {
	testDB, repo := setupCustomerTest(t)
	defer db.CleanupTestDB(testDB)

	customer := &model.Customer{
		Name:  "Ama Mensah",
		Email: "ama@example.com",
		Phone: "0244-000-001",
	}
	require.NoError(t, repo.Create(customer))

	found, err := repo.FindByNumber(customer.CustomerNumber)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, found.ID)

	_, err = repo.FindByNumber("CUST-999999")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCustomerRepository_FindAll(t *testing.T) {
	testDB, repo := setupCustomerTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.Customer{
		Name:         "Ama Mensah",
		Email:        "ama@example.com",
		Phone:        "0244-000-001",
		CustomerType: model.CustomerTypeIndividual,
	}))
	require.NoError(t, repo.Create(&model.Customer{
		Name:         "Accra Fleet Services",
		CompanyName:  "Accra Fleet Services Ltd",
		Email:        "fleet@example.com",
		Phone:        "0302-000-002",
		CustomerType: model.CustomerTypeBusiness,
	}))

	tests := []struct {
		name         string
		search       string
		customerType string
		wantCount    int
	}{
		{
			name:      "No filters returns everyone",
			wantCount: 2,
		},
		{
			name:      "Search by name",
			search:    "Mensah",
			wantCount: 1,
		},
		{
			name:      "Search by email",
			search:    "fleet@",
			wantCount: 1,
		},
		{
			name:         "Filter by type",
			customerType: "business",
			wantCount:    1,
		},
		{
			name:      "Search with no match",
			search:    "nonexistent",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customers, err := repo.FindAll(tt.search, tt.customerType)
			require.NoError(t, err)
			assert.Len(t, customers, tt.wantCount)
		})
	}
}

func TestCustomerRepository_Delete_SoftDeletes(t *testing.T) {
	testDB, repo := setupCustomerTest(t)
	defer db.CleanupTestDB(testDB)

	customer := &model.Customer{
		Name:  "Ama Mensah",
		Email: "ama@example.com",
		Phone: "0244-000-001",
	}
	require.NoError(t, repo.Create(customer))
	require.NoError(t, repo.Delete(customer.ID))

	_, err := repo.FindByID(customer.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Soft deleted rows stay in the table
	var count int64
	require.NoError(t, testDB.Unscoped().Model(&model.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
