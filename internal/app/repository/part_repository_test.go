package repository

import (
	"testing"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPartTest(t *testing.T) (*gorm.DB, PartRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewPartRepository(testDB)
	return testDB, repo
}

func newTestPart(partNumber, name string, onHand, minimum int) *model.Part {
	return &model.Part{
		PartNumber:     partNumber,
		Name:           name,
		CostPrice:      decimal.NewFromInt(10),
		RetailPrice:    decimal.NewFromInt(18),
		QuantityOnHand: onHand,
		MinimumStock:   minimum,
		IsActive:       true,
	}
}

func TestPartRepository_Create(t *testing.T) {
	testDB, repo := setupPartTest(t)
	defer db.CleanupTestDB(testDB)

	part := newTestPart("BRK-PAD-01", "Front brake pads", 12, 4)
	require.NoError(t, repo.Create(part))
	assert.NotZero(t, part.ID)

	// Duplicate part numbers violate the unique index
	err := repo.Create(newTestPart("BRK-PAD-01", "Front brake pads again", 1, 1))
	assert.Error(t, err)
}

func TestPartRepository_AdjustStock(t *testing.T) {
	testDB, repo := setupPartTest(t)
	defer db.CleanupTestDB(testDB)

	part := newTestPart("OIL-FLT-02", "Oil filter", 10, 3)
	require.NoError(t, repo.Create(part))

	updated, err := repo.AdjustStock(part.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.QuantityOnHand)

	updated, err = repo.AdjustStock(part.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 26, updated.QuantityOnHand)
}

func TestPartRepository_FindAll_LowStockFilter(t *testing.T) {
	testDB, repo := setupPartTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(newTestPart("BRK-PAD-01", "Front brake pads", 2, 5)))
	require.NoError(t, repo.Create(newTestPart("OIL-FLT-02", "Oil filter", 10, 3)))
	require.NoError(t, repo.Create(newTestPart("WPR-BLD-03", "Wiper blades", 5, 5)))

	lowStock, err := repo.FindAll("", 0, 0, true)
	require.NoError(t, err)
	require.Len(t, lowStock, 2)

	all, err := repo.FindAll("", 0, 0, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPartRepository_FindAll_Search(t *testing.T) {
	testDB, repo := setupPartTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(newTestPart("BRK-PAD-01", "Front brake pads", 2, 5)))
	require.NoError(t, repo.Create(newTestPart("OIL-FLT-02", "Oil filter", 10, 3)))

	parts, err := repo.FindAll("brake", 0, 0, false)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "BRK-PAD-01", parts[0].PartNumber)

	parts, err = repo.FindAll("OIL-FLT", 0, 0, false)
	require.NoError(t, err)
	assert.Len(t, parts, 1)
}

func TestPartRepository_BulkCreate(t *testing.T) {
	testDB, repo := setupPartTest(t)
	defer db.CleanupTestDB(testDB)

	parts := []model.Part{
		*newTestPart("BRK-PAD-01", "Front brake pads", 12, 4),
		*newTestPart("OIL-FLT-02", "Oil filter", 10, 3),
		*newTestPart("WPR-BLD-03", "Wiper blades", 8, 5),
	}
	require.NoError(t, repo.BulkCreate(parts, 2))

	all, err := repo.FindAll("", 0, 0, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
