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

func setupInvoiceServiceTest(t *testing.T) (*gorm.DB, InvoiceService, *model.WorkOrder) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	customer, vehicle := seedCustomerAndVehicle(t, testDB)

	workOrder := &model.WorkOrder{
		CustomerID: customer.ID,
		VehicleID:  vehicle.ID,
		Status:     model.WorkOrderCompleted,
		DateOpened: time.Now(),
		Items: []model.WorkOrderItem{
			{
				ItemType:    model.ItemTypeLabor,
				Description: "Front brake service",
				Quantity:    decimal.NewFromFloat(1.5),
				UnitPrice:   decimal.NewFromInt(80),
				Total:       decimal.NewFromInt(120),
			},
			{
				ItemType:    model.ItemTypePart,
				Description: "Brake pad set",
				Quantity:    decimal.NewFromInt(2),
				UnitPrice:   decimal.NewFromInt(45),
				Total:       decimal.NewFromInt(90),
			},
		},
	}
	require.NoError(t, repository.NewWorkOrderRepository(testDB).Create(workOrder))

	invoiceService := NewInvoiceService(
		repository.NewInvoiceRepository(testDB),
		repository.NewWorkOrderRepository(testDB),
		14,
	)

	return testDB, invoiceService, workOrder
}

func TestInvoiceService_CreateFromWorkOrder(t *testing.T) {
	testDB, invoiceService, workOrder := setupInvoiceServiceTest(t)
	defer db.CleanupTestDB(testDB)

	discount := decimal.NewFromInt(10)
	tax := decimal.RequireFromString("20.70")

	invoice, err := invoiceService.CreateFromWorkOrder(workOrder.ID, discount, tax, 0)
	require.NoError(t, err)
	require.NotNil(t, invoice)

	assert.Equal(t, "INV-000001", invoice.InvoiceNumber)
	assert.Equal(t, model.PaymentUnpaid, invoice.Status)
	assert.True(t, decimal.NewFromInt(210).Equal(invoice.SubTotal), "want 210, got %s", invoice.SubTotal)
	assert.True(t, decimal.RequireFromString("220.70").Equal(invoice.Total), "want 220.70, got %s", invoice.Total)
	assert.True(t, invoice.Total.Equal(invoice.Balance))

	// The default due days apply when the caller passes zero
	wantDue := time.Now().AddDate(0, 0, 14)
	assert.WithinDuration(t, wantDue, invoice.DueDate, time.Minute)
}

func TestInvoiceService_CreateFromWorkOrder_Duplicate(t *testing.T) {
	testDB, invoiceService, workOrder := setupInvoiceServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := invoiceService.CreateFromWorkOrder(workOrder.ID, decimal.Zero, decimal.Zero, 0)
	require.NoError(t, err)

	_, err = invoiceService.CreateFromWorkOrder(workOrder.ID, decimal.Zero, decimal.Zero, 0)
	assert.ErrorIs(t, err, ErrInvoiceAlreadyExists)
}

func TestInvoiceService_CreateFromWorkOrder_UnknownWorkOrder(t *testing.T) {
	testDB, invoiceService, _ := setupInvoiceServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := invoiceService.CreateFromWorkOrder(9999, decimal.Zero, decimal.Zero, 0)
	assert.ErrorIs(t, err, ErrWorkOrderNotFound)
}

func TestInvoiceService_RecordPayment_StatusProgression(t *testing.T) {
	testDB, invoiceService, workOrder := setupInvoiceServiceTest(t)
	defer db.CleanupTestDB(testDB)

	invoice, err := invoiceService.CreateFromWorkOrder(workOrder.ID, decimal.Zero, decimal.Zero, 0)
	require.NoError(t, err)
	// Total is 210.00

	invoice, err = invoiceService.RecordPayment(invoice.ID, decimal.NewFromInt(100), model.MethodCash, "", nil)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPartial, invoice.Status)
	assert.True(t, decimal.NewFromInt(110).Equal(invoice.Balance), "want 110, got %s", invoice.Balance)
	require.Len(t, invoice.Payments, 1)
	assert.NotEmpty(t, invoice.Payments[0].Reference)

	// Overpayment is accepted and leaves a negative balance
	invoice, err = invoiceService.RecordPayment(invoice.ID, decimal.NewFromInt(150), model.MethodCard, "pos-00042", nil)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, invoice.Status)
	assert.True(t, decimal.NewFromInt(-40).Equal(invoice.Balance), "want -40, got %s", invoice.Balance)
	assert.Len(t, invoice.Payments, 2)
}

func TestInvoiceService_RecordPayment_Rejections(t *testing.T) {
	testDB, invoiceService, workOrder := setupInvoiceServiceTest(t)
	defer db.CleanupTestDB(testDB)

	invoice, err := invoiceService.CreateFromWorkOrder(workOrder.ID, decimal.Zero, decimal.Zero, 0)
	require.NoError(t, err)

	_, err = invoiceService.RecordPayment(invoice.ID, decimal.Zero, model.MethodCash, "", nil)
	assert.ErrorIs(t, err, ErrInvalidPaymentAmount)

	_, err = invoiceService.RecordPayment(invoice.ID, decimal.NewFromInt(-10), model.MethodCash, "", nil)
	assert.ErrorIs(t, err, ErrInvalidPaymentAmount)

	_, err = invoiceService.RecordPayment(invoice.ID, decimal.NewFromInt(10), "barter", "", nil)
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	_, err = invoiceService.RecordPayment(9999, decimal.NewFromInt(10), model.MethodCash, "", nil)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestInvoiceService_UpdateStatus(t *testing.T) {
	testDB, invoiceService, workOrder := setupInvoiceServiceTest(t)
	defer db.CleanupTestDB(testDB)

	invoice, err := invoiceService.CreateFromWorkOrder(workOrder.ID, decimal.Zero, decimal.Zero, 0)
	require.NoError(t, err)

	// Refunds are an explicit status write, never derived
	require.NoError(t, invoiceService.UpdateStatus(invoice.ID, model.PaymentRefunded))

	stored, err := invoiceService.GetInvoiceByID(invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentRefunded, stored.Status)

	assert.ErrorIs(t, invoiceService.UpdateStatus(invoice.ID, "bogus"), ErrInvalidInvoiceStatus)
	assert.ErrorIs(t, invoiceService.UpdateStatus(9999, model.PaymentPaid), ErrInvoiceNotFound)
}

func TestInvoiceService_MarkOverdueInvoices(t *testing.T) {
	testDB, invoiceService, workOrder := setupInvoiceServiceTest(t)
	defer db.CleanupTestDB(testDB)

	invoice, err := invoiceService.CreateFromWorkOrder(workOrder.ID, decimal.Zero, decimal.Zero, 0)
	require.NoError(t, err)

	// Not yet due
	marked, err := invoiceService.MarkOverdueInvoices(time.Now())
	require.NoError(t, err)
	assert.Zero(t, marked)

	pastDue := time.Now().Add(-48 * time.Hour)
	require.NoError(t, testDB.Model(invoice).Update("due_date", pastDue).Error)

	marked, err = invoiceService.MarkOverdueInvoices(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	stored, err := invoiceService.GetInvoiceByID(invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentOverdue, stored.Status)
}
