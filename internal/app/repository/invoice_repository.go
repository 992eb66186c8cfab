package repository

import (
	"time"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(invoice *model.Invoice) error
	FindByID(id uint) (*model.Invoice, error)
	FindByWorkOrderID(workOrderID uint) (*model.Invoice, error)
	FindAll(status string, customerID uint) ([]model.Invoice, error)
	FindOverdueCandidates(asOf time.Time) ([]model.Invoice, error)
	Update(invoice *model.Invoice) error
	UpdateStatus(id uint, status model.PaymentStatus) error
	AddPayment(invoice *model.Invoice, payment *model.Payment) error
	RevenueBetween(from, to time.Time) (decimal.Decimal, int64, error)
	PaidInvoicesBetween(from, to time.Time) ([]model.Invoice, error)
	Delete(id uint) error
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) preloadInvoice() *gorm.DB {
	return r.db.Preload("Customer").Preload("Payments").
		Preload("WorkOrder", func(db *gorm.DB) *gorm.DB {
			return db.Preload("Vehicle").Preload("Items")
		})
}

// Create inserts the invoice and derives its number from the new row's
// identity inside the same transaction.
func (r *invoiceRepository) Create(invoice *model.Invoice) error {
	logger.Debug("Creating invoice in database", map[string]interface{}{
		"work_order_id": invoice.WorkOrderID,
		"customer_id":   invoice.CustomerID,
		"total":         invoice.Total,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return err
		}
		invoice.InvoiceNumber = model.FormatEntityNumber(model.InvoiceNumberPrefix, invoice.ID)
		return tx.Model(invoice).Update("invoice_number", invoice.InvoiceNumber).Error
	})
	if err != nil {
		logger.Error("Failed to create invoice in database", err, map[string]interface{}{
			"work_order_id": invoice.WorkOrderID,
		})
		return err
	}

	logger.Debug("Invoice created in database", map[string]interface{}{
		"invoice_id":     invoice.ID,
		"invoice_number": invoice.InvoiceNumber,
	})
	return nil
}

func (r *invoiceRepository) FindByID(id uint) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := r.preloadInvoice().First(&invoice, id).Error; err != nil {
		logger.Error("Failed to find invoice by ID in database", err, map[string]interface{}{
			"invoice_id": id,
		})
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByWorkOrderID(workOrderID uint) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := r.preloadInvoice().
		Where("work_order_id = ?", workOrderID).
		First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindAll(status string, customerID uint) ([]model.Invoice, error) {
	logger.Debug("Finding invoices in database", map[string]interface{}{
		"status":      status,
		"customer_id": customerID,
	})

	var invoices []model.Invoice
	query := r.preloadInvoice().Order("invoice_date DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID != 0 {
		query = query.Where("customer_id = ?", customerID)
	}

	if err := query.Find(&invoices).Error; err != nil {
		logger.Error("Failed to find invoices in database", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}

	logger.Debug("Invoices found in database", map[string]interface{}{
		"count": len(invoices),
	})
	return invoices, nil
}

// FindOverdueCandidates returns unpaid or partially paid invoices whose due
// date has passed. Used by the daily billing sweep.
func (r *invoiceRepository) FindOverdueCandidates(asOf time.Time) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := r.db.
		Where("due_date < ? AND status IN ?", asOf,
			[]model.PaymentStatus{model.PaymentUnpaid, model.PaymentPartial}).
		Find(&invoices).Error; err != nil {
		logger.Error("Failed to find overdue invoice candidates in database", err)
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) Update(invoice *model.Invoice) error {
	logger.Debug("Updating invoice in database", map[string]interface{}{
		"invoice_id": invoice.ID,
		"status":     invoice.Status,
	})

	if err := r.db.Save(invoice).Error; err != nil {
		logger.Error("Failed to update invoice in database", err, map[string]interface{}{
			"invoice_id": invoice.ID,
		})
		return err
	}
	return nil
}

func (r *invoiceRepository) UpdateStatus(id uint, status model.PaymentStatus) error {
	logger.Debug("Updating invoice status in database", map[string]interface{}{
		"invoice_id": id,
		"status":     status,
	})

	if err := r.db.Model(&model.Invoice{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update invoice status in database", err, map[string]interface{}{
			"invoice_id": id,
			"status":     status,
		})
		return err
	}
	return nil
}

// AddPayment records the payment and writes the invoice's recomputed paid
// amount, balance and status in one transaction.
func (r *invoiceRepository) AddPayment(invoice *model.Invoice, payment *model.Payment) error {
	logger.Debug("Recording payment in database", map[string]interface{}{
		"invoice_id": invoice.ID,
		"amount":     payment.Amount,
		"method":     payment.Method,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return tx.Model(invoice).Updates(map[string]interface{}{
			"amount_paid": invoice.AmountPaid,
			"balance":     invoice.Balance,
			"status":      invoice.Status,
		}).Error
	})
	if err != nil {
		logger.Error("Failed to record payment in database", err, map[string]interface{}{
			"invoice_id": invoice.ID,
		})
		return err
	}

	logger.Debug("Payment recorded in database", map[string]interface{}{
		"invoice_id": invoice.ID,
		"payment_id": payment.ID,
		"balance":    invoice.Balance,
	})
	return nil
}

// RevenueBetween sums payments received in the period and counts the
// invoices they touched.
func (r *invoiceRepository) RevenueBetween(from, to time.Time) (decimal.Decimal, int64, error) {
	var result struct {
		Total        string
		InvoiceCount int64
	}
	if err := r.db.Model(&model.Payment{}).
		Select("COALESCE(SUM(amount), 0) as total, COUNT(DISTINCT invoice_id) as invoice_count").
		Where("payment_date >= ? AND payment_date < ?", from, to).
		Scan(&result).Error; err != nil {
		logger.Error("Failed to sum revenue in database", err)
		return decimal.Zero, 0, err
	}

	total, err := decimal.NewFromString(result.Total)
	if err != nil {
		return decimal.Zero, 0, err
	}
	return total, result.InvoiceCount, nil
}

func (r *invoiceRepository) PaidInvoicesBetween(from, to time.Time) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := r.preloadInvoice().
		Where("invoice_date >= ? AND invoice_date < ?", from, to).
		Order("invoice_date ASC").
		Find(&invoices).Error; err != nil {
		logger.Error("Failed to find invoices by period in database", err)
		return nil, err
	}
	return invoices, nil
}

// Delete soft-deletes the invoice together with its payments.
func (r *invoiceRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&model.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Invoice{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete invoice in database", err, map[string]interface{}{
			"invoice_id": id,
		})
		return err
	}
	return nil
}
