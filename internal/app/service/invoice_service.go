package service

import (
	"errors"
	"time"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvoiceAlreadyExists = errors.New("work order already has an invoice")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")
	ErrInvalidInvoiceStatus = errors.New("invalid invoice status")
)

type InvoiceService interface {
	CreateFromWorkOrder(workOrderID uint, discount, tax decimal.Decimal, dueDays int) (*model.Invoice, error)
	GetInvoiceByID(id uint) (*model.Invoice, error)
	ListInvoices(status string, customerID uint) ([]model.Invoice, error)
	RecordPayment(invoiceID uint, amount decimal.Decimal, method model.PaymentMethod, reference string, receivedBy *uint) (*model.Invoice, error)
	UpdateStatus(id uint, status model.PaymentStatus) error
	MarkOverdueInvoices(asOf time.Time) (int, error)
	DeleteInvoice(id uint) error
}

type invoiceService struct {
	invoiceRepo    repository.InvoiceRepository
	workOrderRepo  repository.WorkOrderRepository
	defaultDueDays int
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	workOrderRepo repository.WorkOrderRepository,
	defaultDueDays int,
) InvoiceService {
	if defaultDueDays <= 0 {
		defaultDueDays = 14
	}
	return &invoiceService{
		invoiceRepo:    invoiceRepo,
		workOrderRepo:  workOrderRepo,
		defaultDueDays: defaultDueDays,
	}
}

func validPaymentMethod(method model.PaymentMethod) bool {
	for _, m := range model.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// CreateFromWorkOrder bills a work order. A work order carries at most one
// invoice; totals are derived from its line items at creation time.
func (s *invoiceService) CreateFromWorkOrder(workOrderID uint, discount, tax decimal.Decimal, dueDays int) (*model.Invoice, error) {
	logger.Info("Creating invoice from work order", map[string]interface{}{
		"work_order_id": workOrderID,
	})

	workOrder, err := s.workOrderRepo.FindByID(workOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkOrderNotFound
		}
		return nil, err
	}

	existing, err := s.invoiceRepo.FindByWorkOrderID(workOrderID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		logger.Warn("Work order already invoiced", map[string]interface{}{
			"work_order_id": workOrderID,
			"invoice_id":    existing.ID,
		})
		return nil, ErrInvoiceAlreadyExists
	}

	lineTotals := make([]decimal.Decimal, 0, len(workOrder.Items))
	for _, item := range workOrder.Items {
		lineTotals = append(lineTotals, item.Total)
	}
	subTotal := model.SumLineTotals(lineTotals)
	total := model.DocumentTotal(subTotal, discount, tax)

	if dueDays <= 0 {
		dueDays = s.defaultDueDays
	}
	now := time.Now()

	invoice := &model.Invoice{
		WorkOrderID: workOrderID,
		CustomerID:  workOrder.CustomerID,
		InvoiceDate: now,
		DueDate:     now.AddDate(0, 0, dueDays),
		SubTotal:    subTotal,
		Discount:    discount,
		Tax:         tax,
		Total:       total,
		AmountPaid:  decimal.Zero,
		Balance:     total,
		Status:      model.PaymentUnpaid,
	}

	if err := s.invoiceRepo.Create(invoice); err != nil {
		logger.Error("Failed to create invoice", err, map[string]interface{}{
			"work_order_id": workOrderID,
		})
		return nil, err
	}

	logger.Info("Invoice created successfully", map[string]interface{}{
		"invoice_id":     invoice.ID,
		"invoice_number": invoice.InvoiceNumber,
		"total":          invoice.Total,
	})
	return invoice, nil
}

func (s *invoiceService) GetInvoiceByID(id uint) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) ListInvoices(status string, customerID uint) ([]model.Invoice, error) {
	return s.invoiceRepo.FindAll(status, customerID)
}

// RecordPayment applies a payment and rederives the invoice's paid amount,
// balance and status. Amounts above the outstanding balance are accepted;
// the balance simply goes negative until a refund is issued.
func (s *invoiceService) RecordPayment(invoiceID uint, amount decimal.Decimal, method model.PaymentMethod, reference string, receivedBy *uint) (*model.Invoice, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPaymentAmount
	}
	if !validPaymentMethod(method) {
		return nil, ErrInvalidPaymentMethod
	}

	invoice, err := s.invoiceRepo.FindByID(invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}

	if reference == "" {
		reference = uuid.NewString()
	}

	payment := &model.Payment{
		InvoiceID:   invoiceID,
		Amount:      amount.Round(2),
		Method:      method,
		Reference:   reference,
		PaymentDate: time.Now(),
		ReceivedBy:  receivedBy,
	}

	invoice.AmountPaid = invoice.AmountPaid.Add(payment.Amount).Round(2)
	invoice.Balance = model.InvoiceBalance(invoice.Total, invoice.AmountPaid)
	invoice.Status = model.DerivePaymentStatus(invoice.Total, invoice.AmountPaid)

	if err := s.invoiceRepo.AddPayment(invoice, payment); err != nil {
		logger.Error("Failed to record payment", err, map[string]interface{}{
			"invoice_id": invoiceID,
			"amount":     amount,
		})
		return nil, err
	}

	logger.Info("Payment recorded successfully", map[string]interface{}{
		"invoice_id": invoiceID,
		"payment_id": payment.ID,
		"amount":     payment.Amount,
		"balance":    invoice.Balance,
		"status":     invoice.Status,
	})

	return s.GetInvoiceByID(invoiceID)
}

func validPaymentStatus(status model.PaymentStatus) bool {
	for _, s := range model.PaymentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// UpdateStatus writes the new status without constraining the transition.
// Refunds are recorded this way; the next payment rederives the status.
func (s *invoiceService) UpdateStatus(id uint, status model.PaymentStatus) error {
	if !validPaymentStatus(status) {
		return ErrInvalidInvoiceStatus
	}

	if _, err := s.invoiceRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvoiceNotFound
		}
		return err
	}

	if err := s.invoiceRepo.UpdateStatus(id, status); err != nil {
		return err
	}

	logger.Info("Invoice status updated", map[string]interface{}{
		"invoice_id": id,
		"status":     status,
	})
	return nil
}

// MarkOverdueInvoices flags unpaid and partially paid invoices past their due
// date. Returns the number of invoices touched.
func (s *invoiceService) MarkOverdueInvoices(asOf time.Time) (int, error) {
	candidates, err := s.invoiceRepo.FindOverdueCandidates(asOf)
	if err != nil {
		return 0, err
	}

	marked := 0
	for i := range candidates {
		candidates[i].Status = model.PaymentOverdue
		if err := s.invoiceRepo.Update(&candidates[i]); err != nil {
			logger.Error("Failed to mark invoice overdue", err, map[string]interface{}{
				"invoice_id": candidates[i].ID,
			})
			return marked, err
		}
		marked++
	}

	if marked > 0 {
		logger.Info("Overdue invoices marked", map[string]interface{}{
			"count": marked,
		})
	}
	return marked, nil
}

func (s *invoiceService) DeleteInvoice(id uint) error {
	if _, err := s.invoiceRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvoiceNotFound
		}
		return err
	}

	if err := s.invoiceRepo.Delete(id); err != nil {
		logger.Error("Failed to delete invoice", err, map[string]interface{}{
			"invoice_id": id,
		})
		return err
	}

	logger.Info("Invoice deleted", map[string]interface{}{
		"invoice_id": id,
	})
	return nil
}
