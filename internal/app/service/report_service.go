package service

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var ErrInvalidReportPeriod = errors.New("report period end must be after start")

// RevenueSummary aggregates billing activity over a period. Revenue counts
// money actually received (payments), not amounts invoiced.
type RevenueSummary struct {
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	InvoicesPaid     int64           `json:"invoices_paid"`
	InvoicesIssued   int             `json:"invoices_issued"`
	TotalInvoiced    decimal.Decimal `json:"total_invoiced"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}

type ReportService interface {
	RevenueBetween(from, to time.Time) (*RevenueSummary, error)
	ExportRevenueXLSX(from, to time.Time) ([]byte, string, error)
}

type reportService struct {
	invoiceRepo repository.InvoiceRepository
}

func NewReportService(invoiceRepo repository.InvoiceRepository) ReportService {
	return &reportService{invoiceRepo: invoiceRepo}
}

func (s *reportService) RevenueBetween(from, to time.Time) (*RevenueSummary, error) {
	if !to.After(from) {
		return nil, ErrInvalidReportPeriod
	}

	logger.Debug("Building revenue summary", map[string]interface{}{
		"from": from,
		"to":   to,
	})

	totalRevenue, paidCount, err := s.invoiceRepo.RevenueBetween(from, to)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.PaidInvoicesBetween(from, to)
	if err != nil {
		return nil, err
	}

	totalInvoiced := decimal.Zero
	totalOutstanding := decimal.Zero
	for _, invoice := range invoices {
		totalInvoiced = totalInvoiced.Add(invoice.Total)
		if invoice.Balance.IsPositive() {
			totalOutstanding = totalOutstanding.Add(invoice.Balance)
		}
	}

	summary := &RevenueSummary{
		From:             from,
		To:               to,
		TotalRevenue:     totalRevenue,
		InvoicesPaid:     paidCount,
		InvoicesIssued:   len(invoices),
		TotalInvoiced:    totalInvoiced.Round(2),
		TotalOutstanding: totalOutstanding.Round(2),
	}

	logger.Info("Revenue summary built", map[string]interface{}{
		"total_revenue":   summary.TotalRevenue,
		"invoices_issued": summary.InvoicesIssued,
	})
	return summary, nil
}

// ExportRevenueXLSX renders the period's invoices into a spreadsheet and
// returns the file bytes with a suggested filename.
func (s *reportService) ExportRevenueXLSX(from, to time.Time) ([]byte, string, error) {
	summary, err := s.RevenueBetween(from, to)
	if err != nil {
		return nil, "", err
	}

	invoices, err := s.invoiceRepo.PaidInvoicesBetween(from, to)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Revenue"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Invoice Number", "Invoice Date", "Due Date", "Customer",
		"Work Order", "Subtotal", "Discount", "Tax", "Total",
		"Amount Paid", "Balance", "Status",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, invoice := range invoices {
		values := []interface{}{
			invoice.InvoiceNumber,
			invoice.InvoiceDate.Format("2006-01-02"),
			invoice.DueDate.Format("2006-01-02"),
			invoice.Customer.Name,
			invoice.WorkOrder.WorkOrderNumber,
			invoice.SubTotal.InexactFloat64(),
			invoice.Discount.InexactFloat64(),
			invoice.Tax.InexactFloat64(),
			invoice.Total.InexactFloat64(),
			invoice.AmountPaid.InexactFloat64(),
			invoice.Balance.InexactFloat64(),
			string(invoice.Status),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	// Summary block under the table
	summaryRow := len(invoices) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total revenue (payments received)")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), summary.TotalRevenue.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+1), "Total invoiced")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow+1), summary.TotalInvoiced.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+2), "Total outstanding")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow+2), summary.TotalOutstanding.InexactFloat64())

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to write revenue export", err)
		return nil, "", err
	}

	filename := fmt.Sprintf("revenue_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))

	logger.Info("Revenue export generated", map[string]interface{}{
		"filename": filename,
		"invoices": len(invoices),
	})
	return buf.Bytes(), filename, nil
}
