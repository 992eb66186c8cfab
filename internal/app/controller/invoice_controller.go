package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/service"
	apperrors "github.com/gearboxhq/autoshop-backend/internal/errors"
	"github.com/gearboxhq/autoshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type InvoiceController struct {
	invoiceService service.InvoiceService
}

func NewInvoiceController(invoiceService service.InvoiceService) *InvoiceController {
	return &InvoiceController{
		invoiceService: invoiceService,
	}
}

type CreateInvoiceRequest struct {
	WorkOrderID uint            `json:"work_order_id" binding:"required"`
	Discount    decimal.Decimal `json:"discount"`
	Tax         decimal.Decimal `json:"tax"`
	DueDays     int             `json:"due_days"`
}

type UpdateInvoiceStatusRequest struct {
	Status model.PaymentStatus `json:"status" binding:"required"`
}

type RecordPaymentRequest struct {
	Amount    decimal.Decimal     `json:"amount" binding:"required"`
	Method    model.PaymentMethod `json:"method" binding:"required"`
	Reference string              `json:"reference"`
}

// GetInvoices lists invoices with optional filters
// GET /api/v1/invoices?status=&customer_id=
func (ctrl *InvoiceController) GetInvoices(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var customerID uint
	if raw := c.Query("customer_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer_id filter"})
			return
		}
		customerID = uint(parsed)
	}

	invoices, err := ctrl.invoiceService.ListInvoices(c.Query("status"), customerID)
	if err != nil {
		log.Error("Failed to fetch invoices", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoices": invoices,
		"count":    len(invoices),
	})
}

// GetInvoiceByID returns one invoice with its payments
// GET /api/v1/invoices/:id
func (ctrl *InvoiceController) GetInvoiceByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	invoice, err := ctrl.invoiceService.GetInvoiceByID(id)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		log.Error("Failed to fetch invoice", err, map[string]interface{}{
			"invoice_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoice"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoice": invoice,
	})
}

// CreateInvoice bills a completed work order
// POST /api/v1/invoices
func (ctrl *InvoiceController) CreateInvoice(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create invoice request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	invoice, err := ctrl.invoiceService.CreateFromWorkOrder(req.WorkOrderID, req.Discount, req.Tax, req.DueDays)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkOrderNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Work order does not exist"})
		case errors.Is(err, service.ErrInvoiceAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Work order already has an invoice"})
		default:
			log.Error("Failed to create invoice", err, map[string]interface{}{
				"work_order_id": req.WorkOrderID,
			})
			apperrors.RespondWithDBError(c, err, "invoice")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"invoice": invoice,
	})
}

// RecordPayment applies a payment against the invoice
// POST /api/v1/invoices/:id/payments
func (ctrl *InvoiceController) RecordPayment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var receivedBy *uint
	if userID, exists := middleware.GetUserID(c); exists {
		receivedBy = &userID
	}

	invoice, err := ctrl.invoiceService.RecordPayment(id, req.Amount, req.Method, req.Reference, receivedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvoiceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		case errors.Is(err, service.ErrInvalidPaymentAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment amount must be positive"})
		case errors.Is(err, service.ErrInvalidPaymentMethod):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment method"})
		default:
			log.Error("Failed to record payment", err, map[string]interface{}{
				"invoice_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"invoice": invoice,
	})
}

// UpdateInvoiceStatus writes a status directly, e.g. marking a refund
// PATCH /api/v1/invoices/:id/status
func (ctrl *InvoiceController) UpdateInvoiceStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	var req UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := ctrl.invoiceService.UpdateStatus(id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvoiceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		case errors.Is(err, service.ErrInvalidInvoiceStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown invoice status"})
		default:
			log.Error("Failed to update invoice status", err, map[string]interface{}{
				"invoice_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice status updated successfully",
	})
}

// DeleteInvoice soft deletes an invoice
// DELETE /api/v1/invoices/:id
func (ctrl *InvoiceController) DeleteInvoice(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	if err := ctrl.invoiceService.DeleteInvoice(id); err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		log.Error("Failed to delete invoice", err, map[string]interface{}{
			"invoice_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice deleted successfully",
	})
}
