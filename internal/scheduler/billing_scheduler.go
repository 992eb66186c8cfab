package scheduler

import (
	"time"

	"github.com/gearboxhq/autoshop-backend/internal/app/service"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// BillingScheduler runs the daily billing sweep: overdue invoices are
// flagged and stale estimates are expired.
type BillingScheduler struct {
	cron            *cron.Cron
	schedule        string
	invoiceService  service.InvoiceService
	estimateService service.EstimateService
}

func NewBillingScheduler(
	schedule string,
	invoiceService service.InvoiceService,
	estimateService service.EstimateService,
) *BillingScheduler {
	return &BillingScheduler{
		cron:            cron.New(),
		schedule:        schedule,
		invoiceService:  invoiceService,
		estimateService: estimateService,
	}
}

func (s *BillingScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.runSweep)
	if err != nil {
		logger.Error("Failed to add cron job for billing sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Billing scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

func (s *BillingScheduler) Stop() {
	logger.Info("Stopping billing scheduler...", nil)
	s.cron.Stop()
	logger.Info("Billing scheduler stopped", nil)
}

func (s *BillingScheduler) runSweep() {
	logger.Info("Starting scheduled billing sweep", nil)

	overdue, err := s.invoiceService.MarkOverdueInvoices(time.Now())
	if err != nil {
		logger.Error("Billing sweep: failed to mark overdue invoices", err)
	}

	expired, err := s.estimateService.ExpireStaleEstimates()
	if err != nil {
		logger.Error("Billing sweep: failed to expire stale estimates", err)
	}

	logger.Info("Billing sweep finished", map[string]interface{}{
		"invoices_marked_overdue": overdue,
		"estimates_expired":       expired,
	})
}
