package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gearboxhq/autoshop-backend/internal/app/service"
	"github.com/gearboxhq/autoshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// parseReportPeriod reads from/to query params. Defaults to the last 30 days
// when both are omitted.
func parseReportPeriod(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", raw)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid from date: %w", err)
			}
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", raw)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid to date: %w", err)
			}
		}
		to = parsed
	}

	return from, to, nil
}

// GetRevenueSummary returns the revenue summary for a period
// GET /api/v1/reports/revenue?from=&to=
func (ctrl *ReportController) GetRevenueSummary(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	from, to, err := parseReportPeriod(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid report period",
			"details": err.Error(),
		})
		return
	}

	summary, err := ctrl.reportService.RevenueBetween(from, to)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReportPeriod) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Report period end must be after start"})
			return
		}
		log.Error("Failed to build revenue summary", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build revenue summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
	})
}

// ExportRevenue streams the revenue report as an XLSX download
// GET /api/v1/reports/revenue/export?from=&to=
func (ctrl *ReportController) ExportRevenue(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	from, to, err := parseReportPeriod(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid report period",
			"details": err.Error(),
		})
		return
	}

	data, filename, err := ctrl.reportService.ExportRevenueXLSX(from, to)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReportPeriod) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Report period end must be after start"})
			return
		}
		log.Error("Failed to export revenue report", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export revenue report"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
