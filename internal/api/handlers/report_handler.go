// server/internal/api/handlers/report_handler.go
package handlers

import (
	"net/http"
	"time"

	"gesla-logistics-api-server/internal/loads"
	"gesla-logistics-api-server/internal/report"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Service *loads.Service
}

// DownloadDashboardReport streams the dashboard aggregates as an .xlsx file.
func (h *ReportHandler) DownloadDashboardReport(c *gin.Context) {
	active, err := h.Service.ListActive(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query loads"})
		return
	}

	now := time.Now()
	summary := loads.Summarize(active, now)
	carriers := loads.Aggregate(active, now, loads.ByCarrier)
	monthly := loads.Aggregate(active, now, loads.ByMonth)

	f, err := report.BuildDashboardWorkbook(summary, carriers, monthly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report", "details": err.Error()})
		return
	}

	filename := report.Filename(now.Format("2006-01"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stream report"})
		return
	}
}
