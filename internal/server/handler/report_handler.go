package handler

import (
	"log/slog"
	"time"

	"github.com/busshop-tracker/internal/server/service"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles HTTP requests for reports
type ReportHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(logger *slog.Logger, reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// Weekly returns the per-mechanic rollup for the current week
func (h *ReportHandler) Weekly(c *gin.Context) {
	weekly, err := h.reportService.WeeklyReport(c.Request.Context(), time.Now())
	if err != nil {
		h.logger.Error("Failed to build weekly report", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, weekly)
}
