package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enare-prep-api/internal/service"
	"github.com/noah-isme/enare-prep-api/pkg/response"
)

type exportService interface {
	HistoryReport(ctx context.Context, format string) (*service.ReportFile, error)
}

// ExportHandler streams rendered history reports.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs an export handler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// History godoc
// @Summary Download the study history as CSV or PDF
// @Tags Exports
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /exports/history [get]
func (h *ExportHandler) History(c *gin.Context) {
	report, err := h.service.HistoryReport(c.Request.Context(), c.DefaultQuery("format", service.ReportFormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Name))
	c.Data(http.StatusOK, report.ContentType, report.Data)
}
