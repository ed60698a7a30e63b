package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Moti-Eli/edu-plus/internal/service"
	appErrors "github.com/Moti-Eli/edu-plus/pkg/errors"
	"github.com/Moti-Eli/edu-plus/pkg/response"
)

// StatsHandler exposes the reconciliation statistics and export endpoints.
type StatsHandler struct {
	stats  *service.StatisticsService
	export *service.ExportService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(stats *service.StatisticsService, export *service.ExportService) *StatsHandler {
	return &StatsHandler{stats: stats, export: export}
}

// Get godoc
// @Summary Attendance statistics
// @Description Reconciled instructor and school rollups for a period. Empty period selects the latest month, "all" disables filtering
// @Tags Statistics
// @Produce json
// @Param period query string false "Period (YYYY-MM or all)"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /stats [get]
func (h *StatsHandler) Get(c *gin.Context) {
	result, err := h.stats.Get(c.Request.Context(), c.Query("period"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result, nil)
}

// Export godoc
// @Summary Export statistics
// @Description Download the reconciled statistics as CSV or PDF
// @Tags Statistics
// @Produce text/csv
// @Produce application/pdf
// @Param period query string false "Period (YYYY-MM or all)"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /stats/export [get]
func (h *StatsHandler) Export(c *gin.Context) {
	period := c.Query("period")

	var (
		result *service.ExportResult
		err    error
	)
	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		result, err = h.export.ExportCSV(c.Request.Context(), period)
	case "pdf":
		result, err = h.export.ExportPDF(c.Request.Context(), period)
	default:
		err = appErrors.ErrValidation.Clone("format must be csv or pdf")
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
