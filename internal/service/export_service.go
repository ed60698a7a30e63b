package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/Moti-Eli/edu-plus/pkg/export"
)

type statisticsProvider interface {
	Get(ctx context.Context, period string) (*StatisticsResult, error)
}

type csvRenderer interface {
	RenderSections(sections []export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(sections []export.Dataset, title string) ([]byte, error)
}

// ExportResult is a rendered statistics file ready to stream to the client.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the reconciled statistics as downloadable CSV or PDF
// files. CSV output carries a UTF-8 BOM so spreadsheets render the Hebrew
// text correctly.
type ExportService struct {
	stats  statisticsProvider
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(stats statisticsProvider, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{stats: stats, csv: csv, pdf: pdf, logger: logger}
}

// ExportCSV renders the statistics for a period as a sectioned CSV file.
func (s *ExportService) ExportCSV(ctx context.Context, period string) (*ExportResult, error) {
	result, err := s.stats.Get(ctx, period)
	if err != nil {
		return nil, err
	}
	payload, err := s.csv.RenderSections(buildStatsSections(result))
	if err != nil {
		return nil, err
	}
	s.logger.Info("statistics exported", zap.String("format", "csv"), zap.String("period", periodLabel(result.Period)))
	return &ExportResult{
		Filename:    fmt.Sprintf("attendance-stats-%s.csv", periodLabel(result.Period)),
		ContentType: "text/csv; charset=utf-8",
		Payload:     payload,
	}, nil
}

// ExportPDF renders the statistics for a period as a PDF report.
func (s *ExportService) ExportPDF(ctx context.Context, period string) (*ExportResult, error) {
	result, err := s.stats.Get(ctx, period)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Attendance Statistics %s", periodLabel(result.Period))
	payload, err := s.pdf.Render(buildStatsSections(result), title)
	if err != nil {
		return nil, err
	}
	s.logger.Info("statistics exported", zap.String("format", "pdf"), zap.String("period", periodLabel(result.Period)))
	return &ExportResult{
		Filename:    fmt.Sprintf("attendance-stats-%s.pdf", periodLabel(result.Period)),
		ContentType: "application/pdf",
		Payload:     payload,
	}, nil
}

func buildStatsSections(result *StatisticsResult) []export.Dataset {
	instructorRows := make([]map[string]string, 0, len(result.Instructors))
	for _, entry := range result.Instructors {
		instructorRows = append(instructorRows, map[string]string{
			"name":               entry.Name,
			"email":              entry.Email,
			"instructor_hours":   formatHours(entry.InstructorHours),
			"instructor_reports": strconv.Itoa(entry.InstructorReports),
			"admin_hours":        formatHours(entry.AdminHours),
			"admin_reports":      strconv.Itoa(entry.AdminReports),
			"mismatch":           mismatchMark(entry.Mismatch),
		})
	}

	schoolRows := make([]map[string]string, 0, len(result.Schools))
	for _, entry := range result.Schools {
		schoolRows = append(schoolRows, map[string]string{
			"school":             entry.School,
			"city":               entry.City,
			"instructor_hours":   formatHours(entry.InstructorHours),
			"instructor_reports": strconv.Itoa(entry.InstructorReports),
			"admin_hours":        formatHours(entry.AdminHours),
			"admin_reports":      strconv.Itoa(entry.AdminReports),
			"mismatch":           mismatchMark(entry.Mismatch),
		})
	}

	totalsRow := map[string]string{
		"total_hours":        formatHours(result.Totals.TotalHours),
		"active_instructors": strconv.Itoa(result.Totals.ActiveInstructors),
		"active_schools":     strconv.Itoa(result.Totals.ActiveSchools),
	}

	return []export.Dataset{
		{
			Label:   "סיכום מדריכים",
			Headers: []string{"name", "email", "instructor_hours", "instructor_reports", "admin_hours", "admin_reports", "mismatch"},
			Rows:    instructorRows,
		},
		{
			Label:   "סיכום בתי ספר",
			Headers: []string{"school", "city", "instructor_hours", "instructor_reports", "admin_hours", "admin_reports", "mismatch"},
			Rows:    schoolRows,
		},
		{
			Label:   "סיכום כללי",
			Headers: []string{"total_hours", "active_instructors", "active_schools"},
			Rows:    []map[string]string{totalsRow},
		},
	}
}

func periodLabel(period string) string {
	if period == "" {
		return PeriodAllTime
	}
	return period
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

func mismatchMark(mismatch bool) string {
	if mismatch {
		return "!"
	}
	return ""
}
