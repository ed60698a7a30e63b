package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Moti-Eli/edu-plus/internal/models"
)

type stubStatsProvider struct {
	result *StatisticsResult
}

func (s *stubStatsProvider) Get(ctx context.Context, period string) (*StatisticsResult, error) {
	return s.result, nil
}

func newExportServiceForTest() *ExportService {
	stats := &stubStatsProvider{result: &StatisticsResult{
		Instructors: []models.InstructorSummary{
			{Name: "אורה לוי", Email: "ora@example.com", InstructorHours: 3, InstructorReports: 1, AdminHours: 2.5, AdminReports: 1, Mismatch: true},
		},
		Schools: []models.SchoolSummary{
			{School: "ענבלים", City: "מודיעין", InstructorHours: 3, InstructorReports: 1, AdminHours: 2.5, AdminReports: 1, Mismatch: true},
		},
		Totals:  models.StatisticsTotals{TotalHours: 3, ActiveInstructors: 1, ActiveSchools: 1},
		Periods: []string{"2025-06"},
		Period:  "2025-06",
	}}
	return NewExportService(stats, nil, nil, zap.NewNop())
}

func TestExportServiceCSVSections(t *testing.T) {
	svc := newExportServiceForTest()

	result, err := svc.ExportCSV(context.Background(), "2025-06")
	require.NoError(t, err)
	assert.Equal(t, "attendance-stats-2025-06.csv", result.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", result.ContentType)

	payload := string(result.Payload)
	assert.True(t, strings.HasPrefix(payload, "\xEF\xBB\xBF"), "csv should start with a UTF-8 BOM")
	assert.Contains(t, payload, "=== סיכום מדריכים ===")
	assert.Contains(t, payload, "=== סיכום בתי ספר ===")
	assert.Contains(t, payload, "=== סיכום כללי ===")
	assert.Contains(t, payload, "אורה לוי")
	assert.Contains(t, payload, "2.5")
}

func TestExportServicePDF(t *testing.T) {
	svc := newExportServiceForTest()

	result, err := svc.ExportPDF(context.Background(), "2025-06")
	require.NoError(t, err)
	assert.Equal(t, "attendance-stats-2025-06.pdf", result.Filename)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Payload), "%PDF"))
}

func TestExportServiceAllTimeFilename(t *testing.T) {
	stats := &stubStatsProvider{result: &StatisticsResult{Period: ""}}
	svc := NewExportService(stats, nil, nil, zap.NewNop())

	result, err := svc.ExportCSV(context.Background(), PeriodAllTime)
	require.NoError(t, err)
	assert.Equal(t, "attendance-stats-all.csv", result.Filename)
}
