package models

import "time"

// InstructorSummary is the reconciled per-instructor rollup for a period.
// Mismatch is an exact inequality between the two hour totals, no tolerance.
type InstructorSummary struct {
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	InstructorHours   float64 `json:"instructor_hours"`
	InstructorReports int     `json:"instructor_reports"`
	AdminHours        float64 `json:"admin_hours"`
	AdminReports      int     `json:"admin_reports"`
	Mismatch          bool    `json:"mismatch"`
}

// SchoolSummary is the reconciled per-school rollup for a period.
type SchoolSummary struct {
	School            string  `json:"school"`
	City              string  `json:"city"`
	InstructorHours   float64 `json:"instructor_hours"`
	InstructorReports int     `json:"instructor_reports"`
	AdminHours        float64 `json:"admin_hours"`
	AdminReports      int     `json:"admin_reports"`
	Mismatch          bool    `json:"mismatch"`
}

// StatisticsTotals are the scalar figures shown alongside the summary tables,
// computed over the period-filtered instructor records only.
type StatisticsTotals struct {
	TotalHours        float64 `json:"total_hours"`
	ActiveInstructors int     `json:"active_instructors"`
	ActiveSchools     int     `json:"active_schools"`
}

// SystemMetrics is a lightweight snapshot of instrumentation counters,
// exposed for operational dashboards.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"average_db_query_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
