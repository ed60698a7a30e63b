package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moti-Eli/edu-plus/internal/models"
)

func record(email, name, school, city, date string, hours float64) models.AttendanceRecord {
	return models.AttendanceRecord{
		InstructorEmail: email,
		InstructorName:  name,
		SchoolName:      school,
		City:            city,
		Date:            date,
		Hours:           models.Hours(hours),
	}
}

func adminRecord(name, email, school, city, date string, hours float64) models.AdminAttendanceRecord {
	return models.AdminAttendanceRecord{
		InstructorName:  name,
		InstructorEmail: email,
		SchoolName:      school,
		City:            city,
		Date:            date,
		Hours:           models.Hours(hours),
	}
}

func activeUser(email, name string, role models.UserRole) models.UserProfile {
	return models.UserProfile{Email: email, FullName: name, Role: role, Active: true}
}

func findInstructor(t *testing.T, summaries []models.InstructorSummary, name string) models.InstructorSummary {
	t.Helper()
	for _, s := range summaries {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("no summary for %q", name)
	return models.InstructorSummary{}
}

func findSchool(t *testing.T, summaries []models.SchoolSummary, school string) models.SchoolSummary {
	t.Helper()
	for _, s := range summaries {
		if s.School == school {
			return s
		}
	}
	t.Fatalf("no summary for school %q", school)
	return models.SchoolSummary{}
}

func TestAvailablePeriodsSortedDescending(t *testing.T) {
	records := []models.AttendanceRecord{
		record("a@x.il", "א", "ענבלים", "מודיעין", "2025-01-15", 2),
		record("a@x.il", "א", "ענבלים", "מודיעין", "2025-03-02", 2),
		record("b@x.il", "ב", "ענבלים", "מודיעין", "2025-01-31", 3),
		record("b@x.il", "ב", "ענבלים", "מודיעין", "not-a-date", 3),
		record("b@x.il", "ב", "ענבלים", "מודיעין", "2024-12-01", 1),
	}

	periods := AvailablePeriods(records)
	assert.Equal(t, []string{"2025-03", "2025-01", "2024-12"}, periods)
}

func TestEffectivePeriodDefaultsToMostRecent(t *testing.T) {
	periods := []string{"2025-03", "2025-01"}

	assert.Equal(t, "2025-03", EffectivePeriod(periods, ""))
	assert.Equal(t, "2025-01", EffectivePeriod(periods, "2025-01"))
	assert.Equal(t, "", EffectivePeriod(periods, PeriodAllTime))
	assert.Equal(t, "", EffectivePeriod(nil, ""))
}

func TestEffectivePeriodUnknownKeyFallsBack(t *testing.T) {
	periods := []string{"2025-03", "2025-01"}

	assert.Equal(t, "2025-03", EffectivePeriod(periods, "1999-01"))
	assert.Equal(t, "", EffectivePeriod(nil, "1999-01"))
}

func TestComputeStatisticsPeriodFilterBoundaries(t *testing.T) {
	in := StatisticsInput{
		InstructorRecords: []models.AttendanceRecord{
			record("a@x.il", "אורה לוי", "ענבלים", "מודיעין", "2025-01-31", 4),
			record("a@x.il", "אורה לוי", "ענבלים", "מודיעין", "2025-02-01", 6),
		},
		Period: "2025-01",
	}

	result := ComputeStatistics(in)
	summary := findInstructor(t, result.Instructors, "אורה לוי")
	assert.Equal(t, 4.0, summary.InstructorHours)
	assert.Equal(t, 1, summary.InstructorReports)
	assert.Equal(t, 4.0, result.Totals.TotalHours)
}

func TestComputeStatisticsUnionCompleteness(t *testing.T) {
	in := StatisticsInput{
		ActiveUsers: []models.UserProfile{
			activeUser("idle@x.il", "מדריך רדום", models.RoleInstructor),
			activeUser("admin@x.il", "מנהלת", models.RoleAdmin),
		},
		InstructorRecords: []models.AttendanceRecord{
			record("ghost@x.il", "רוח", "ענבלים", "מודיעין", "2025-01-10", 2),
		},
		AdminRecords: []models.AdminAttendanceRecord{
			adminRecord("חדש לגמרי", "", "ענבלים", "מודיעין", "2025-01-11", 3),
		},
		Period: "2025-01",
	}

	result := ComputeStatistics(in)

	names := make(map[string]int)
	for _, s := range result.Instructors {
		names[s.Name]++
	}
	for _, expected := range []string{"מדריך רדום", "מנהלת", "רוח", "חדש לגמרי"} {
		assert.Equal(t, 1, names[expected], "identity %q should appear exactly once", expected)
	}

	idle := findInstructor(t, result.Instructors, "מדריך רדום")
	assert.Zero(t, idle.InstructorHours)
	assert.Zero(t, idle.AdminReports)
}

func TestComputeStatisticsMismatchFlag(t *testing.T) {
	in := StatisticsInput{
		ActiveUsers: []models.UserProfile{
			activeUser("a@x.il", "אורה לוי", models.RoleInstructor),
			activeUser("b@x.il", "בני גל", models.RoleInstructor),
			activeUser("c@x.il", "גילה רם", models.RoleInstructor),
		},
		InstructorRecords: []models.AttendanceRecord{
			record("a@x.il", "אורה לוי", "ענבלים", "מודיעין", "2025-01-10", 4),
			record("b@x.il", "בני גל", "ענבלים", "מודיעין", "2025-01-10", 5),
		},
		AdminRecords: []models.AdminAttendanceRecord{
			adminRecord("אורה לוי", "a@x.il", "ענבלים", "מודיעין", "2025-01-10", 4),
			adminRecord("בני גל", "b@x.il", "ענבלים", "מודיעין", "2025-01-10", 3),
		},
		Period: "2025-01",
	}

	result := ComputeStatistics(in)

	assert.False(t, findInstructor(t, result.Instructors, "אורה לוי").Mismatch, "equal hours never flag")
	assert.True(t, findInstructor(t, result.Instructors, "בני גל").Mismatch)
	assert.False(t, findInstructor(t, result.Instructors, "גילה רם").Mismatch, "zero on both sides is not a mismatch")
}

func TestComputeStatisticsIdentityFallbackByName(t *testing.T) {
	// Admin rows usually lack the email; the merge must still land them on
	// the row seeded from the roster by full-name match.
	in := StatisticsInput{
		ActiveUsers: []models.UserProfile{
			activeUser("a@x.il", "אורה לוי", models.RoleInstructor),
		},
		AdminRecords: []models.AdminAttendanceRecord{
			adminRecord("אורה לוי", "", "ענבלים", "מודיעין", "2025-01-10", 3),
		},
		Period: "2025-01",
	}

	result := ComputeStatistics(in)
	require.Len(t, result.Instructors, 1)
	assert.Equal(t, "a@x.il", result.Instructors[0].Email)
	assert.Equal(t, 3.0, result.Instructors[0].AdminHours)
	assert.Equal(t, 1, result.Instructors[0].AdminReports)
}

func TestComputeStatisticsConservation(t *testing.T) {
	in := StatisticsInput{
		InstructorRecords: []models.AttendanceRecord{
			record("a@x.il", "אורה לוי", "ענבלים", "מודיעין", "2025-01-10", 2.5),
			record("a@x.il", "אורה לוי", "ניצנים", "רעות", "2025-01-12", 3),
			record("b@x.il", "בני גל", "ענבלים", "מודיעין", "2025-01-14", 4),
		},
		Period: "2025-01",
	}

	result := ComputeStatistics(in)

	var summed float64
	for _, s := range result.Instructors {
		summed += s.InstructorHours
	}
	assert.Equal(t, 9.5, summed)
	assert.Equal(t, 9.5, result.Totals.TotalHours)
	assert.Equal(t, 2, result.Totals.ActiveInstructors)
	assert.Equal(t, 2, result.Totals.ActiveSchools)
}

func TestComputeStatisticsSchoolUniverseFromSchedule(t *testing.T) {
	in := StatisticsInput{
		Schedules: []models.ScheduleEntry{
			{SchoolName: "ענבלים", City: "מודיעין", DayOfWeek: "ראשון"},
			{SchoolName: "ענבלים", City: "אחרת", DayOfWeek: "שני"},
			{SchoolName: "ניצנים", City: "רעות", DayOfWeek: "שני"},
		},
		InstructorRecords: []models.AttendanceRecord{
			record("a@x.il", "אורה לוי", "אשכולות", "לוד", "2025-01-10", 2),
		},
		Period: "2025-01",
	}

	result := ComputeStatistics(in)

	scheduled := findSchool(t, result.Schools, "ענבלים")
	assert.Equal(t, "מודיעין", scheduled.City, "first city wins on duplicate school names")
	assert.Zero(t, scheduled.InstructorHours)
	assert.False(t, scheduled.Mismatch)

	zero := findSchool(t, result.Schools, "ניצנים")
	assert.Zero(t, zero.InstructorReports)

	adhoc := findSchool(t, result.Schools, "אשכולות")
	assert.Equal(t, 2.0, adhoc.InstructorHours)
	assert.True(t, adhoc.Mismatch)
}

func TestComputeStatisticsIdempotent(t *testing.T) {
	in := StatisticsInput{
		ActiveUsers: []models.UserProfile{
			activeUser("a@x.il", "אורה לוי", models.RoleInstructor),
		},
		InstructorRecords: []models.AttendanceRecord{
			record("a@x.il", "אורה לוי", "ענבלים", "מודיעין", "2025-01-10", 2),
		},
		AdminRecords: []models.AdminAttendanceRecord{
			adminRecord("אורה לוי", "", "ענבלים", "מודיעין", "2025-01-10", 2),
		},
		Schedules: []models.ScheduleEntry{
			{SchoolName: "ענבלים", City: "מודיעין", DayOfWeek: "ראשון"},
		},
		Period: "2025-01",
	}

	first := ComputeStatistics(in)
	second := ComputeStatistics(in)
	assert.Equal(t, first, second)
}

func TestComputeStatisticsEmptyInputs(t *testing.T) {
	result := ComputeStatistics(StatisticsInput{})

	assert.Empty(t, result.Instructors)
	assert.Empty(t, result.Schools)
	assert.Empty(t, result.Periods)
	assert.Zero(t, result.Totals.TotalHours)
}

func TestComputeStatisticsUnparseableDateWithAllTimeView(t *testing.T) {
	in := StatisticsInput{
		InstructorRecords: []models.AttendanceRecord{
			record("a@x.il", "אורה לוי", "ענבלים", "מודיעין", "", 2),
			record("a@x.il", "אורה לוי", "ענבלים", "מודיעין", "2025-01-10", 3),
		},
	}

	// All time: the dateless record still counts.
	allTime := ComputeStatistics(in)
	assert.Equal(t, 5.0, allTime.Totals.TotalHours)

	// Period filter: a record belonging to no period is excluded.
	in.Period = "2025-01"
	filtered := ComputeStatistics(in)
	assert.Equal(t, 3.0, filtered.Totals.TotalHours)
}

func TestComputeStatisticsInstructorOrderIsCollated(t *testing.T) {
	in := StatisticsInput{
		ActiveUsers: []models.UserProfile{
			activeUser("g@x.il", "גילה רם", models.RoleInstructor),
			activeUser("a@x.il", "אורה לוי", models.RoleInstructor),
			activeUser("b@x.il", "בני גל", models.RoleInstructor),
		},
	}

	result := ComputeStatistics(in)
	require.Len(t, result.Instructors, 3)
	assert.Equal(t, "אורה לוי", result.Instructors[0].Name)
	assert.Equal(t, "בני גל", result.Instructors[1].Name)
	assert.Equal(t, "גילה רם", result.Instructors[2].Name)
}
