package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moti-Eli/edu-plus/internal/models"
	appErrors "github.com/Moti-Eli/edu-plus/pkg/errors"
)

var parserNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestParseInstructorCommand(t *testing.T) {
	parsed, err := ParseAttendanceCommand("לימדתי במודיעין בענבלים מ-8 עד 10", models.RoleInstructor, parserNow)
	require.NoError(t, err)

	assert.Equal(t, "מודיעין", parsed.City)
	assert.Equal(t, "ענבלים", parsed.School)
	assert.Equal(t, "2025-06-15", parsed.Date)
	assert.Equal(t, "08:00", parsed.StartTime)
	assert.Equal(t, "10:00", parsed.EndTime)
	assert.Equal(t, 2, parsed.Hours)
	assert.Empty(t, parsed.InstructorName)
}

func TestParseInstructorCommandWithDatePrefix(t *testing.T) {
	parsed, err := ParseAttendanceCommand("בתאריך 01.01.2025 לימדתי במודיעין בענבלים מ-8 עד 10", models.RoleInstructor, parserNow)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-01", parsed.Date)
	assert.Equal(t, "ענבלים", parsed.School)
	assert.Equal(t, 2, parsed.Hours)
}

func TestParseInstructorCommandSlashDate(t *testing.T) {
	parsed, err := ParseAttendanceCommand("בתאריך 5/3/2025 עבדתי ברעות בניצנים מ-9 עד 12", models.RoleInstructor, parserNow)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-05", parsed.Date)
	assert.Equal(t, "רעות", parsed.City)
	assert.Equal(t, "ניצנים", parsed.School)
	assert.Equal(t, 3, parsed.Hours)
}

func TestParseAdminCommandExtractsInstructorName(t *testing.T) {
	parsed, err := ParseAttendanceCommand("אורה לוי לימדה במודיעין בענבלים מ-8 עד 10", models.RoleAdmin, parserNow)
	require.NoError(t, err)

	assert.Equal(t, "אורה לוי", parsed.InstructorName)
	assert.Equal(t, "מודיעין", parsed.City)
	assert.Equal(t, "ענבלים", parsed.School)
	assert.Equal(t, 2, parsed.Hours)
}

func TestParseCommandCollapsesWhitespace(t *testing.T) {
	parsed, err := ParseAttendanceCommand("  לימדתי   במודיעין  בענבלים   מ-8   עד  10 ", models.RoleInstructor, parserNow)
	require.NoError(t, err)
	assert.Equal(t, "ענבלים", parsed.School)
}

func TestParseCommandTimeRangeError(t *testing.T) {
	_, err := ParseAttendanceCommand("לימדתי במודיעין בענבלים מ-10 עד 8", models.RoleInstructor, parserNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrTimeRange))
	assert.False(t, errors.Is(err, appErrors.ErrParseFailure))
}

func TestParseCommandZeroDurationIsTimeRangeError(t *testing.T) {
	_, err := ParseAttendanceCommand("לימדתי במודיעין בענבלים מ-8 עד 8", models.RoleInstructor, parserNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrTimeRange))
}

func TestParseCommandFailureCarriesRoleHint(t *testing.T) {
	_, err := ParseAttendanceCommand("שלום", models.RoleInstructor, parserNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrParseFailure))

	var typed *appErrors.Error
	require.True(t, errors.As(err, &typed))
	assert.Contains(t, typed.Message, "לימדתי במודיעין בענבלים מ-8 עד 10")

	_, err = ParseAttendanceCommand("שלום", models.RoleAdmin, parserNow)
	require.True(t, errors.As(err, &typed))
	assert.Contains(t, typed.Message, "אורה לוי לימדה במודיעין בענבלים מ-8 עד 10")
}

func TestParseCommandInvalidCalendarDate(t *testing.T) {
	_, err := ParseAttendanceCommand("בתאריך 31.02.2025 לימדתי במודיעין בענבלים מ-8 עד 10", models.RoleInstructor, parserNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidDate))
	assert.False(t, errors.Is(err, appErrors.ErrParseFailure))
}

func TestParseCommandAdminTemplateRejectedForInstructor(t *testing.T) {
	_, err := ParseAttendanceCommand("אורה לוי לימדה במודיעין בענבלים מ-8 עד 10", models.RoleInstructor, parserNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrParseFailure))
}
