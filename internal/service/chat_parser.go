package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Moti-Eli/edu-plus/internal/models"
	appErrors "github.com/Moti-Eli/edu-plus/pkg/errors"
)

// The chat shortcut recognises exactly two utterance templates, one per role,
// with an optional date prefix. This is a fixed recognizer: no fuzzy matching,
// no partial extraction. The verb lists are closed enumerations.
var (
	datePrefixPattern = regexp.MustCompile(`(?i)בתאריך\s+(\d{1,2})[.\/](\d{1,2})[.\/](\d{4})\s*`)

	// "לימדתי במודיעין בענבלים מ-8 עד 10"
	instructorPattern = regexp.MustCompile(`(?i)(?:לימדתי|עבדתי|הדרכתי)\s+ב(.+?)\s+ב(.+?)\s+מ[־\-]?\s*(\d{1,2})\s+עד\s+(\d{1,2})$`)

	// "אורה לוי לימדה במודיעין בענבלים מ-8 עד 10"
	adminPattern = regexp.MustCompile(`(?i)^(.+?)\s+(?:לימד|לימדה|עבד|עבדה|הדריך|הדריכה)\s+ב(.+?)\s+ב(.+?)\s+מ[־\-]?\s*(\d{1,2})\s+עד\s+(\d{1,2})$`)
)

const (
	instructorHint = "נסה בפורמט:\n\"לימדתי במודיעין בענבלים מ-8 עד 10\"\nאו עם תאריך:\n\"בתאריך 01.01.2025 לימדתי במודיעין בענבלים מ-8 עד 10\""
	adminHint      = "נסה בפורמט:\n\"אורה לוי לימדה במודיעין בענבלים מ-8 עד 10\"\nאו עם תאריך:\n\"בתאריך 01.01.2025 אורה לוי לימדה במודיעין בענבלים מ-8 עד 10\""
)

// ParsedAttendance is the structured record extracted from a chat utterance,
// ready for submission to the attendance services.
type ParsedAttendance struct {
	InstructorName string `json:"instructor_name,omitempty"`
	School         string `json:"school"`
	City           string `json:"city"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Hours          int    `json:"hours"`
}

// ParseHint returns the role-appropriate example templates shown on a parse
// failure.
func ParseHint(role models.UserRole) string {
	if role == models.RoleAdmin {
		return adminHint
	}
	return instructorHint
}

// ParseAttendanceCommand extracts a structured attendance record from a chat
// utterance. The role selects which template applies. Failures are typed:
// parse failures carry the example hint, bad time ranges and impossible
// calendar dates each get their own error so callers can answer precisely.
func ParseAttendanceCommand(text string, role models.UserRole, now time.Time) (*ParsedAttendance, error) {
	clean := strings.Join(strings.Fields(text), " ")

	recordDate := now.Format("2006-01-02")
	explicitDate := false
	if m := datePrefixPattern.FindStringSubmatch(clean); m != nil {
		recordDate = fmt.Sprintf("%s-%s-%s", m[3], padTwo(m[2]), padTwo(m[1]))
		explicitDate = true
		clean = strings.TrimSpace(datePrefixPattern.ReplaceAllString(clean, ""))
	}

	parsed := &ParsedAttendance{Date: recordDate}
	var start, end string
	if role == models.RoleAdmin {
		m := adminPattern.FindStringSubmatch(clean)
		if m == nil {
			return nil, appErrors.Clone(appErrors.ErrParseFailure, "לא הבנתי. "+adminHint)
		}
		parsed.InstructorName = strings.TrimSpace(m[1])
		parsed.City = strings.TrimSpace(m[2])
		parsed.School = strings.TrimSpace(m[3])
		start, end = m[4], m[5]
	} else {
		m := instructorPattern.FindStringSubmatch(clean)
		if m == nil {
			return nil, appErrors.Clone(appErrors.ErrParseFailure, "לא הבנתי. "+instructorHint)
		}
		parsed.City = strings.TrimSpace(m[1])
		parsed.School = strings.TrimSpace(m[2])
		start, end = m[3], m[4]
	}

	startHour, _ := strconv.Atoi(start)
	endHour, _ := strconv.Atoi(end)
	parsed.Hours = endHour - startHour
	if parsed.Hours <= 0 {
		return nil, appErrors.Clone(appErrors.ErrTimeRange, "שעת הסיום חייבת להיות אחרי שעת ההתחלה")
	}
	parsed.StartTime = fmt.Sprintf("%02d:00", startHour)
	parsed.EndTime = fmt.Sprintf("%02d:00", endHour)

	if _, err := time.Parse("2006-01-02", parsed.Date); err != nil {
		if explicitDate {
			return nil, appErrors.Clone(appErrors.ErrInvalidDate, "התאריך לא תקין")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidDate.Code, appErrors.ErrInvalidDate.Status, "התאריך לא תקין")
	}

	return parsed, nil
}

func padTwo(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
