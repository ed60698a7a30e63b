package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Hours is the taught-hours figure for a session. Rows arrive from the API as
// either a JSON number or a numeric string; anything else fails decoding at
// the boundary instead of being silently zeroed.
type Hours float64

// UnmarshalJSON accepts numbers and numeric strings.
func (h *Hours) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("hours: %q is not numeric", raw)
		}
		*h = Hours(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("hours: %w", err)
	}
	*h = Hours(v)
	return nil
}

// Scan implements sql.Scanner for numeric columns.
func (h *Hours) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*h = 0
		return nil
	case float64:
		*h = Hours(v)
		return nil
	case int64:
		*h = Hours(v)
		return nil
	case []byte:
		parsed, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return fmt.Errorf("hours: scan %q: %w", v, err)
		}
		*h = Hours(parsed)
		return nil
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("hours: scan %q: %w", v, err)
		}
		*h = Hours(parsed)
		return nil
	default:
		return fmt.Errorf("hours: unsupported scan type %T", src)
	}
}

// Value implements driver.Valuer.
func (h Hours) Value() (driver.Value, error) {
	return float64(h), nil
}

// Float64 returns the plain numeric value.
func (h Hours) Float64() float64 {
	return float64(h)
}

// AttendanceRecord is a session self-reported by an instructor. Dates are
// carried as ISO YYYY-MM-DD strings end to end; the reporter's name and email
// are joined in from the profiles table.
type AttendanceRecord struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	InstructorName  string    `db:"instructor_name" json:"instructor_name"`
	InstructorEmail string    `db:"instructor_email" json:"instructor_email"`
	SchoolName      string    `db:"school_name" json:"school_name"`
	City            string    `db:"city" json:"city"`
	Date            string    `db:"date" json:"date"`
	StartTime       *string   `db:"start_time" json:"start_time,omitempty"`
	EndTime         *string   `db:"end_time" json:"end_time,omitempty"`
	Hours           Hours     `db:"hours" json:"hours"`
	Notes           *string   `db:"notes" json:"notes,omitempty"`
	AdminNotes      *string   `db:"admin_notes" json:"admin_notes,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// AdminAttendanceRecord is a session entered by an administrator for the same
// real-world teaching slot. There is no foreign key to AttendanceRecord;
// correlation happens at reconciliation time by identity and school.
type AdminAttendanceRecord struct {
	ID              string    `db:"id" json:"id"`
	InstructorName  string    `db:"instructor_name" json:"instructor_name"`
	InstructorEmail string    `db:"instructor_email" json:"instructor_email"`
	SchoolName      string    `db:"school_name" json:"school_name"`
	City            string    `db:"city" json:"city"`
	Date            string    `db:"date" json:"date"`
	StartTime       *string   `db:"start_time" json:"start_time,omitempty"`
	EndTime         *string   `db:"end_time" json:"end_time,omitempty"`
	Hours           Hours     `db:"hours" json:"hours"`
	Notes           *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// PeriodKey derives the YYYY-MM bucket for an ISO date string. The second
// return is false for missing or unparseable dates, which belong to no period.
func PeriodKey(date string) (string, bool) {
	if len(date) < 10 {
		return "", false
	}
	parsed, err := time.Parse("2006-01-02", date[:10])
	if err != nil {
		return "", false
	}
	return parsed.Format("2006-01"), true
}
