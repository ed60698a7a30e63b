package models

import "time"

// ScheduleEntry is a row of the canonical weekly plan: which instructor is
// expected at which school on which weekday and for how many hours. Weekdays
// are stored as Hebrew day names, matching the entry forms.
type ScheduleEntry struct {
	ID              string    `db:"id" json:"id"`
	SchoolName      string    `db:"school_name" json:"school_name"`
	City            string    `db:"city" json:"city"`
	ClassName       *string   `db:"class_name" json:"class_name,omitempty"`
	ActivityHours   *string   `db:"activity_hours" json:"activity_hours,omitempty"`
	HoursCount      Hours     `db:"hours_count" json:"hours_count"`
	InstructorID    *string   `db:"instructor_id" json:"instructor_id,omitempty"`
	InstructorName  *string   `db:"instructor_name" json:"instructor_name,omitempty"`
	InstructorEmail *string   `db:"instructor_email" json:"instructor_email,omitempty"`
	DayOfWeek       string    `db:"day_of_week" json:"day_of_week"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// School is a distinct (name, city) pair drawn from the weekly plan.
type School struct {
	Name string `db:"school_name" json:"name"`
	City string `db:"city" json:"city"`
}

// HebrewWeekday maps a Go weekday to the Hebrew day name used by the plan.
func HebrewWeekday(t time.Time) string {
	names := [...]string{"ראשון", "שני", "שלישי", "רביעי", "חמישי", "שישי", "שבת"}
	return names[int(t.Weekday())]
}
