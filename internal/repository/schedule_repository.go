package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Moti-Eli/edu-plus/internal/models"
)

// ScheduleRepository handles persistence for the canonical weekly plan.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs the repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const scheduleSelect = `
SELECT id, school_name, COALESCE(city, '') AS city, class_name, activity_hours,
       hours_count, instructor_id, instructor_name, instructor_email, day_of_week, created_at
FROM schedules`

// ListAll returns the full weekly plan ordered by school.
func (r *ScheduleRepository) ListAll(ctx context.Context) ([]models.ScheduleEntry, error) {
	query := scheduleSelect + ` ORDER BY school_name ASC, day_of_week ASC`
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return entries, nil
}

// ListByDay returns plan entries for one Hebrew weekday name.
func (r *ScheduleRepository) ListByDay(ctx context.Context, dayOfWeek string) ([]models.ScheduleEntry, error) {
	query := scheduleSelect + ` WHERE day_of_week = $1 ORDER BY school_name ASC`
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, dayOfWeek); err != nil {
		return nil, fmt.Errorf("list schedules by day: %w", err)
	}
	return entries, nil
}

// ListByInstructor returns plan entries assigned to an instructor by id or email.
func (r *ScheduleRepository) ListByInstructor(ctx context.Context, instructorID, email string) ([]models.ScheduleEntry, error) {
	query := scheduleSelect + ` WHERE instructor_id = $1 OR LOWER(COALESCE(instructor_email, '')) = LOWER($2) ORDER BY school_name ASC`
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, instructorID, email); err != nil {
		return nil, fmt.Errorf("list schedules by instructor: %w", err)
	}
	return entries, nil
}

// ListSchools returns distinct (school, city) pairs ordered by school name.
// When a school appears with several cities the first row wins.
func (r *ScheduleRepository) ListSchools(ctx context.Context) ([]models.School, error) {
	const query = `
		SELECT DISTINCT ON (school_name) school_name, COALESCE(city, '') AS city
		FROM schedules
		ORDER BY school_name ASC, created_at ASC`
	var schools []models.School
	if err := r.db.SelectContext(ctx, &schools, query); err != nil {
		return nil, fmt.Errorf("list schools: %w", err)
	}
	return schools, nil
}

// FindByID fetches one plan entry.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.ScheduleEntry, error) {
	query := scheduleSelect + ` WHERE id = $1 LIMIT 1`
	var entry models.ScheduleEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find schedule by id: %w", err)
	}
	return &entry, nil
}

// Create inserts a plan entry.
func (r *ScheduleRepository) Create(ctx context.Context, entry *models.ScheduleEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO schedules (id, school_name, city, class_name, activity_hours, hours_count, instructor_id, instructor_name, instructor_email, day_of_week)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.db.ExecContext(ctx, query, entry.ID, entry.SchoolName, entry.City, entry.ClassName, entry.ActivityHours, entry.HoursCount, entry.InstructorID, entry.InstructorName, entry.InstructorEmail, entry.DayOfWeek); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}

// Update rewrites a plan entry.
func (r *ScheduleRepository) Update(ctx context.Context, entry *models.ScheduleEntry) error {
	const query = `
		UPDATE schedules
		SET school_name = $2, city = NULLIF($3, ''), class_name = $4, activity_hours = $5, hours_count = $6,
		    instructor_id = $7, instructor_name = $8, instructor_email = $9, day_of_week = $10
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, entry.ID, entry.SchoolName, entry.City, entry.ClassName, entry.ActivityHours, entry.HoursCount, entry.InstructorID, entry.InstructorName, entry.InstructorEmail, entry.DayOfWeek)
	if err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	return requireRow(res, "update schedule")
}

// Delete removes a plan entry.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM schedules WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return requireRow(res, "delete schedule")
}
