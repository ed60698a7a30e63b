package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Moti-Eli/edu-plus/internal/models"
)

// AdminAttendanceRepository handles persistence for admin-entered records.
// These rows carry the instructor identity inline; there is deliberately no
// foreign key to attendance_records.
type AdminAttendanceRepository struct {
	db *sqlx.DB
}

// NewAdminAttendanceRepository constructs the repository.
func NewAdminAttendanceRepository(db *sqlx.DB) *AdminAttendanceRepository {
	return &AdminAttendanceRepository{db: db}
}

const adminAttendanceSelect = `
SELECT id, instructor_name, COALESCE(instructor_email, '') AS instructor_email,
       school_name, COALESCE(city, '') AS city,
       to_char(date, 'YYYY-MM-DD') AS date,
       start_time, end_time, hours, notes, created_at
FROM admin_attendance_records`

// ListAll returns every admin-entered record, newest first.
func (r *AdminAttendanceRepository) ListAll(ctx context.Context) ([]models.AdminAttendanceRecord, error) {
	query := adminAttendanceSelect + ` ORDER BY date DESC, created_at DESC`
	var records []models.AdminAttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list admin attendance: %w", err)
	}
	return records, nil
}

// ListLatest returns the newest records up to limit, for the assistant context.
func (r *AdminAttendanceRepository) ListLatest(ctx context.Context, limit int) ([]models.AdminAttendanceRecord, error) {
	query := adminAttendanceSelect + ` ORDER BY date DESC, created_at DESC LIMIT $1`
	var records []models.AdminAttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("list latest admin attendance: %w", err)
	}
	return records, nil
}

// FindByID fetches one record.
func (r *AdminAttendanceRepository) FindByID(ctx context.Context, id string) (*models.AdminAttendanceRecord, error) {
	query := adminAttendanceSelect + ` WHERE id = $1 LIMIT 1`
	var record models.AdminAttendanceRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find admin attendance by id: %w", err)
	}
	return &record, nil
}

// Create inserts a record and returns its generated identifier.
func (r *AdminAttendanceRepository) Create(ctx context.Context, record *models.AdminAttendanceRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO admin_attendance_records (id, instructor_name, instructor_email, school_name, city, date, start_time, end_time, hours, notes)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6::date, $7, $8, $9, $10)`
	if _, err := r.db.ExecContext(ctx, query, record.ID, record.InstructorName, record.InstructorEmail, record.SchoolName, record.City, record.Date, record.StartTime, record.EndTime, record.Hours, record.Notes); err != nil {
		return fmt.Errorf("create admin attendance record: %w", err)
	}
	return nil
}

// Update rewrites an admin-entered record.
func (r *AdminAttendanceRepository) Update(ctx context.Context, record *models.AdminAttendanceRecord) error {
	const query = `
		UPDATE admin_attendance_records
		SET instructor_name = $2, instructor_email = NULLIF($3, ''), school_name = $4, city = NULLIF($5, ''),
		    date = $6::date, start_time = $7, end_time = $8, hours = $9, notes = $10
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, record.ID, record.InstructorName, record.InstructorEmail, record.SchoolName, record.City, record.Date, record.StartTime, record.EndTime, record.Hours, record.Notes)
	if err != nil {
		return fmt.Errorf("update admin attendance record: %w", err)
	}
	return requireRow(res, "update admin attendance record")
}

// Delete removes a record.
func (r *AdminAttendanceRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM admin_attendance_records WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete admin attendance record: %w", err)
	}
	return requireRow(res, "delete admin attendance record")
}
