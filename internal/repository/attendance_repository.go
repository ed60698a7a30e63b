package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Moti-Eli/edu-plus/internal/models"
)

// AttendanceRepository handles persistence for instructor-submitted records.
// Reporter name and email are joined in from profiles on every read so the
// reconciliation engine receives complete identities.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceSelect = `
SELECT a.id, a.user_id,
       COALESCE(p.full_name, '') AS instructor_name,
       COALESCE(p.email, '') AS instructor_email,
       a.school_name, COALESCE(a.city, '') AS city,
       to_char(a.date, 'YYYY-MM-DD') AS date,
       a.start_time, a.end_time, a.hours, a.notes, a.admin_notes, a.created_at
FROM attendance_records a
LEFT JOIN profiles p ON p.id = a.user_id`

// ListByUser returns one instructor's records, newest first.
func (r *AttendanceRepository) ListByUser(ctx context.Context, userID string) ([]models.AttendanceRecord, error) {
	query := attendanceSelect + ` WHERE a.user_id = $1 ORDER BY a.date DESC, a.created_at DESC`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, fmt.Errorf("list attendance by user: %w", err)
	}
	return records, nil
}

// ListAll returns every instructor-submitted record, newest first.
func (r *AttendanceRepository) ListAll(ctx context.Context) ([]models.AttendanceRecord, error) {
	query := attendanceSelect + ` ORDER BY a.date DESC, a.created_at DESC`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// ListLatest returns the newest records up to limit, for the assistant context.
func (r *AttendanceRepository) ListLatest(ctx context.Context, limit int) ([]models.AttendanceRecord, error) {
	query := attendanceSelect + ` ORDER BY a.date DESC, a.created_at DESC LIMIT $1`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("list latest attendance: %w", err)
	}
	return records, nil
}

// FindByID fetches one record.
func (r *AttendanceRepository) FindByID(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	query := attendanceSelect + ` WHERE a.id = $1 LIMIT 1`
	var record models.AttendanceRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find attendance by id: %w", err)
	}
	return &record, nil
}

// Create inserts a record and returns its generated identifier.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO attendance_records (id, user_id, school_name, city, date, start_time, end_time, hours, notes)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5::date, $6, $7, $8, $9)`
	if _, err := r.db.ExecContext(ctx, query, record.ID, record.UserID, record.SchoolName, record.City, record.Date, record.StartTime, record.EndTime, record.Hours, record.Notes); err != nil {
		return fmt.Errorf("create attendance record: %w", err)
	}
	return nil
}

// Update rewrites the editable fields of an owned record.
func (r *AttendanceRepository) Update(ctx context.Context, record *models.AttendanceRecord) error {
	const query = `
		UPDATE attendance_records
		SET school_name = $3, city = NULLIF($4, ''), date = $5::date, start_time = $6, end_time = $7, hours = $8, notes = $9
		WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, record.ID, record.UserID, record.SchoolName, record.City, record.Date, record.StartTime, record.EndTime, record.Hours, record.Notes)
	if err != nil {
		return fmt.Errorf("update attendance record: %w", err)
	}
	return requireRow(res, "update attendance record")
}

// Delete removes an owned record.
func (r *AttendanceRepository) Delete(ctx context.Context, id, userID string) error {
	const query = `DELETE FROM attendance_records WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete attendance record: %w", err)
	}
	return requireRow(res, "delete attendance record")
}

// UpdateAdminNotes sets or clears the admin annotation on a record.
func (r *AttendanceRepository) UpdateAdminNotes(ctx context.Context, id string, notes *string) error {
	const query = `UPDATE attendance_records SET admin_notes = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, notes)
	if err != nil {
		return fmt.Errorf("update admin notes: %w", err)
	}
	return requireRow(res, "update admin notes")
}
