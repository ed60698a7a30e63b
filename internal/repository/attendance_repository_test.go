package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moti-Eli/edu-plus/internal/models"
)

func newAttendanceRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func attendanceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "instructor_name", "instructor_email", "school_name", "city",
		"date", "start_time", "end_time", "hours", "notes", "admin_notes", "created_at",
	})
}

func TestAttendanceRepositoryListByUser(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	rows := attendanceRows().
		AddRow("r1", "u1", "אורה לוי", "ora@example.com", "ענבלים", "מודיעין",
			"2025-01-15", nil, nil, "2.5", nil, nil, time.Now())
	mock.ExpectQuery("SELECT a.id, a.user_id,").
		WithArgs("u1").
		WillReturnRows(rows)

	records, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-01-15", records[0].Date)
	assert.Equal(t, models.Hours(2.5), records[0].Hours, "numeric string column scans into Hours")
	assert.Equal(t, "ora@example.com", records[0].InstructorEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryCreateGeneratesID(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec("INSERT INTO attendance_records").
		WithArgs(sqlmock.AnyArg(), "u1", "ענבלים", "מודיעין", "2025-01-15", nil, nil, 2.0, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	record := &models.AttendanceRecord{
		UserID:     "u1",
		SchoolName: "ענבלים",
		City:       "מודיעין",
		Date:       "2025-01-15",
		Hours:      2,
	}
	require.NoError(t, repo.Create(context.Background(), record))
	assert.NotEmpty(t, record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryDeleteScopedToOwner(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec("DELETE FROM attendance_records WHERE id = .+ AND user_id = .+").
		WithArgs("r1", "someone-else").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "r1", "someone-else")
	assert.Error(t, err, "deleting another user's record affects no rows")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryUpdateAdminNotes(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	notes := "בדוק מול בית הספר"
	mock.ExpectExec("UPDATE attendance_records SET admin_notes").
		WithArgs("r1", notes).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.UpdateAdminNotes(context.Background(), "r1", &notes))
	assert.NoError(t, mock.ExpectationsWereMet())
}
