package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Moti-Eli/edu-plus/internal/models"
	appErrors "github.com/Moti-Eli/edu-plus/pkg/errors"
)

type mockAttendanceRepo struct {
	records map[string]*models.AttendanceRecord
}

func (m *mockAttendanceRepo) ListByUser(ctx context.Context, userID string) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepo) ListAll(ctx context.Context) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for _, r := range m.records {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockAttendanceRepo) ListLatest(ctx context.Context, limit int) ([]models.AttendanceRecord, error) {
	return m.ListAll(ctx)
}

func (m *mockAttendanceRepo) FindByID(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	if r, ok := m.records[id]; ok {
		copy := *r
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAttendanceRepo) Create(ctx context.Context, record *models.AttendanceRecord) error {
	if m.records == nil {
		m.records = make(map[string]*models.AttendanceRecord)
	}
	if record.ID == "" {
		record.ID = "generated"
	}
	copy := *record
	m.records[record.ID] = &copy
	return nil
}

func (m *mockAttendanceRepo) Update(ctx context.Context, record *models.AttendanceRecord) error {
	if _, ok := m.records[record.ID]; !ok {
		return sql.ErrNoRows
	}
	copy := *record
	m.records[record.ID] = &copy
	return nil
}

func (m *mockAttendanceRepo) Delete(ctx context.Context, id, userID string) error {
	if r, ok := m.records[id]; ok && r.UserID == userID {
		delete(m.records, id)
		return nil
	}
	return sql.ErrNoRows
}

func (m *mockAttendanceRepo) UpdateAdminNotes(ctx context.Context, id string, notes *string) error {
	if r, ok := m.records[id]; ok {
		r.AdminNotes = notes
		return nil
	}
	return sql.ErrNoRows
}

type mockProfileReader struct {
	profiles map[string]*models.UserProfile
}

func (m *mockProfileReader) FindByID(ctx context.Context, id string) (*models.UserProfile, error) {
	if p, ok := m.profiles[id]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

type mockInvalidator struct {
	calls int
}

func (m *mockInvalidator) InvalidateStatistics(ctx context.Context) {
	m.calls++
}

func newAttendanceServiceForTest(repo *mockAttendanceRepo, inv *mockInvalidator) *AttendanceService {
	users := &mockProfileReader{profiles: map[string]*models.UserProfile{
		"u1": {ID: "u1", Email: "ora@example.com", FullName: "אורה לוי", Role: models.RoleInstructor, Active: true},
	}}
	svc := NewAttendanceService(repo, users, inv, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestAttendanceServiceCreateCurrentMonth(t *testing.T) {
	repo := &mockAttendanceRepo{}
	inv := &mockInvalidator{}
	svc := newAttendanceServiceForTest(repo, inv)

	record, err := svc.Create(context.Background(), "u1", AttendanceInput{
		SchoolName: "ענבלים",
		City:       "מודיעין",
		Date:       "2025-06-10",
		Hours:      3,
	})
	require.NoError(t, err)
	assert.Equal(t, "אורה לוי", record.InstructorName)
	assert.Equal(t, "ora@example.com", record.InstructorEmail)
	assert.Len(t, repo.records, 1)
	assert.Equal(t, 1, inv.calls)
}

func TestAttendanceServiceCreateClosedMonth(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := newAttendanceServiceForTest(repo, &mockInvalidator{})

	_, err := svc.Create(context.Background(), "u1", AttendanceInput{
		SchoolName: "ענבלים",
		Date:       "2025-05-31",
		Hours:      3,
	})
	assert.True(t, errors.Is(err, appErrors.ErrClosedMonth))
	assert.Empty(t, repo.records)
}

func TestAttendanceServiceCreateInvalidDate(t *testing.T) {
	svc := newAttendanceServiceForTest(&mockAttendanceRepo{}, &mockInvalidator{})

	_, err := svc.Create(context.Background(), "u1", AttendanceInput{
		SchoolName: "ענבלים",
		Date:       "10.06.2025",
		Hours:      3,
	})
	assert.True(t, errors.Is(err, appErrors.ErrInvalidDate))
}

func TestAttendanceServiceUpdateOtherOwnerForbidden(t *testing.T) {
	repo := &mockAttendanceRepo{records: map[string]*models.AttendanceRecord{
		"r1": {ID: "r1", UserID: "someone-else", Date: "2025-06-01", Hours: 2},
	}}
	svc := newAttendanceServiceForTest(repo, &mockInvalidator{})

	_, err := svc.Update(context.Background(), "r1", "u1", AttendanceInput{
		SchoolName: "ענבלים",
		Date:       "2025-06-02",
		Hours:      2,
	})
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))
}

func TestAttendanceServiceUpdateStoredDateClosed(t *testing.T) {
	repo := &mockAttendanceRepo{records: map[string]*models.AttendanceRecord{
		"r1": {ID: "r1", UserID: "u1", Date: "2025-04-20", Hours: 2},
	}}
	svc := newAttendanceServiceForTest(repo, &mockInvalidator{})

	_, err := svc.Update(context.Background(), "r1", "u1", AttendanceInput{
		SchoolName: "ענבלים",
		Date:       "2025-06-02",
		Hours:      2,
	})
	assert.True(t, errors.Is(err, appErrors.ErrClosedMonth))
	assert.Equal(t, "2025-04-20", repo.records["r1"].Date)
}

func TestAttendanceServiceDelete(t *testing.T) {
	repo := &mockAttendanceRepo{records: map[string]*models.AttendanceRecord{
		"r1": {ID: "r1", UserID: "u1", Date: "2025-06-01", Hours: 2},
	}}
	inv := &mockInvalidator{}
	svc := newAttendanceServiceForTest(repo, inv)

	require.NoError(t, svc.Delete(context.Background(), "r1", "u1"))
	assert.Empty(t, repo.records)
	assert.Equal(t, 1, inv.calls)
}

func TestAttendanceServiceSetAdminNotes(t *testing.T) {
	repo := &mockAttendanceRepo{records: map[string]*models.AttendanceRecord{
		"r1": {ID: "r1", UserID: "u1", Date: "2024-01-01", Hours: 2},
	}}
	svc := newAttendanceServiceForTest(repo, &mockInvalidator{})

	notes := "נבדק מול בית הספר"
	require.NoError(t, svc.SetAdminNotes(context.Background(), "r1", &notes))
	require.NotNil(t, repo.records["r1"].AdminNotes)
	assert.Equal(t, notes, *repo.records["r1"].AdminNotes)
}
