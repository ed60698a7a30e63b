package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Moti-Eli/edu-plus/internal/models"
	appErrors "github.com/Moti-Eli/edu-plus/pkg/errors"
)

type mockInstructorWriter struct {
	created []AttendanceInput
	userIDs []string
	err     error
}

func (m *mockInstructorWriter) Create(ctx context.Context, userID string, input AttendanceInput) (*models.AttendanceRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = append(m.created, input)
	m.userIDs = append(m.userIDs, userID)
	return &models.AttendanceRecord{ID: "r1", UserID: userID}, nil
}

type mockAdminWriter struct {
	created []AdminAttendanceInput
}

func (m *mockAdminWriter) Create(ctx context.Context, input AdminAttendanceInput) (*models.AdminAttendanceRecord, error) {
	m.created = append(m.created, input)
	return &models.AdminAttendanceRecord{ID: "a1"}, nil
}

func newChatServiceForTest(instructor *mockInstructorWriter, admin *mockAdminWriter) *ChatService {
	svc := NewChatService(instructor, admin, true, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestChatServiceInstructorReport(t *testing.T) {
	instructor := &mockInstructorWriter{}
	svc := newChatServiceForTest(instructor, &mockAdminWriter{})

	reply, err := svc.Handle(context.Background(), "u1", models.RoleInstructor, "לימדתי במודיעין בענבלים מ-8 עד 10")
	require.NoError(t, err)
	require.Len(t, instructor.created, 1)

	input := instructor.created[0]
	assert.Equal(t, "ענבלים", input.SchoolName)
	assert.Equal(t, "מודיעין", input.City)
	assert.Equal(t, "2025-06-15", input.Date)
	assert.Equal(t, models.Hours(2), input.Hours)
	assert.Equal(t, []string{"u1"}, instructor.userIDs)

	assert.Equal(t, "✅ מעולה! נרשמו 2 שעות בענבלים במודיעין", reply.Message)
}

func TestChatServiceAdminReport(t *testing.T) {
	admin := &mockAdminWriter{}
	svc := newChatServiceForTest(&mockInstructorWriter{}, admin)

	reply, err := svc.Handle(context.Background(), "admin-1", models.RoleAdmin, "אורה לוי לימדה במודיעין בענבלים מ-8 עד 10")
	require.NoError(t, err)
	require.Len(t, admin.created, 1)
	assert.Equal(t, "אורה לוי", admin.created[0].InstructorName)
	assert.Equal(t, "✅ נרשמו 2 שעות לאורה לוי בענבלים במודיעין", reply.Message)
}

func TestChatServicePastDateMentionedInReply(t *testing.T) {
	instructor := &mockInstructorWriter{}
	svc := newChatServiceForTest(instructor, &mockAdminWriter{})

	reply, err := svc.Handle(context.Background(), "u1", models.RoleInstructor, "בתאריך 01.06.2025 לימדתי במודיעין בענבלים מ-8 עד 10")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", instructor.created[0].Date)
	assert.Contains(t, reply.Message, "(1.6.2025)")
}

func TestChatServiceParseFailurePassesThrough(t *testing.T) {
	svc := newChatServiceForTest(&mockInstructorWriter{}, &mockAdminWriter{})

	_, err := svc.Handle(context.Background(), "u1", models.RoleInstructor, "שלום מה נשמע")
	assert.True(t, errors.Is(err, appErrors.ErrParseFailure))
}

func TestChatServiceDisabled(t *testing.T) {
	svc := NewChatService(&mockInstructorWriter{}, &mockAdminWriter{}, false, zap.NewNop())

	_, err := svc.Handle(context.Background(), "u1", models.RoleInstructor, "לימדתי במודיעין בענבלים מ-8 עד 10")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestChatServiceWriterErrorPropagates(t *testing.T) {
	instructor := &mockInstructorWriter{err: appErrors.ErrClosedMonth}
	svc := newChatServiceForTest(instructor, &mockAdminWriter{})

	_, err := svc.Handle(context.Background(), "u1", models.RoleInstructor, "בתאריך 01.01.2025 לימדתי במודיעין בענבלים מ-8 עד 10")
	assert.True(t, errors.Is(err, appErrors.ErrClosedMonth))
}
