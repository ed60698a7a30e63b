package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Moti-Eli/edu-plus/internal/models"
	appErrors "github.com/Moti-Eli/edu-plus/pkg/errors"
)

type instructorReportWriter interface {
	Create(ctx context.Context, userID string, input AttendanceInput) (*models.AttendanceRecord, error)
}

type adminReportWriter interface {
	Create(ctx context.Context, input AdminAttendanceInput) (*models.AdminAttendanceRecord, error)
}

// ChatReply is the answer to one chat utterance: either a confirmation with
// the recorded report, or a Hebrew guidance message passed through the error.
type ChatReply struct {
	Message string            `json:"message"`
	Record  *ParsedAttendance `json:"record,omitempty"`
}

// ChatService turns free-text Hebrew attendance commands into stored
// attendance records. Instructors report their own hours, admins report on
// behalf of any instructor named in the utterance.
type ChatService struct {
	instructorWriter instructorReportWriter
	adminWriter      adminReportWriter
	enabled          bool
	logger           *zap.Logger
	now              func() time.Time
}

// NewChatService constructs the chat service.
func NewChatService(instructorWriter instructorReportWriter, adminWriter adminReportWriter, enabled bool, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		instructorWriter: instructorWriter,
		adminWriter:      adminWriter,
		enabled:          enabled,
		logger:           logger,
		now:              time.Now,
	}
}

// Enabled reports whether the chat shortcut is switched on.
func (s *ChatService) Enabled() bool {
	return s != nil && s.enabled
}

// Handle parses the utterance and records the attendance it describes.
func (s *ChatService) Handle(ctx context.Context, userID string, role models.UserRole, text string) (*ChatReply, error) {
	if !s.Enabled() {
		return nil, appErrors.ErrNotFound.Clone("chat is disabled")
	}

	parsed, err := ParseAttendanceCommand(text, role, s.now())
	if err != nil {
		return nil, err
	}

	hours := models.Hours(parsed.Hours)
	start := parsed.StartTime
	end := parsed.EndTime

	if role == models.RoleAdmin {
		input := AdminAttendanceInput{
			InstructorName: parsed.InstructorName,
			SchoolName:     parsed.School,
			City:           parsed.City,
			Date:           parsed.Date,
			StartTime:      &start,
			EndTime:        &end,
			Hours:          hours,
		}
		if _, err := s.adminWriter.Create(ctx, input); err != nil {
			return nil, err
		}
	} else {
		input := AttendanceInput{
			SchoolName: parsed.School,
			City:       parsed.City,
			Date:       parsed.Date,
			StartTime:  &start,
			EndTime:    &end,
			Hours:      hours,
		}
		if _, err := s.instructorWriter.Create(ctx, userID, input); err != nil {
			return nil, err
		}
	}

	s.logger.Info("chat attendance recorded",
		zap.String("user_id", userID),
		zap.String("role", string(role)),
		zap.String("school", parsed.School),
		zap.String("date", parsed.Date))
	return &ChatReply{Message: s.confirmation(parsed, role), Record: parsed}, nil
}

// confirmation builds the Hebrew acknowledgement. The date is mentioned only
// when the report is not for today, formatted D.M.YYYY.
func (s *ChatService) confirmation(parsed *ParsedAttendance, role models.UserRole) string {
	dateText := ""
	if parsed.Date != s.now().Format("2006-01-02") {
		dateText = " (" + hebrewDate(parsed.Date) + ")"
	}
	if role == models.RoleAdmin && parsed.InstructorName != "" {
		return fmt.Sprintf("✅ נרשמו %d שעות ל%s ב%s ב%s%s",
			parsed.Hours, parsed.InstructorName, parsed.School, parsed.City, dateText)
	}
	return fmt.Sprintf("✅ מעולה! נרשמו %d שעות ב%s ב%s%s",
		parsed.Hours, parsed.School, parsed.City, dateText)
}

// hebrewDate renders an ISO date the way he-IL locales print it, without
// zero padding.
func hebrewDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d.%d.%d", parsed.Day(), int(parsed.Month()), parsed.Year())
}
