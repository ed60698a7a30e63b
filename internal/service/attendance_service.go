package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Moti-Eli/edu-plus/internal/models"
	appErrors "github.com/Moti-Eli/edu-plus/pkg/errors"
)

type attendanceRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.AttendanceRecord, error)
	ListAll(ctx context.Context) ([]models.AttendanceRecord, error)
	ListLatest(ctx context.Context, limit int) ([]models.AttendanceRecord, error)
	FindByID(ctx context.Context, id string) (*models.AttendanceRecord, error)
	Create(ctx context.Context, record *models.AttendanceRecord) error
	Update(ctx context.Context, record *models.AttendanceRecord) error
	Delete(ctx context.Context, id, userID string) error
	UpdateAdminNotes(ctx context.Context, id string, notes *string) error
}

type statsInvalidator interface {
	InvalidateStatistics(ctx context.Context)
}

// AttendanceInput is the payload for creating or updating an attendance report.
type AttendanceInput struct {
	SchoolName string       `json:"school_name" validate:"required"`
	City       string       `json:"city"`
	Date       string       `json:"date" validate:"required"`
	StartTime  *string      `json:"start_time"`
	EndTime    *string      `json:"end_time"`
	Hours      models.Hours `json:"hours" validate:"required,gt=0"`
	Notes      *string      `json:"notes"`
}

// AttendanceService manages instructor-submitted attendance reports.
type AttendanceService struct {
	repo        attendanceRepository
	users       profileReader
	invalidator statsInvalidator
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

type profileReader interface {
	FindByID(ctx context.Context, id string) (*models.UserProfile, error)
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, users profileReader, invalidator statsInvalidator, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		repo:        repo,
		users:       users,
		invalidator: invalidator,
		validator:   validate,
		logger:      logger,
		now:         time.Now,
	}
}

// ListMine returns the calling instructor's reports, newest first.
func (s *AttendanceService) ListMine(ctx context.Context, userID string) ([]models.AttendanceRecord, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance reports")
	}
	return records, nil
}

// ListAll returns every instructor report. Admin only.
func (s *AttendanceService) ListAll(ctx context.Context) ([]models.AttendanceRecord, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance reports")
	}
	return records, nil
}

// Create records a new report for the calling instructor. Reports may only be
// added inside the current calendar month.
func (s *AttendanceService) Create(ctx context.Context, userID string, input AttendanceInput) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if err := s.checkEditable(input.Date); err != nil {
		return nil, err
	}

	profile, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound.Clone("user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}

	record := &models.AttendanceRecord{
		UserID:          userID,
		InstructorName:  profile.DisplayName(),
		InstructorEmail: profile.Email,
		SchoolName:      input.SchoolName,
		City:            input.City,
		Date:            input.Date,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Hours:           input.Hours,
		Notes:           input.Notes,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create attendance report")
	}
	s.invalidate(ctx)
	s.logger.Info("attendance report created",
		zap.String("user_id", userID),
		zap.String("school", record.SchoolName),
		zap.String("date", record.Date))
	return record, nil
}

// Update rewrites an existing report owned by the calling instructor. Both the
// stored date and the new date must fall inside the current month.
func (s *AttendanceService) Update(ctx context.Context, id, userID string, input AttendanceInput) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound.Clone("attendance report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance report")
	}
	if existing.UserID != userID {
		return nil, appErrors.ErrForbidden.Clone("report belongs to another instructor")
	}
	if err := s.checkEditable(existing.Date); err != nil {
		return nil, err
	}
	if err := s.checkEditable(input.Date); err != nil {
		return nil, err
	}

	existing.SchoolName = input.SchoolName
	existing.City = input.City
	existing.Date = input.Date
	existing.StartTime = input.StartTime
	existing.EndTime = input.EndTime
	existing.Hours = input.Hours
	existing.Notes = input.Notes
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update attendance report")
	}
	s.invalidate(ctx)
	return existing, nil
}

// Delete removes a report owned by the calling instructor, subject to the
// current-month rule.
func (s *AttendanceService) Delete(ctx context.Context, id, userID string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound.Clone("attendance report not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance report")
	}
	if existing.UserID != userID {
		return appErrors.ErrForbidden.Clone("report belongs to another instructor")
	}
	if err := s.checkEditable(existing.Date); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound.Clone("attendance report not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete attendance report")
	}
	s.invalidate(ctx)
	return nil
}

// SetAdminNotes attaches or clears an admin-only note on a report. Admin notes
// are not bound by the current-month rule.
func (s *AttendanceService) SetAdminNotes(ctx context.Context, id string, notes *string) error {
	if err := s.repo.UpdateAdminNotes(ctx, id, notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound.Clone("attendance report not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update admin notes")
	}
	return nil
}

// checkEditable rejects dates outside the current calendar month.
func (s *AttendanceService) checkEditable(date string) error {
	period, ok := models.PeriodKey(date)
	if !ok {
		return appErrors.ErrInvalidDate.Clone("date must be formatted YYYY-MM-DD")
	}
	if period != s.now().UTC().Format("2006-01") {
		return appErrors.ErrClosedMonth.Clone("reports can only be changed during the current month")
	}
	return nil
}

func (s *AttendanceService) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateStatistics(ctx)
	}
}
