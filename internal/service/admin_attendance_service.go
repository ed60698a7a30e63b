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

type adminAttendanceRepository interface {
	ListAll(ctx context.Context) ([]models.AdminAttendanceRecord, error)
	ListLatest(ctx context.Context, limit int) ([]models.AdminAttendanceRecord, error)
	FindByID(ctx context.Context, id string) (*models.AdminAttendanceRecord, error)
	Create(ctx context.Context, record *models.AdminAttendanceRecord) error
	Update(ctx context.Context, record *models.AdminAttendanceRecord) error
	Delete(ctx context.Context, id string) error
}

// AdminAttendanceInput is the payload for the admin-side attendance ledger.
// Instructor identity is free text so admins can log hours for instructors
// who never registered.
type AdminAttendanceInput struct {
	InstructorName  string       `json:"instructor_name" validate:"required"`
	InstructorEmail *string      `json:"instructor_email" validate:"omitempty,email"`
	SchoolName      string       `json:"school_name" validate:"required"`
	City            string       `json:"city"`
	Date            string       `json:"date" validate:"required"`
	StartTime       *string      `json:"start_time"`
	EndTime         *string      `json:"end_time"`
	Hours           models.Hours `json:"hours" validate:"required,gt=0"`
	Notes           *string      `json:"notes"`
}

// AdminAttendanceService manages the admin-side attendance ledger, which is
// reconciled against instructor self-reports by the statistics engine.
type AdminAttendanceService struct {
	repo        adminAttendanceRepository
	invalidator statsInvalidator
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewAdminAttendanceService constructs the admin attendance service.
func NewAdminAttendanceService(repo adminAttendanceRepository, invalidator statsInvalidator, validate *validator.Validate, logger *zap.Logger) *AdminAttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminAttendanceService{
		repo:        repo,
		invalidator: invalidator,
		validator:   validate,
		logger:      logger,
		now:         time.Now,
	}
}

// List returns every admin ledger record, newest first.
func (s *AdminAttendanceService) List(ctx context.Context) ([]models.AdminAttendanceRecord, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list admin attendance records")
	}
	return records, nil
}

// Create adds a record to the admin ledger.
func (s *AdminAttendanceService) Create(ctx context.Context, input AdminAttendanceInput) (*models.AdminAttendanceRecord, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if _, ok := models.PeriodKey(input.Date); !ok {
		return nil, appErrors.ErrInvalidDate.Clone("date must be formatted YYYY-MM-DD")
	}

	record := &models.AdminAttendanceRecord{
		InstructorName:  input.InstructorName,
		InstructorEmail: emailOrEmpty(input.InstructorEmail),
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
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create admin attendance record")
	}
	s.invalidate(ctx)
	s.logger.Info("admin attendance record created",
		zap.String("instructor", record.InstructorName),
		zap.String("school", record.SchoolName),
		zap.String("date", record.Date))
	return record, nil
}

// Update rewrites an existing admin ledger record.
func (s *AdminAttendanceService) Update(ctx context.Context, id string, input AdminAttendanceInput) (*models.AdminAttendanceRecord, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if _, ok := models.PeriodKey(input.Date); !ok {
		return nil, appErrors.ErrInvalidDate.Clone("date must be formatted YYYY-MM-DD")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound.Clone("admin attendance record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin attendance record")
	}

	existing.InstructorName = input.InstructorName
	existing.InstructorEmail = emailOrEmpty(input.InstructorEmail)
	existing.SchoolName = input.SchoolName
	existing.City = input.City
	existing.Date = input.Date
	existing.StartTime = input.StartTime
	existing.EndTime = input.EndTime
	existing.Hours = input.Hours
	existing.Notes = input.Notes
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update admin attendance record")
	}
	s.invalidate(ctx)
	return existing, nil
}

// Delete removes a record from the admin ledger.
func (s *AdminAttendanceService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound.Clone("admin attendance record not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete admin attendance record")
	}
	s.invalidate(ctx)
	return nil
}

func (s *AdminAttendanceService) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateStatistics(ctx)
	}
}

func emailOrEmpty(email *string) string {
	if email == nil {
		return ""
	}
	return *email
}
