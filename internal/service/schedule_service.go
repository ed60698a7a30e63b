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

type scheduleRepository interface {
	ListAll(ctx context.Context) ([]models.ScheduleEntry, error)
	ListByDay(ctx context.Context, dayOfWeek string) ([]models.ScheduleEntry, error)
	ListByInstructor(ctx context.Context, instructorID, email string) ([]models.ScheduleEntry, error)
	ListSchools(ctx context.Context) ([]models.School, error)
	FindByID(ctx context.Context, id string) (*models.ScheduleEntry, error)
	Create(ctx context.Context, entry *models.ScheduleEntry) error
	Update(ctx context.Context, entry *models.ScheduleEntry) error
	Delete(ctx context.Context, id string) error
}

// ScheduleInput is the payload for weekly schedule rows.
type ScheduleInput struct {
	SchoolName     string       `json:"school_name" validate:"required"`
	City           string       `json:"city"`
	ClassName      *string      `json:"class_name"`
	ActivityHours  *string      `json:"activity_hours"`
	HoursCount     models.Hours `json:"hours_count" validate:"gte=0"`
	InstructorID   *string      `json:"instructor_id"`
	InstructorName *string      `json:"instructor_name"`
	InstructorMail *string      `json:"instructor_email" validate:"omitempty,email"`
	DayOfWeek      string       `json:"day_of_week" validate:"required"`
}

// ScheduleService manages the weekly activity schedule and the school roster
// derived from it.
type ScheduleService struct {
	repo      scheduleRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewScheduleService constructs the schedule service.
func NewScheduleService(repo scheduleRepository, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// List returns the full weekly schedule.
func (s *ScheduleService) List(ctx context.Context) ([]models.ScheduleEntry, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule")
	}
	return entries, nil
}

// ListToday returns the schedule rows whose day-of-week matches today,
// using the Hebrew day names stored on the rows.
func (s *ScheduleService) ListToday(ctx context.Context) ([]models.ScheduleEntry, error) {
	day := models.HebrewWeekday(s.now())
	entries, err := s.repo.ListByDay(ctx, day)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list today's schedule")
	}
	return entries, nil
}

// ListForInstructor returns the rows assigned to an instructor, matched by
// profile id or by email.
func (s *ScheduleService) ListForInstructor(ctx context.Context, instructorID, email string) ([]models.ScheduleEntry, error) {
	entries, err := s.repo.ListByInstructor(ctx, instructorID, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructor schedule")
	}
	return entries, nil
}

// Schools returns the distinct schools referenced by the schedule. When the
// same school appears with several cities the earliest row wins.
func (s *ScheduleService) Schools(ctx context.Context) ([]models.School, error) {
	schools, err := s.repo.ListSchools(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schools")
	}
	return schools, nil
}

// Create adds a schedule row.
func (s *ScheduleService) Create(ctx context.Context, input ScheduleInput) (*models.ScheduleEntry, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	entry := &models.ScheduleEntry{
		SchoolName:      input.SchoolName,
		City:            input.City,
		ClassName:       input.ClassName,
		ActivityHours:   input.ActivityHours,
		HoursCount:      input.HoursCount,
		InstructorID:    input.InstructorID,
		InstructorName:  input.InstructorName,
		InstructorEmail: input.InstructorMail,
		DayOfWeek:       input.DayOfWeek,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule entry")
	}
	s.logger.Info("schedule entry created",
		zap.String("school", entry.SchoolName),
		zap.String("day", entry.DayOfWeek))
	return entry, nil
}

// Update rewrites a schedule row.
func (s *ScheduleService) Update(ctx context.Context, id string, input ScheduleInput) (*models.ScheduleEntry, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound.Clone("schedule entry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule entry")
	}

	existing.SchoolName = input.SchoolName
	existing.City = input.City
	existing.ClassName = input.ClassName
	existing.ActivityHours = input.ActivityHours
	existing.HoursCount = input.HoursCount
	existing.InstructorID = input.InstructorID
	existing.InstructorName = input.InstructorName
	existing.InstructorEmail = input.InstructorMail
	existing.DayOfWeek = input.DayOfWeek
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule entry")
	}
	return existing, nil
}

// Delete removes a schedule row.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound.Clone("schedule entry not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule entry")
	}
	return nil
}
