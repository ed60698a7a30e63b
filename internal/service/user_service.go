package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Moti-Eli/edu-plus/internal/models"
	appErrors "github.com/Moti-Eli/edu-plus/pkg/errors"
)

type userRepository interface {
	ListAll(ctx context.Context) ([]models.UserProfile, error)
	ListActive(ctx context.Context) ([]models.UserProfile, error)
	FindByID(ctx context.Context, id string) (*models.UserProfile, error)
	UpdateRole(ctx context.Context, id string, role models.UserRole, updatedAt time.Time) error
	Deactivate(ctx context.Context, id string, updatedAt time.Time) error
	RevokeUserRefreshTokens(ctx context.Context, userID string) error
}

// UserService handles the admin user-management workflows.
type UserService struct {
	repo   userRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, logger: logger, now: time.Now}
}

// List returns every profile, including deactivated ones.
func (s *UserService) List(ctx context.Context) ([]models.UserProfile, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return users, nil
}

// Get returns a single profile.
func (s *UserService) Get(ctx context.Context, id string) (*models.UserProfile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound.Clone("user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

// ToggleRole flips a profile between admin and instructor and returns the
// updated profile.
func (s *UserService) ToggleRole(ctx context.Context, id string) (*models.UserProfile, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := models.RoleInstructor
	if user.Role == models.RoleInstructor {
		next = models.RoleAdmin
	}
	updatedAt := s.now().UTC()
	if err := s.repo.UpdateRole(ctx, id, next, updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound.Clone("user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update role")
	}

	s.logger.Info("user role toggled",
		zap.String("user_id", id),
		zap.String("role", string(next)))
	user.Role = next
	user.UpdatedAt = updatedAt
	return user, nil
}

// Deactivate soft-deletes a profile and revokes its sessions. Admins cannot
// deactivate their own account.
func (s *UserService) Deactivate(ctx context.Context, id, actorID string) error {
	if id == actorID {
		return appErrors.ErrForbidden.Clone("cannot deactivate your own account")
	}

	if err := s.repo.Deactivate(ctx, id, s.now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound.Clone("user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate user")
	}
	if err := s.repo.RevokeUserRefreshTokens(ctx, id); err != nil {
		s.logger.Warn("failed to revoke sessions for deactivated user", zap.String("user_id", id), zap.Error(err))
	}

	s.logger.Info("user deactivated", zap.String("user_id", id), zap.String("actor_id", actorID))
	return nil
}
