package services

import (
	"context"
	"errors"

	"edutech/internal/auth"
	apperrors "edutech/internal/errors"
	"edutech/internal/models"
	"edutech/internal/store"
)

// userService handles user administration.
type userService struct {
	users *store.UserRepository
	logs  *store.AuditLogRepository
	audit AuditServicer
}

// NewUserService creates a new UserServicer.
func NewUserService(users *store.UserRepository, logs *store.AuditLogRepository, audit AuditServicer) UserServicer {
	return &userService{users: users, logs: logs, audit: audit}
}

// ListUsers returns every user, newest first. Admin only.
func (s *userService) ListUsers(ctx context.Context, actor *auth.Identity) ([]models.UserSummary, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries, nil
}

// GetUser returns a user to that user or to an admin.
func (s *userService) GetUser(ctx context.Context, actor *auth.Identity, id int64) (*models.UserSummary, error) {
	if err := auth.RequireSelfOrAdmin(actor, id); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := user.Summary()
	return &summary, nil
}

// DeleteUser removes a non-admin user together with their enrollments and
// logs. The audit entry is attributed to the acting admin so that it survives
// the cascade.
func (s *userService) DeleteUser(ctx context.Context, actor *auth.Identity, id int64) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}
	if actor.UserID == id {
		return apperrors.ErrSelfDeletion
	}

	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if target.IsAdmin() {
		return apperrors.ErrAdminDeletion
	}

	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !deleted {
		return apperrors.ErrUserNotFound
	}

	s.audit.Record(ctx, actor.UserID, models.EventUserDeleted, target.Email, target.FullName,
		"User deleted by admin: "+actor.Email)

	return nil
}

// GetUserLogs returns the audit entries attributed to a user. Admin only.
func (s *userService) GetUserLogs(ctx context.Context, actor *auth.Identity, id int64) ([]models.AuditLog, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	logs, err := s.logs.ListByUser(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return logs, nil
}
