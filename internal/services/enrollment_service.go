package services

import (
	"context"
	"errors"

	"edutech/internal/auth"
	apperrors "edutech/internal/errors"
	"edutech/internal/models"
	"edutech/internal/store"
)

// enrollmentService handles enrollments and progress tracking.
type enrollmentService struct {
	users       *store.UserRepository
	courses     *store.CourseRepository
	enrollments *store.EnrollmentRepository
	audit       AuditServicer
}

// NewEnrollmentService creates a new EnrollmentServicer.
func NewEnrollmentService(users *store.UserRepository, courses *store.CourseRepository, enrollments *store.EnrollmentRepository, audit AuditServicer) EnrollmentServicer {
	return &enrollmentService{users: users, courses: courses, enrollments: enrollments, audit: audit}
}

// Enroll enrolls the caller in a course. The existence check is a fast path;
// the (user_id, course_id) unique constraint decides concurrent races.
func (s *enrollmentService) Enroll(ctx context.Context, actor *auth.Identity, courseID int64) (*models.Enrollment, error) {
	if err := auth.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if courseID <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Course ID is required")
	}

	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	_, err = s.enrollments.Find(ctx, actor.UserID, courseID)
	switch {
	case err == nil:
		return nil, apperrors.ErrAlreadyEnrolled
	case !errors.Is(err, store.ErrNotFound):
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// The name snapshot is not part of the token.
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	enrollment, err := s.enrollments.Create(ctx, actor.UserID, courseID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateKey):
			return nil, apperrors.Wrap(apperrors.ErrAlreadyEnrolled, err)
		case errors.Is(err, store.ErrForeignKey):
			return nil, apperrors.Wrap(apperrors.ErrNotFound, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Record(ctx, user.ID, models.EventCourseEnrollment, user.Email, user.FullName, "Enrolled in: "+course.Title)

	return enrollment, nil
}

// ListMyEnrollments returns the caller's enrollments with their courses.
func (s *enrollmentService) ListMyEnrollments(ctx context.Context, actor *auth.Identity) ([]models.EnrolledCourse, error) {
	if err := auth.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	enrolled, err := s.enrollments.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return enrolled, nil
}

// UpdateProgress sets the caller's progress in a course. Setting the same
// value twice is a no-op.
func (s *enrollmentService) UpdateProgress(ctx context.Context, actor *auth.Identity, courseID int64, percentage int) error {
	if err := auth.RequireAuthenticated(actor); err != nil {
		return err
	}
	if percentage < 0 || percentage > 100 {
		return apperrors.ErrInvalidProgress
	}

	updated, err := s.enrollments.UpdateProgress(ctx, actor.UserID, courseID, percentage)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !updated {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}
