package services

import (
	"context"
	"errors"
	"strings"

	"edutech/internal/auth"
	"edutech/internal/cache"
	apperrors "edutech/internal/errors"
	"edutech/internal/models"
	"edutech/internal/store"
)

// MaxCoursePrice is the largest price the NUMERIC(10,2) column holds.
const MaxCoursePrice = 99999999.99

// courseService handles the course catalog. Reads go through the cache; a
// new course drops the cached list.
type courseService struct {
	courses *store.CourseRepository
	cache   cache.CourseCache
}

// NewCourseService creates a new CourseServicer. A nil cache disables caching.
func NewCourseService(courses *store.CourseRepository, courseCache cache.CourseCache) CourseServicer {
	if courseCache == nil {
		courseCache = cache.NoopCourseCache{}
	}
	return &courseService{courses: courses, cache: courseCache}
}

// ListCourses returns the whole catalog, newest first.
func (s *courseService) ListCourses(ctx context.Context) ([]models.Course, error) {
	if courses, ok := s.cache.GetList(ctx); ok {
		return courses, nil
	}

	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.cache.SetList(ctx, courses)
	return courses, nil
}

// GetCourse returns one course.
func (s *courseService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	if course, ok := s.cache.Get(ctx, id); ok {
		return course, nil
	}

	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.cache.Set(ctx, course)
	return course, nil
}

// CreateCourse adds a course to the catalog. Admin only.
func (s *courseService) CreateCourse(ctx context.Context, actor *auth.Identity, input CourseInput) (*models.Course, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Course title is required")
	}
	if input.Price < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Price must not be negative")
	}
	if input.Price > MaxCoursePrice {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Price must not exceed 99999999.99")
	}
	if input.DurationHours < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Duration must not be negative")
	}

	course := &models.Course{
		Title:         input.Title,
		Description:   input.Description,
		Price:         input.Price,
		DurationHours: input.DurationHours,
		Category:      input.Category,
		Image:         input.Image,
	}
	if course.Image == "" {
		course.Image = models.DefaultCourseIcon
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.cache.Invalidate(ctx)

	created, err := s.courses.FindByID(ctx, course.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return created, nil
}
