package store

import (
	"context"
	"fmt"
	"time"

	"edutech/internal/models"
)

const courseColumns = "id, title, description, price, duration_hours, category, image, created_at"

type courseRow struct {
	ID            int64     `gorm:"column:id"`
	Title         string    `gorm:"column:title"`
	Description   string    `gorm:"column:description"`
	Price         float64   `gorm:"column:price"`
	DurationHours int       `gorm:"column:duration_hours"`
	Category      string    `gorm:"column:category"`
	Image         string    `gorm:"column:image"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (r *courseRow) toModel() *models.Course {
	return &models.Course{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Price:         r.Price,
		DurationHours: r.DurationHours,
		Category:      r.Category,
		Image:         r.Image,
		CreatedAt:     r.CreatedAt,
	}
}

// CourseRepository reads and writes the course catalog.
type CourseRepository struct {
	ex Executor
}

// NewCourseRepository creates a CourseRepository.
func NewCourseRepository(ex Executor) *CourseRepository {
	return &CourseRepository{ex: ex}
}

// List returns every course, newest first.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	var rows []courseRow
	if err := r.ex.FetchMany(ctx, &rows, "SELECT "+courseColumns+" FROM courses ORDER BY created_at DESC, id DESC"); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	courses := make([]models.Course, 0, len(rows))
	for i := range rows {
		courses = append(courses, *rows[i].toModel())
	}
	return courses, nil
}

// FindByID returns the course or ErrNotFound.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	var row courseRow
	found, err := r.ex.FetchOne(ctx, &row, "SELECT "+courseColumns+" FROM courses WHERE id = ? LIMIT 1", id)
	if err != nil {
		return nil, fmt.Errorf("fetch course: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return row.toModel(), nil
}

// Count returns the number of courses.
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if _, err := r.ex.FetchOne(ctx, &count, "SELECT COUNT(*) FROM courses"); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return count, nil
}

// Create inserts course and fills in its id and creation time.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	res, err := r.ex.Execute(ctx,
		"INSERT INTO courses (title, description, price, duration_hours, category, image, created_at) VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id",
		course.Title, course.Description, course.Price, course.DurationHours, course.Category, course.Image, now)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	course.ID = res.GeneratedID
	course.CreatedAt = now
	return nil
}
