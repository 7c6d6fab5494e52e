package store

import (
	"context"
	"fmt"
	"time"

	"edutech/internal/models"
)

const enrollmentColumns = "id, user_id, course_id, enrolled_at, progress_percentage, completed_at"

type enrollmentRow struct {
	ID                 int64      `gorm:"column:id"`
	UserID             int64      `gorm:"column:user_id"`
	CourseID           int64      `gorm:"column:course_id"`
	EnrolledAt         time.Time  `gorm:"column:enrolled_at"`
	ProgressPercentage int        `gorm:"column:progress_percentage"`
	CompletedAt        *time.Time `gorm:"column:completed_at"`
}

func (r *enrollmentRow) toModel() *models.Enrollment {
	return &models.Enrollment{
		ID:                 r.ID,
		UserID:             r.UserID,
		CourseID:           r.CourseID,
		EnrolledAt:         r.EnrolledAt,
		ProgressPercentage: r.ProgressPercentage,
		CompletedAt:        r.CompletedAt,
	}
}

type enrolledCourseRow struct {
	ID                 int64      `gorm:"column:id"`
	UserID             int64      `gorm:"column:user_id"`
	CourseID           int64      `gorm:"column:course_id"`
	EnrolledAt         time.Time  `gorm:"column:enrolled_at"`
	ProgressPercentage int        `gorm:"column:progress_percentage"`
	CompletedAt        *time.Time `gorm:"column:completed_at"`
	Title              string     `gorm:"column:title"`
	Description        string     `gorm:"column:description"`
	Price              float64    `gorm:"column:price"`
	DurationHours      int        `gorm:"column:duration_hours"`
	Category           string     `gorm:"column:category"`
	Image              string     `gorm:"column:image"`
}

func (r *enrolledCourseRow) toModel() models.EnrolledCourse {
	return models.EnrolledCourse{
		Enrollment: models.Enrollment{
			ID:                 r.ID,
			UserID:             r.UserID,
			CourseID:           r.CourseID,
			EnrolledAt:         r.EnrolledAt,
			ProgressPercentage: r.ProgressPercentage,
			CompletedAt:        r.CompletedAt,
		},
		Title:         r.Title,
		Description:   r.Description,
		Price:         r.Price,
		DurationHours: r.DurationHours,
		Category:      r.Category,
		Image:         r.Image,
	}
}

// EnrollmentRepository reads and writes enrollments. Uniqueness of
// (user_id, course_id) is enforced by the schema.
type EnrollmentRepository struct {
	ex Executor
}

// NewEnrollmentRepository creates an EnrollmentRepository.
func NewEnrollmentRepository(ex Executor) *EnrollmentRepository {
	return &EnrollmentRepository{ex: ex}
}

// Find returns the enrollment of userID in courseID or ErrNotFound.
func (r *EnrollmentRepository) Find(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	var row enrollmentRow
	found, err := r.ex.FetchOne(ctx, &row,
		"SELECT "+enrollmentColumns+" FROM enrollments WHERE user_id = ? AND course_id = ? LIMIT 1", userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("fetch enrollment: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return row.toModel(), nil
}

// Create enrolls userID in courseID. A second enrollment yields ErrDuplicateKey;
// a missing user or course yields ErrForeignKey.
func (r *EnrollmentRepository) Create(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	now := time.Now().UTC()
	res, err := r.ex.Execute(ctx,
		"INSERT INTO enrollments (user_id, course_id, enrolled_at, progress_percentage) VALUES (?, ?, ?, 0) RETURNING id",
		userID, courseID, now)
	if err != nil {
		return nil, fmt.Errorf("insert enrollment: %w", err)
	}
	return &models.Enrollment{
		ID:         res.GeneratedID,
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: now,
	}, nil
}

// ListByUser returns the user's enrollments joined with their courses, most
// recent first.
func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID int64) ([]models.EnrolledCourse, error) {
	var rows []enrolledCourseRow
	err := r.ex.FetchMany(ctx, &rows, `
		SELECT e.id, e.user_id, e.course_id, e.enrolled_at, e.progress_percentage, e.completed_at,
		       c.title, c.description, c.price, c.duration_hours, c.category, c.image
		FROM enrollments e
		JOIN courses c ON e.course_id = c.id
		WHERE e.user_id = ?
		ORDER BY e.enrolled_at DESC, e.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	out := make([]models.EnrolledCourse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}

// UpdateProgress sets the progress of an existing enrollment in place.
// completed_at is stamped the first time progress reaches 100 and cleared
// below 100. It reports whether an enrollment matched.
func (r *EnrollmentRepository) UpdateProgress(ctx context.Context, userID, courseID int64, percentage int) (bool, error) {
	now := time.Now().UTC()
	res, err := r.ex.Execute(ctx, `
		UPDATE enrollments
		SET progress_percentage = ?,
		    completed_at = CASE WHEN ? = 100 THEN COALESCE(completed_at, ?) ELSE NULL END
		WHERE user_id = ? AND course_id = ?`,
		percentage, percentage, now, userID, courseID)
	if err != nil {
		return false, fmt.Errorf("update progress: %w", err)
	}
	return res.RowsAffected > 0, nil
}
