package services

import (
	"context"
	"time"

	"edutech/internal/auth"
	"edutech/internal/models"
)

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      models.UserSummary `json:"user"`
}

// AuthServicer defines the contract for account creation and authentication.
type AuthServicer interface {
	Register(ctx context.Context, email, password, fullName string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	VerifyToken(ctx context.Context, token string) (*models.UserSummary, error)
}

// UserServicer defines the contract for user administration.
type UserServicer interface {
	ListUsers(ctx context.Context, actor *auth.Identity) ([]models.UserSummary, error)
	GetUser(ctx context.Context, actor *auth.Identity, id int64) (*models.UserSummary, error)
	DeleteUser(ctx context.Context, actor *auth.Identity, id int64) error
	GetUserLogs(ctx context.Context, actor *auth.Identity, id int64) ([]models.AuditLog, error)
}

// CourseInput holds the fields of a new course.
type CourseInput struct {
	Title         string
	Description   string
	Price         float64
	DurationHours int
	Category      string
	Image         string
}

// CourseServicer defines the contract for the course catalog.
type CourseServicer interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, actor *auth.Identity, input CourseInput) (*models.Course, error)
}

// EnrollmentServicer defines the contract for enrollments and progress tracking.
type EnrollmentServicer interface {
	Enroll(ctx context.Context, actor *auth.Identity, courseID int64) (*models.Enrollment, error)
	ListMyEnrollments(ctx context.Context, actor *auth.Identity) ([]models.EnrolledCourse, error)
	UpdateProgress(ctx context.Context, actor *auth.Identity, courseID int64, percentage int) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Record(ctx context.Context, userID int64, eventType models.EventType, email, fullName, action string)
}
