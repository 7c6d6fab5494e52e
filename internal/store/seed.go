package store

import (
	"context"
	"fmt"

	"edutech/internal/logger"
	"edutech/internal/models"
)

// PasswordHasher hashes the seeded admin password.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// AdminAccount describes the default admin created on first boot.
type AdminAccount struct {
	Email    string
	Password string
	FullName string
}

// SampleCourses are inserted when the catalog is empty.
var SampleCourses = []models.Course{
	{
		Title:         "Web Development Bootcamp",
		Description:   "Learn full-stack web development with modern technologies",
		Price:         299.99,
		DurationHours: 120,
		Category:      "Web Development",
		Image:         "🌐",
	},
	{
		Title:         "Data Science Fundamentals",
		Description:   "Python, Machine Learning, and Data Analysis",
		Price:         399.99,
		DurationHours: 100,
		Category:      "Data Science",
		Image:         "📊",
	},
	{
		Title:         "Mobile App Development",
		Description:   "React Native, Flutter, and iOS/Android development",
		Price:         349.99,
		DurationHours: 90,
		Category:      "Mobile Development",
		Image:         "📱",
	},
}

// Seeder populates a freshly migrated store. Running it again is a no-op:
// the admin is gated on "no admin exists" and the sample courses on "no
// course exists", independently of each other.
type Seeder struct {
	users   *UserRepository
	courses *CourseRepository
	logs    *AuditLogRepository
	hasher  PasswordHasher
}

// NewSeeder creates a Seeder.
func NewSeeder(users *UserRepository, courses *CourseRepository, logs *AuditLogRepository, hasher PasswordHasher) *Seeder {
	return &Seeder{users: users, courses: courses, logs: logs, hasher: hasher}
}

// Seed creates the default admin and the sample courses when missing.
func (s *Seeder) Seed(ctx context.Context, admin AdminAccount) error {
	if err := s.seedAdmin(ctx, admin); err != nil {
		return err
	}
	return s.seedCourses(ctx)
}

func (s *Seeder) seedAdmin(ctx context.Context, admin AdminAccount) error {
	count, err := s.users.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := s.hasher.Hash(admin.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	user := &models.User{
		Email:        admin.Email,
		PasswordHash: hash,
		FullName:     admin.FullName,
		Role:         models.RoleAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("create default admin %s: %w", admin.Email, err)
	}
	logger.Get().Infow("default admin user created", "user_id", user.ID, "email", user.Email)

	entry := &models.AuditLog{
		UserID:   user.ID,
		LogType:  models.EventAdminCreated,
		Email:    user.Email,
		FullName: user.FullName,
		Action:   "Initial admin account created",
	}
	if err := s.logs.Append(ctx, entry); err != nil {
		logger.Get().Errorw("failed to record admin creation", "error", err, "user_id", user.ID)
	}
	return nil
}

func (s *Seeder) seedCourses(ctx context.Context) error {
	count, err := s.courses.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i := range SampleCourses {
		course := SampleCourses[i]
		if err := s.courses.Create(ctx, &course); err != nil {
			return fmt.Errorf("seed course %q: %w", course.Title, err)
		}
	}
	logger.Get().Infow("sample courses added", "count", len(SampleCourses))
	return nil
}
