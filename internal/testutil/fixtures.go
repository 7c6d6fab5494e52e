package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"edutech/internal/models"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a regular user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, fmt.Sprintf("user%d@test.com", nextID()), models.RoleUser)
}

// CreateTestUserWithEmail creates a regular user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	return createUser(t, db, email, models.RoleUser)
}

// CreateTestAdmin creates an admin user with a unique email.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, fmt.Sprintf("admin%d@test.com", nextID()), models.RoleAdmin)
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	// Timestamps are stored in UTC like the repositories do, so that
	// lexical ordering of SQLite datetimes matches chronological order.
	now := time.Now().UTC()
	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Test " + string(role),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCourse creates a course with a unique title.
func CreateTestCourse(t *testing.T, db *gorm.DB) *models.Course {
	t.Helper()

	course := &models.Course{
		Title:         fmt.Sprintf("Test Course %d", nextID()),
		Description:   "A course used in tests",
		Price:         49.99,
		DurationHours: 10,
		Category:      "Testing",
		Image:         models.DefaultCourseIcon,
		CreatedAt:     time.Now().UTC(),
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("failed to create test course: %v", err)
	}
	return course
}

// CreateTestEnrollment enrolls userID in courseID with zero progress.
func CreateTestEnrollment(t *testing.T, db *gorm.DB, userID, courseID int64) *models.Enrollment {
	t.Helper()

	enrollment := &models.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC(),
	}
	if err := db.Create(enrollment).Error; err != nil {
		t.Fatalf("failed to create test enrollment: %v", err)
	}
	return enrollment
}

// CountRows returns the number of rows in table matching the optional where clause.
func CountRows(t *testing.T, db *gorm.DB, table string, where string, args ...any) int64 {
	t.Helper()

	q := db.Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return count
}
