package services

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"edutech/internal/auth"
	"edutech/internal/models"
	"edutech/internal/store"
	"edutech/internal/testutil"
)

// testEnv wires every service over one in-memory database.
type testEnv struct {
	db          *gorm.DB
	tokens      *auth.TokenService
	users       *store.UserRepository
	courses     *store.CourseRepository
	enrollments *store.EnrollmentRepository
	logs        *store.AuditLogRepository

	auth       AuthServicer
	user       UserServicer
	course     CourseServicer
	enrollment EnrollmentServicer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	ex := store.NewExecutor(db, 5*time.Second)

	env := &testEnv{
		db:          db,
		tokens:      auth.NewTokenService(auth.TokenConfig{Secret: "test-secret", Issuer: "edutech-test", Lifetime: time.Hour}),
		users:       store.NewUserRepository(ex),
		courses:     store.NewCourseRepository(ex),
		enrollments: store.NewEnrollmentRepository(ex),
		logs:        store.NewAuditLogRepository(ex),
	}
	audit := NewAuditService(env.logs)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)

	env.auth = NewAuthService(env.users, hasher, env.tokens, audit)
	env.user = NewUserService(env.users, env.logs, audit)
	env.course = NewCourseService(env.courses, nil)
	env.enrollment = NewEnrollmentService(env.users, env.courses, env.enrollments, audit)
	return env
}

func identityOf(u *models.User) *auth.Identity {
	return &auth.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func (e *testEnv) logTypes(t *testing.T, userID int64) []string {
	t.Helper()
	var types []string
	if err := e.db.Table("user_logs").Where("user_id = ?", userID).Order("id").Pluck("log_type", &types).Error; err != nil {
		t.Fatalf("failed to read logs: %v", err)
	}
	return types
}
