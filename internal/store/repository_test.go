package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"edutech/internal/models"
	"edutech/internal/testutil"
)

type repos struct {
	users       *UserRepository
	courses     *CourseRepository
	enrollments *EnrollmentRepository
	logs        *AuditLogRepository
}

func newRepos(t *testing.T) repos {
	t.Helper()
	ex := NewExecutor(testutil.SetupTestDB(t), time.Second)
	return repos{
		users:       NewUserRepository(ex),
		courses:     NewCourseRepository(ex),
		enrollments: NewEnrollmentRepository(ex),
		logs:        NewAuditLogRepository(ex),
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	user := &models.User{Email: "a@example.com", PasswordHash: "hash", FullName: "A"}
	testutil.AssertNoError(t, r.users.Create(ctx, user))
	if user.ID == 0 || user.Role != models.RoleUser {
		t.Fatalf("expected id and default role, got %+v", user)
	}

	t.Run("find_by_email_is_exact", func(t *testing.T) {
		got, err := r.users.FindByEmail(ctx, "a@example.com")
		testutil.AssertNoError(t, err)
		if got.ID != user.ID || got.PasswordHash != "hash" || got.CreatedAt.IsZero() {
			t.Errorf("unexpected user: %+v", got)
		}

		_, err = r.users.FindByEmail(ctx, "A@example.com")
		testutil.AssertErrorIs(t, err, ErrNotFound)
	})

	t.Run("find_by_id_missing", func(t *testing.T) {
		_, err := r.users.FindByID(ctx, 12345)
		testutil.AssertErrorIs(t, err, ErrNotFound)
	})

	t.Run("count_by_role", func(t *testing.T) {
		admin := &models.User{Email: "root@example.com", PasswordHash: "hash", Role: models.RoleAdmin}
		testutil.AssertNoError(t, r.users.Create(ctx, admin))

		n, err := r.users.CountByRole(ctx, models.RoleAdmin)
		testutil.AssertNoError(t, err)
		if n != 1 {
			t.Errorf("expected 1 admin, got %d", n)
		}

		list, err := r.users.List(ctx)
		testutil.AssertNoError(t, err)
		if len(list) != 2 || list[0].ID != admin.ID {
			t.Errorf("expected newest first, got %+v", list)
		}
	})

	t.Run("delete", func(t *testing.T) {
		ok, err := r.users.Delete(ctx, user.ID)
		testutil.AssertNoError(t, err)
		if !ok {
			t.Error("expected a row to be deleted")
		}

		ok, err = r.users.Delete(ctx, user.ID)
		testutil.AssertNoError(t, err)
		if ok {
			t.Error("expected second delete to report nothing deleted")
		}
	})
}

func TestEnrollmentRepository(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	user := &models.User{Email: "e@example.com", PasswordHash: "hash"}
	testutil.AssertNoError(t, r.users.Create(ctx, user))
	course := &models.Course{Title: "Go", Price: 10, DurationHours: 5, Category: "Dev", Image: "🐹"}
	testutil.AssertNoError(t, r.courses.Create(ctx, course))

	enrollment, err := r.enrollments.Create(ctx, user.ID, course.ID)
	testutil.AssertNoError(t, err)
	if enrollment.ID == 0 {
		t.Fatal("expected enrollment id")
	}

	_, err = r.enrollments.Create(ctx, user.ID, course.ID)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	_, err = r.enrollments.Create(ctx, user.ID, 9999)
	if !errors.Is(err, ErrForeignKey) {
		t.Fatalf("expected ErrForeignKey, got %v", err)
	}

	list, err := r.enrollments.ListByUser(ctx, user.ID)
	testutil.AssertNoError(t, err)
	if len(list) != 1 {
		t.Fatalf("expected 1 enrollment, got %d", len(list))
	}
	if got := list[0]; got.Title != "Go" || got.Image != "🐹" || got.DurationHours != 5 || got.ID != enrollment.ID {
		t.Errorf("unexpected joined row: %+v", got)
	}

	ok, err := r.enrollments.UpdateProgress(ctx, user.ID, 9999, 10)
	testutil.AssertNoError(t, err)
	if ok {
		t.Error("expected no enrollment to match")
	}
}

func TestAuditLogRepository(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	user := &models.User{Email: "l@example.com", PasswordHash: "hash", FullName: "L"}
	testutil.AssertNoError(t, r.users.Create(ctx, user))

	for _, et := range []models.EventType{models.EventRegistration, models.EventLogin} {
		entry := &models.AuditLog{UserID: user.ID, LogType: et, Email: user.Email, FullName: user.FullName, Action: string(et)}
		testutil.AssertNoError(t, r.logs.Append(ctx, entry))
		if entry.ID == 0 || entry.LoggedAt.IsZero() {
			t.Fatalf("expected id and timestamp, got %+v", entry)
		}
	}

	logs, err := r.logs.ListByUser(ctx, user.ID)
	testutil.AssertNoError(t, err)
	if len(logs) != 2 || logs[0].LogType != models.EventLogin {
		t.Errorf("expected newest first, got %+v", logs)
	}

	err = r.logs.Append(ctx, &models.AuditLog{UserID: 9999, LogType: models.EventLogin})
	if !errors.Is(err, ErrForeignKey) {
		t.Errorf("expected ErrForeignKey for unknown user, got %v", err)
	}
}
