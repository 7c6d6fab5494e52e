package testutil_test

import (
	"testing"

	"edutech/internal/errors"
	"edutech/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)

	for _, table := range []string{"users", "courses", "enrollments", "user_logs"} {
		var count int64
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_isolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	second := testutil.SetupTestDB(t)

	testutil.CreateTestCourse(t, first)

	if n := testutil.CountRows(t, second, "courses", ""); n != 0 {
		t.Errorf("expected databases to be isolated, second has %d courses", n)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)

	user := testutil.CreateTestUser(t, db)
	if user.ID == 0 {
		t.Fatal("user should have a non-zero ID")
	}
	if user.IsAdmin() {
		t.Error("expected regular user")
	}

	admin := testutil.CreateTestAdmin(t, db)
	if !admin.IsAdmin() {
		t.Error("expected admin user")
	}

	course := testutil.CreateTestCourse(t, db)
	if course.ID == 0 {
		t.Fatal("course should have a non-zero ID")
	}

	enrollment := testutil.CreateTestEnrollment(t, db, user.ID, course.ID)
	if enrollment.ProgressPercentage != 0 {
		t.Errorf("expected zero progress, got %d", enrollment.ProgressPercentage)
	}

	if n := testutil.CountRows(t, db, "enrollments", "user_id = ?", user.ID); n != 1 {
		t.Errorf("expected 1 enrollment, got %d", n)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)

	user := testutil.CreateTestUser(t, db)
	course := testutil.CreateTestCourse(t, db)
	testutil.CreateTestEnrollment(t, db, user.ID, course.ID)

	if err := db.Exec("DELETE FROM users WHERE id = ?", user.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if n := testutil.CountRows(t, db, "enrollments", ""); n != 0 {
		t.Errorf("expected enrollments to cascade, got %d", n)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrCourseNotFound, "custom message")
	testutil.AssertAppError(t, err, "COURSE_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
