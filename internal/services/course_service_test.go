package services

import (
	"context"
	"testing"

	"edutech/internal/models"
	"edutech/internal/testutil"
)

// memoryCourseCache is an in-process CourseCache used to observe cache-aside behaviour.
type memoryCourseCache struct {
	list        []models.Course
	hasList     bool
	byID        map[int64]*models.Course
	invalidated int
}

func newMemoryCourseCache() *memoryCourseCache {
	return &memoryCourseCache{byID: map[int64]*models.Course{}}
}

func (c *memoryCourseCache) GetList(context.Context) ([]models.Course, bool) { return c.list, c.hasList }
func (c *memoryCourseCache) SetList(_ context.Context, courses []models.Course) {
	c.list, c.hasList = courses, true
}
func (c *memoryCourseCache) Get(_ context.Context, id int64) (*models.Course, bool) {
	course, ok := c.byID[id]
	return course, ok
}
func (c *memoryCourseCache) Set(_ context.Context, course *models.Course) { c.byID[course.ID] = course }
func (c *memoryCourseCache) Invalidate(context.Context) {
	c.list, c.hasList = nil, false
	c.invalidated++
}

func TestCreateCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("admin_with_defaults", func(t *testing.T) {
		env := newTestEnv(t)
		admin := testutil.CreateTestAdmin(t, env.db)

		course, err := env.course.CreateCourse(ctx, identityOf(admin), CourseInput{Title: "Go Fundamentals"})
		testutil.AssertNoError(t, err)

		if course.ID == 0 {
			t.Fatal("expected non-zero course ID")
		}
		if course.Image != models.DefaultCourseIcon {
			t.Errorf("expected default icon, got %q", course.Image)
		}
		if course.Price != 0 || course.DurationHours != 0 || course.Description != "" {
			t.Errorf("expected zero defaults, got %+v", course)
		}
		if course.CreatedAt.IsZero() {
			t.Error("expected created_at to be read back")
		}
	})

	t.Run("all_fields", func(t *testing.T) {
		env := newTestEnv(t)
		admin := testutil.CreateTestAdmin(t, env.db)

		in := CourseInput{Title: "Rust", Description: "Systems", Price: 19.5, DurationHours: 12, Category: "Programming", Image: "🦀"}
		course, err := env.course.CreateCourse(ctx, identityOf(admin), in)
		testutil.AssertNoError(t, err)

		if course.Title != in.Title || course.Price != in.Price || course.DurationHours != in.DurationHours ||
			course.Category != in.Category || course.Image != in.Image || course.Description != in.Description {
			t.Errorf("unexpected course: %+v", course)
		}
	})

	t.Run("non_admin_has_no_side_effects", func(t *testing.T) {
		env := newTestEnv(t)
		user := testutil.CreateTestUser(t, env.db)

		_, err := env.course.CreateCourse(ctx, identityOf(user), CourseInput{Title: "Nope"})
		testutil.AssertAppError(t, err, "FORBIDDEN")
		if n := testutil.CountRows(t, env.db, "courses", ""); n != 0 {
			t.Errorf("expected no courses, got %d", n)
		}
	})

	t.Run("invalid_input", func(t *testing.T) {
		env := newTestEnv(t)
		admin := identityOf(testutil.CreateTestAdmin(t, env.db))

		for name, in := range map[string]CourseInput{
			"blank_title":       {Title: "   "},
			"negative_price":    {Title: "x", Price: -1},
			"price_too_large":   {Title: "x", Price: 1e9},
			"negative_duration": {Title: "x", DurationHours: -1},
		} {
			t.Run(name, func(t *testing.T) {
				_, err := env.course.CreateCourse(ctx, admin, in)
				testutil.AssertAppError(t, err, "INVALID_INPUT")
			})
		}
	})

	t.Run("max_price", func(t *testing.T) {
		env := newTestEnv(t)
		admin := identityOf(testutil.CreateTestAdmin(t, env.db))

		course, err := env.course.CreateCourse(ctx, admin, CourseInput{Title: "Premium", Price: MaxCoursePrice})
		testutil.AssertNoError(t, err)
		if course.Price != MaxCoursePrice {
			t.Errorf("expected price %v, got %v", MaxCoursePrice, course.Price)
		}
	})
}

func TestGetCourse(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	course := testutil.CreateTestCourse(t, env.db)

	got, err := env.course.GetCourse(ctx, course.ID)
	testutil.AssertNoError(t, err)
	if got.Title != course.Title {
		t.Errorf("expected %q, got %q", course.Title, got.Title)
	}

	_, err = env.course.GetCourse(ctx, 9999)
	testutil.AssertAppError(t, err, "COURSE_NOT_FOUND")
}

func TestListCourses_cache(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := identityOf(testutil.CreateTestAdmin(t, env.db))
	testutil.CreateTestCourse(t, env.db)

	c := newMemoryCourseCache()
	svc := NewCourseService(env.courses, c)

	courses, err := svc.ListCourses(ctx)
	testutil.AssertNoError(t, err)
	if len(courses) != 1 || !c.hasList {
		t.Fatalf("expected list of 1 to be cached, got %d (cached=%v)", len(courses), c.hasList)
	}

	// A cached list is served without touching the store.
	c.list = append(c.list, models.Course{ID: 999, Title: "cached only"})
	courses, err = svc.ListCourses(ctx)
	testutil.AssertNoError(t, err)
	if len(courses) != 2 {
		t.Fatalf("expected cached list of 2, got %d", len(courses))
	}

	created, err := svc.CreateCourse(ctx, admin, CourseInput{Title: "Fresh"})
	testutil.AssertNoError(t, err)
	if c.invalidated != 1 {
		t.Errorf("expected one invalidation, got %d", c.invalidated)
	}

	courses, err = svc.ListCourses(ctx)
	testutil.AssertNoError(t, err)
	if len(courses) != 2 || courses[0].ID != created.ID {
		t.Errorf("expected fresh list with newest first, got %+v", courses)
	}

	got, err := svc.GetCourse(ctx, created.ID)
	testutil.AssertNoError(t, err)
	if cached, ok := c.byID[created.ID]; !ok || cached.Title != got.Title {
		t.Error("expected course to be cached after GetCourse")
	}
}
