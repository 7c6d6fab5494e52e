package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"edutech/internal/auth"
	"edutech/internal/middleware"
	"edutech/internal/models"
	"edutech/internal/services"
	"edutech/internal/validator"
)

// --- mock services ---

type mockAuthService struct {
	registerFn    func(email, password, fullName string) (*services.AuthResult, error)
	loginFn       func(email, password string) (*services.AuthResult, error)
	verifyTokenFn func(token string) (*models.UserSummary, error)
}

func (m *mockAuthService) Register(_ context.Context, email, password, fullName string) (*services.AuthResult, error) {
	if m.registerFn != nil {
		return m.registerFn(email, password, fullName)
	}
	return &services.AuthResult{}, nil
}

func (m *mockAuthService) Login(_ context.Context, email, password string) (*services.AuthResult, error) {
	if m.loginFn != nil {
		return m.loginFn(email, password)
	}
	return &services.AuthResult{}, nil
}

func (m *mockAuthService) VerifyToken(_ context.Context, token string) (*models.UserSummary, error) {
	if m.verifyTokenFn != nil {
		return m.verifyTokenFn(token)
	}
	return &models.UserSummary{}, nil
}

type mockUserService struct {
	listUsersFn   func(actor *auth.Identity) ([]models.UserSummary, error)
	getUserFn     func(actor *auth.Identity, id int64) (*models.UserSummary, error)
	deleteUserFn  func(actor *auth.Identity, id int64) error
	getUserLogsFn func(actor *auth.Identity, id int64) ([]models.AuditLog, error)
}

func (m *mockUserService) ListUsers(_ context.Context, actor *auth.Identity) ([]models.UserSummary, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(actor)
	}
	return nil, nil
}

func (m *mockUserService) GetUser(_ context.Context, actor *auth.Identity, id int64) (*models.UserSummary, error) {
	if m.getUserFn != nil {
		return m.getUserFn(actor, id)
	}
	return &models.UserSummary{ID: id}, nil
}

func (m *mockUserService) DeleteUser(_ context.Context, actor *auth.Identity, id int64) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(actor, id)
	}
	return nil
}

func (m *mockUserService) GetUserLogs(_ context.Context, actor *auth.Identity, id int64) ([]models.AuditLog, error) {
	if m.getUserLogsFn != nil {
		return m.getUserLogsFn(actor, id)
	}
	return nil, nil
}

type mockCourseService struct {
	listCoursesFn  func() ([]models.Course, error)
	getCourseFn    func(id int64) (*models.Course, error)
	createCourseFn func(actor *auth.Identity, input services.CourseInput) (*models.Course, error)
}

func (m *mockCourseService) ListCourses(_ context.Context) ([]models.Course, error) {
	if m.listCoursesFn != nil {
		return m.listCoursesFn()
	}
	return nil, nil
}

func (m *mockCourseService) GetCourse(_ context.Context, id int64) (*models.Course, error) {
	if m.getCourseFn != nil {
		return m.getCourseFn(id)
	}
	return &models.Course{ID: id}, nil
}

func (m *mockCourseService) CreateCourse(_ context.Context, actor *auth.Identity, input services.CourseInput) (*models.Course, error) {
	if m.createCourseFn != nil {
		return m.createCourseFn(actor, input)
	}
	return &models.Course{ID: 1, Title: input.Title}, nil
}

type mockEnrollmentService struct {
	enrollFn            func(actor *auth.Identity, courseID int64) (*models.Enrollment, error)
	listMyEnrollmentsFn func(actor *auth.Identity) ([]models.EnrolledCourse, error)
	updateProgressFn    func(actor *auth.Identity, courseID int64, percentage int) error
}

func (m *mockEnrollmentService) Enroll(_ context.Context, actor *auth.Identity, courseID int64) (*models.Enrollment, error) {
	if m.enrollFn != nil {
		return m.enrollFn(actor, courseID)
	}
	return &models.Enrollment{ID: 1, CourseID: courseID}, nil
}

func (m *mockEnrollmentService) ListMyEnrollments(_ context.Context, actor *auth.Identity) ([]models.EnrolledCourse, error) {
	if m.listMyEnrollmentsFn != nil {
		return m.listMyEnrollmentsFn(actor)
	}
	return nil, nil
}

func (m *mockEnrollmentService) UpdateProgress(_ context.Context, actor *auth.Identity, courseID int64, percentage int) error {
	if m.updateProgressFn != nil {
		return m.updateProgressFn(actor, courseID, percentage)
	}
	return nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

var (
	testUser  = &auth.Identity{UserID: 1, Email: "user@example.com", Role: models.RoleUser}
	testAdmin = &auth.Identity{UserID: 2, Email: "admin@example.com", Role: models.RoleAdmin}
)

func injectIdentity(id *auth.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id != nil {
			c.Set(middleware.IdentityKey, id)
		}
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
