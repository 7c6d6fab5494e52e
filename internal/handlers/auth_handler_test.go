package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "edutech/internal/errors"
	"edutech/internal/models"
	"edutech/internal/services"
)

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/verify", handler.Verify)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockAuthService{
			registerFn: func(email, _, fullName string) (*services.AuthResult, error) {
				return &services.AuthResult{
					Token: "tok",
					User:  models.UserSummary{ID: 1, Email: email, FullName: fullName, Role: models.RoleUser},
				}, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(svc))

		rec := doRequest(r, "POST", "/auth/register", `{"email":"alice@example.com","password":"secret1","full_name":"Alice"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token"] != "tok" {
			t.Errorf("expected token, got %v", result["token"])
		}
		user := result["user"].(map[string]interface{})
		if user["email"] != "alice@example.com" || user["full_name"] != "Alice" || user["role"] != "user" {
			t.Errorf("unexpected user: %v", user)
		}
		if _, leaked := user["password_hash"]; leaked {
			t.Error("password hash must not be serialized")
		}
	})

	t.Run("returns 400 on missing email", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}))

		rec := doRequest(r, "POST", "/auth/register", `{"password":"secret1"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on invalid email format", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}))

		rec := doRequest(r, "POST", "/auth/register", `{"email":"not-an-email","password":"secret1"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("passes service validation errors through", func(t *testing.T) {
		svc := &mockAuthService{
			registerFn: func(_, _, _ string) (*services.AuthResult, error) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Password must be at least 6 characters")
			},
		}
		r := setupAuthRouter(NewAuthHandler(svc))

		rec := doRequest(r, "POST", "/auth/register", `{"email":"a@example.com","password":"123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "INVALID_INPUT")
		if msg := result["error"].(map[string]interface{})["message"]; msg != "Password must be at least 6 characters" {
			t.Errorf("unexpected message %v", msg)
		}
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		svc := &mockAuthService{
			registerFn: func(_, _, _ string) (*services.AuthResult, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		r := setupAuthRouter(NewAuthHandler(svc))

		rec := doRequest(r, "POST", "/auth/register", `{"email":"dup@example.com","password":"secret1"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_EMAIL")
	})

	t.Run("returns opaque 500 on unexpected error", func(t *testing.T) {
		svc := &mockAuthService{
			registerFn: func(_, _, _ string) (*services.AuthResult, error) {
				return nil, fmt.Errorf("db connection lost")
			},
		}
		r := setupAuthRouter(NewAuthHandler(svc))

		rec := doRequest(r, "POST", "/auth/register", `{"email":"a@example.com","password":"secret1"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "INTERNAL_ERROR")
		if msg := result["error"].(map[string]interface{})["message"]; msg == "db connection lost" {
			t.Error("internal error detail leaked to client")
		}
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		svc := &mockAuthService{
			loginFn: func(email, _ string) (*services.AuthResult, error) {
				return &services.AuthResult{Token: "tok", User: models.UserSummary{ID: 1, Email: email}}, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(svc))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"test@example.com","password":"secret1"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["token"] != "tok" {
			t.Error("expected token")
		}
	})

	t.Run("returns 401 on invalid credentials", func(t *testing.T) {
		svc := &mockAuthService{
			loginFn: func(_, _ string) (*services.AuthResult, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		r := setupAuthRouter(NewAuthHandler(svc))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"test@example.com","password":"wrong"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 400 on missing fields", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}))

		rec := doRequest(r, "POST", "/auth/login", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on blank email", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"   ","password":"x"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_Verify(t *testing.T) {
	t.Run("returns 200 with user", func(t *testing.T) {
		svc := &mockAuthService{
			verifyTokenFn: func(token string) (*models.UserSummary, error) {
				if token != "good" {
					t.Errorf("unexpected token %q", token)
				}
				return &models.UserSummary{ID: 7, Email: "v@example.com"}, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(svc))

		rec := doRequest(r, "POST", "/auth/verify", `{"token":"good"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		user := parseJSON(t, rec)["user"].(map[string]interface{})
		if user["id"].(float64) != 7 {
			t.Errorf("unexpected user %v", user)
		}
	})

	t.Run("returns 401 on invalid token", func(t *testing.T) {
		svc := &mockAuthService{
			verifyTokenFn: func(string) (*models.UserSummary, error) { return nil, apperrors.ErrInvalidToken },
		}
		r := setupAuthRouter(NewAuthHandler(svc))

		rec := doRequest(r, "POST", "/auth/verify", `{"token":"bad"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_TOKEN")
	})

	t.Run("returns 404 when user is gone", func(t *testing.T) {
		svc := &mockAuthService{
			verifyTokenFn: func(string) (*models.UserSummary, error) { return nil, apperrors.ErrUserNotFound },
		}
		r := setupAuthRouter(NewAuthHandler(svc))

		rec := doRequest(r, "POST", "/auth/verify", `{"token":"orphan"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("returns 400 without token", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}))

		rec := doRequest(r, "POST", "/auth/verify", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
