package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"edutech/internal/auth"
	apperrors "edutech/internal/errors"
	"edutech/internal/models"
	"edutech/internal/store"
)

const (
	// Counted in characters, not bytes.
	minPasswordLength = 6
	// bcrypt only reads the first 72 bytes of its input.
	maxPasswordBytes = 72
)

// authService handles registration, login and token verification.
type authService struct {
	users  *store.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
	audit  AuditServicer
}

// NewAuthService creates a new AuthServicer.
func NewAuthService(users *store.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService, audit AuditServicer) AuthServicer {
	return &authService{users: users, hasher: hasher, tokens: tokens, audit: audit}
}

// Register creates a regular user and signs them in. The email lookup is only
// a fast path; the unique index on users.email decides concurrent races.
func (s *authService) Register(ctx context.Context, email, password, fullName string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Email and password are required")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Password must be at least 6 characters")
	}
	if len(password) > maxPasswordBytes {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Password must be at most 72 bytes")
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperrors.ErrDuplicateEmail
	case !errors.Is(err, store.ErrNotFound):
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateEmail, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Record(ctx, user.ID, models.EventRegistration, user.Email, user.FullName, "New user registration")

	return s.issue(user)
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords yield the same ErrInvalidCredentials after the same bcrypt work.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.hasher.VerifyAbsent(password)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, user.ID, models.EventLogin, user.Email, user.FullName, "User logged in")

	return result, nil
}

// VerifyToken resolves a token to the current state of its user.
func (s *authService) VerifyToken(ctx context.Context, token string) (*models.UserSummary, error) {
	if token == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Token is required")
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := user.Summary()
	return &summary, nil
}

func (s *authService) issue(user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user.Summary()}, nil
}
