package store

import (
	"context"
	"fmt"
	"time"

	"edutech/internal/models"
)

const userColumns = "id, email, password_hash, full_name, role, created_at, updated_at"

type userRow struct {
	ID           int64     `gorm:"column:id"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	FullName     string    `gorm:"column:full_name"`
	Role         string    `gorm:"column:role"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (r *userRow) toModel() *models.User {
	return &models.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		FullName:     r.FullName,
		Role:         models.Role(r.Role),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// UserRepository reads and writes the users relation.
type UserRepository struct {
	ex Executor
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(ex Executor) *UserRepository {
	return &UserRepository{ex: ex}
}

// FindByID returns the user with the given id or ErrNotFound.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = ? LIMIT 1", id)
}

// FindByEmail returns the user with the exact email or ErrNotFound.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE email = ? LIMIT 1", email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	var row userRow
	found, err := r.ex.FetchOne(ctx, &row, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return row.toModel(), nil
}

// List returns all users, newest first.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var rows []userRow
	if err := r.ex.FetchMany(ctx, &rows, "SELECT "+userColumns+" FROM users ORDER BY created_at DESC, id DESC"); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]models.User, 0, len(rows))
	for i := range rows {
		users = append(users, *rows[i].toModel())
	}
	return users, nil
}

// CountByRole returns the number of users holding role.
func (r *UserRepository) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	var count int64
	if _, err := r.ex.FetchOne(ctx, &count, "SELECT COUNT(*) FROM users WHERE role = ?", string(role)); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// Create inserts user and fills in its id and timestamps. A taken email
// yields ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	res, err := r.ex.Execute(ctx,
		"INSERT INTO users (email, password_hash, full_name, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?) RETURNING id",
		user.Email, user.PasswordHash, user.FullName, string(user.Role), now, now)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	user.ID = res.GeneratedID
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// Delete removes the user; enrollments and logs go with it through the
// foreign-key cascade. It reports whether a row was deleted.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.ex.Execute(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return res.RowsAffected > 0, nil
}
