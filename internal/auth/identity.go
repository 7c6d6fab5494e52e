package auth

import "edutech/internal/models"

// Identity is the caller resolved from a valid token.
type Identity struct {
	UserID int64
	Email  string
	Role   models.Role
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdmin
}
