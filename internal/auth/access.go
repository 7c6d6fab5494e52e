package auth

import (
	apperrors "edutech/internal/errors"
)

// Guards are evaluated before any store access so that a rejected call has no
// side effects. They compose by calling them in sequence.

// RequireAuthenticated fails with ErrUnauthorized when no identity was resolved.
func RequireAuthenticated(id *Identity) error {
	if id == nil || id.UserID == 0 {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// RequireAdmin fails with ErrForbidden unless the identity is an admin.
func RequireAdmin(id *Identity) error {
	if err := RequireAuthenticated(id); err != nil {
		return err
	}
	if !id.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return nil
}

// RequireSelfOrAdmin fails with ErrForbidden unless the identity owns the
// resource or is an admin.
func RequireSelfOrAdmin(id *Identity, ownerID int64) error {
	if err := RequireAuthenticated(id); err != nil {
		return err
	}
	if id.UserID != ownerID && !id.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return nil
}
