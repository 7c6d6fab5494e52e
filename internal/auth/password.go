package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"

	"edutech/internal/logger"
)

// absentAccountSecret is hashed once to give VerifyAbsent something to compare against.
var absentAccountSecret = "edutech-absent-account"

// DefaultCost is the bcrypt work factor used for stored passwords.
const DefaultCost = 12

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	cost int

	dummyOnce sync.Once
	dummy     []byte
}

// NewPasswordHasher returns a hasher with the given bcrypt cost. Costs outside
// bcrypt's accepted range fall back to DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the salted bcrypt hash of plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. A malformed hash never matches.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// VerifyAbsent spends the same work as Verify against a throwaway hash and
// always returns false. Login calls it for unknown emails so that response
// time does not reveal whether an account exists.
func (h *PasswordHasher) VerifyAbsent(plaintext string) bool {
	h.dummyOnce.Do(func() {
		dummy, err := bcrypt.GenerateFromPassword([]byte(absentAccountSecret), h.cost)
		if err != nil {
			logger.Get().Errorw("failed to build dummy password hash, unknown-account logins are no longer timing-equalized",
				"error", err, "cost", h.cost)
			return
		}
		h.dummy = dummy
	})
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plaintext))
	return false
}
