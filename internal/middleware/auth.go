package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"edutech/internal/auth"
	apperrors "edutech/internal/errors"
)

// IdentityKey is the gin context key holding the caller's *auth.Identity.
const IdentityKey = "identity"

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware resolves the bearer token into an identity and stores it in
// the context. Requests without a valid token are rejected with 401. The user
// row is not consulted, so a token stays usable until it expires.
func AuthMiddleware(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			AbortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Access token required"))
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(IdentityKey, claims.Identity())
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin role before the handler reads
// the request, so a malformed body or id never turns a 403 into a 400. It must
// run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, _ := c.Get(IdentityKey)
		identity, _ := v.(*auth.Identity)
		if err := auth.RequireAdmin(identity); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
