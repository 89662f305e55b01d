package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/cinebase/cinebase/internal/auth"
	"github.com/cinebase/cinebase/pkg/errors"
	"github.com/cinebase/cinebase/pkg/response"
)

const (
	// ContextIdentityKey stores the verified *auth.Identity.
	ContextIdentityKey = "authIdentity"
	// ContextUserIDKey stores the token subject used to key per-user lists.
	ContextUserIDKey = "userID"
)

// Auth enforces bearer token authentication using the supplied verifier.
// Identity comes from the external provider; the backend only validates.
func Auth(verifier iauth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if len(authz) < 8 || !strings.EqualFold(authz[:7], "Bearer ") {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authz[7:])
		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			// Normalise all validation failures to 401
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextIdentityKey, identity)
		c.Set(ContextUserIDKey, identity.Subject)

		c.Next()
	}
}
