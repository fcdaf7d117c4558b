package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moneyseed/moneyseed/internal/cache"
	"github.com/moneyseed/moneyseed/internal/domain/user"
	"github.com/moneyseed/moneyseed/internal/repo/postgres"
)

// Keep these interfaces small so tests can fake them easily.
type TokenVerifier interface {
	Verify(token string) (email string, err error)
}

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

// AuthMiddleware resolves a bearer token to a user record: verify the
// signature and expiry, extract the subject email, then look the account up
// (through the cache when one is wired). Every failure past the missing-
// header check produces the same 401 body, including a valid token whose
// account no longer exists.
type AuthMiddleware struct {
	jwt   TokenVerifier
	users UserReader
	cache *cache.Users
}

func NewAuthMiddleware(jwt TokenVerifier, users UserReader, userCache *cache.Users) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, users: users, cache: userCache}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if raw == "" {
			abortUnauthorized(c)
			return
		}

		email, err := m.jwt.Verify(raw)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		u, ok := m.cache.Get(c.Request.Context(), email)

		if !ok {
			u, err = m.users.GetByEmail(c.Request.Context(), email)
			if err != nil {
				// a missing account is a credential failure; anything else
				// is the store being down and gets a server error
				if errors.Is(err, postgres.ErrUserNotFound) {
					abortUnauthorized(c)
					return
				}

				abortInternal(c)
				return
			}

			m.cache.Set(c.Request.Context(), u)
		}

		c.Set(ctxCurrentUser, u)

		c.Next()
	}
}

func abortInternal(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"code":    "internal_error",
			"message": "Could not resolve user",
		},
	})
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "unauthorized",
			"message": "Could not validate credentials",
		},
	})
}

// CurrentUserFromContext returns the record RequireAuth resolved, so
// handlers don't need to know the magic key.
func CurrentUserFromContext(c *gin.Context) (user.User, bool) {
	v, ok := c.Get(ctxCurrentUser)
	if !ok {
		return user.User{}, false
	}
	u, ok := v.(user.User)
	return u, ok
}
