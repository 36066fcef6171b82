package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"articles-backend/internal/app"
	"articles-backend/internal/model"
	"articles-backend/internal/transport/http/response"
)

const ContextUserKey = "current_user"

type UserAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// Auth resolves the bearer token to a user and attaches it to the context.
// A missing or malformed header is 401, a token that fails verification is
// 403.
func Auth(authenticator UserAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, response.KindUnauthenticated, "missing authorization header")
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Abort(c, http.StatusUnauthorized, response.KindUnauthenticated, "invalid authorization scheme")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, response.KindUnauthenticated, "missing bearer token")
			return
		}

		user, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, app.ErrInvalidToken) {
				response.Abort(c, http.StatusForbidden, response.KindInvalidToken, "invalid token")
				return
			}
			slog.Default().ErrorContext(c.Request.Context(), "authenticate failed", "err", err)
			response.Abort(c, http.StatusInternalServerError, response.KindInternal, "internal server error")
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireAdmin must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, response.KindUnauthenticated, "authentication required")
			return
		}
		if !user.IsAdmin() {
			response.Abort(c, http.StatusForbidden, response.KindForbidden, "admin role required")
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}
