package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"articles-backend/internal/app"
	"articles-backend/internal/transport/http/response"
)

// writeError maps service errors onto HTTP statuses. Anything unrecognised
// is logged and reported as a generic 500.
func writeError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput),
		errors.Is(err, app.ErrUsernameExists),
		errors.Is(err, app.ErrInvalidRole),
		errors.Is(err, app.ErrUnknownCategory),
		errors.Is(err, app.ErrInvalidFilter):
		response.BadRequest(c, err.Error())
	case errors.Is(err, app.ErrInvalidCredential):
		response.Error(c, http.StatusUnauthorized, response.KindInvalidCredentials, "invalid credentials")
	case errors.Is(err, app.ErrInvalidToken):
		response.Error(c, http.StatusForbidden, response.KindInvalidToken, "invalid token")
	case errors.Is(err, app.ErrForbidden), errors.Is(err, app.ErrRoleNotAllowed):
		response.Error(c, http.StatusForbidden, response.KindForbidden, err.Error())
	case errors.Is(err, app.ErrArticleNotFound), errors.Is(err, app.ErrCategoryNotFound):
		response.Error(c, http.StatusNotFound, response.KindNotFound, err.Error())
	default:
		slog.Default().ErrorContext(c.Request.Context(), action+" failed", "err", err)
		response.Internal(c)
	}
}
