package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/fidelize/loyalty-admin/internal/httperr"
	"github.com/fidelize/loyalty-admin/internal/session"
)

// Require aborts with 401/403 unless the request's session satisfies cap.
// Denial happens here, before the handler, so a rejected request performs
// zero writes.
func Require(cap session.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := session.Authorize(session.FromContext(c), cap)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, session.ErrNoSession):
			httperr.Unauthorized(c)
		default:
			httperr.Forbidden(c)
		}
	}
}
