package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fidelize/loyalty-admin/internal/config"
	"github.com/fidelize/loyalty-admin/internal/httperr"
	"github.com/fidelize/loyalty-admin/internal/session"
)

// AuthMiddleware resolves the caller's session and stores it in the gin
// context under session.ContextKey. No/invalid token aborts with 401
// before any handler runs; a resolver infrastructure failure is a 500,
// never mistaken for an auth failure.
func AuthMiddleware(cfg *config.Config, resolver *session.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := resolver.Resolve(c.Request.Context(), extractToken(c, cfg.CookieName))
		if err != nil {
			httperr.Internal(c)
			return
		}
		if s == nil {
			httperr.Unauthorized(c)
			return
		}

		c.Set(session.ContextKey, s)
		c.Next()
	}
}

// extractToken prefers the auth cookie; the Authorization header is the
// fallback for non-browser clients.
func extractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
