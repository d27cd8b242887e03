package session

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ContextKey is where the auth middleware stores the resolved *Session.
const ContextKey = "session"

// Session is the resolved identity of the current caller, valid for one
// request. It is read-only input for gates, handlers and the audit recorder.
type Session struct {
	UserID    uint
	Username  string
	Name      string
	Role      string
	JTI       string
	ExpiresAt time.Time
}

// FromContext returns the session stored by the auth middleware, or nil
// when the request is unauthenticated.
func FromContext(c *gin.Context) *Session {
	v, ok := c.Get(ContextKey)
	if !ok {
		return nil
	}
	s, ok := v.(*Session)
	if !ok {
		return nil
	}
	return s
}
