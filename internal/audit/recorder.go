package audit

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/fidelize/loyalty-admin/internal/models"
	"github.com/fidelize/loyalty-admin/internal/session"
)

const (
	// SystemActor attributes entries recorded without a session.
	SystemActor = "system"
	// UnknownOrigin is used when no client address can be extracted.
	UnknownOrigin = "unknown"
)

// Recorder builds audit entries from the request context and hands them to
// the dispatcher. It resolves the acting session and origin itself so
// handlers never thread identity through, and it never returns an error.
type Recorder struct {
	dispatcher *Dispatcher
}

func NewRecorder(dispatcher *Dispatcher) *Recorder {
	return &Recorder{dispatcher: dispatcher}
}

// FromRequest records an administrative action. entityID may be a string,
// a numeric id or nil; details is any JSON-marshalable snapshot/diff.
func (r *Recorder) FromRequest(c *gin.Context, action, entity string, entityID any, details any) {
	entry := models.AuditLog{
		Action:    action,
		Entity:    entity,
		ActorName: SystemActor,
		Origin:    UnknownOrigin,
	}

	if c != nil {
		if s := session.FromContext(c); s != nil {
			actorID := s.UserID
			entry.ActorID = &actorID
			entry.ActorName = s.Name
			if entry.ActorName == "" {
				entry.ActorName = s.Username
			}
		}
		if ip := c.ClientIP(); ip != "" {
			entry.Origin = ip
		}
	}

	if idStr := stringifyID(entityID); idStr != "" {
		entry.EntityID = &idStr
	}

	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			entry.Details = string(b)
		}
	}

	r.dispatcher.Dispatch(entry)
}

// stringifyID normalizes ids (uint, int, uuid string, ...) to string form.
func stringifyID(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	default:
		return fmt.Sprint(v)
	}
}
