package session

import (
	"errors"

	"github.com/fidelize/loyalty-admin/internal/models"
)

var (
	// ErrNoSession: caller presented no valid credentials (401).
	ErrNoSession = errors.New("no session")
	// ErrForbidden: session is valid but the role is not enough (403).
	ErrForbidden = errors.New("forbidden")
)

// Capability is the requirement an endpoint declares: a role allow-list,
// optionally widened by named account exceptions.
type Capability struct {
	Roles          []string
	AllowUsernames []string
}

// AdminOnly gates user management and audit log access.
func AdminOnly() Capability {
	return Capability{Roles: []string{models.RoleSuperadmin, models.RoleAdmin}}
}

// Managers gates day-to-day mutations (branches, terminals, points).
// diagUsername, when set, names a diagnostic account that passes
// regardless of role.
func Managers(diagUsername string) Capability {
	cap := Capability{
		Roles: []string{models.RoleSuperadmin, models.RoleAdmin, models.RoleManager},
	}
	if diagUsername != "" {
		cap.AllowUsernames = []string{diagUsername}
	}
	return cap
}

// Authorize decides whether s may perform an operation requiring cap.
// It has no side effects: denial must happen before any write.
func Authorize(s *Session, cap Capability) error {
	if s == nil {
		return ErrNoSession
	}

	for _, role := range cap.Roles {
		if s.Role == role {
			return nil
		}
	}
	for _, username := range cap.AllowUsernames {
		if s.Username == username {
			return nil
		}
	}

	return ErrForbidden
}
