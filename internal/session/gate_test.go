package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fidelize/loyalty-admin/internal/models"
)

func TestAuthorizeNoSession(t *testing.T) {
	err := Authorize(nil, AdminOnly())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestAuthorizeAdminOnly(t *testing.T) {
	cases := []struct {
		role    string
		allowed bool
	}{
		{models.RoleSuperadmin, true},
		{models.RoleAdmin, true},
		{models.RoleManager, false},
		{models.RoleCashier, false},
		{"", false},
	}

	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			err := Authorize(&Session{UserID: 1, Role: tc.role}, AdminOnly())
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestAuthorizeManagers(t *testing.T) {
	cap := Managers("")

	assert.NoError(t, Authorize(&Session{UserID: 1, Role: models.RoleManager}, cap))
	assert.ErrorIs(t, Authorize(&Session{UserID: 1, Role: models.RoleCashier}, cap), ErrForbidden)
}

func TestAuthorizeDiagnosticException(t *testing.T) {
	cap := Managers("diagbot")

	// role alone would be rejected, username exception lets it through
	s := &Session{UserID: 9, Username: "diagbot", Role: models.RoleCashier}
	assert.NoError(t, Authorize(s, cap))

	other := &Session{UserID: 10, Username: "someone", Role: models.RoleCashier}
	assert.ErrorIs(t, Authorize(other, cap), ErrForbidden)
}
