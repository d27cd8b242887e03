package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fidelize/loyalty-admin/internal/models"
	"github.com/fidelize/loyalty-admin/internal/tokens"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, mutate func(jwt.MapClaims)) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      float64(7),
		"username": "alice",
		"name":     "Alice",
		"role":     models.RoleAdmin,
		"jti":      uuid.NewString(),
		"exp":      now.Add(time.Hour).Unix(),
		"iat":      now.Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestResolveValidToken(t *testing.T) {
	r := NewResolver(testSecret, tokens.NewMemoryDenylist())

	s, err := r.Resolve(context.Background(), signToken(t, testSecret, nil))
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, uint(7), s.UserID)
	assert.Equal(t, "alice", s.Username)
	assert.Equal(t, models.RoleAdmin, s.Role)
	assert.NotEmpty(t, s.JTI)
}

func TestResolveAbsentToken(t *testing.T) {
	r := NewResolver(testSecret, tokens.NewMemoryDenylist())

	s, err := r.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestResolveWrongSecret(t *testing.T) {
	r := NewResolver(testSecret, tokens.NewMemoryDenylist())

	s, err := r.Resolve(context.Background(), signToken(t, []byte("other"), nil))
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestResolveExpiredToken(t *testing.T) {
	r := NewResolver(testSecret, tokens.NewMemoryDenylist())

	token := signToken(t, testSecret, func(claims jwt.MapClaims) {
		claims["exp"] = time.Now().Add(-time.Minute).Unix()
	})

	s, err := r.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestResolveMissingClaims(t *testing.T) {
	r := NewResolver(testSecret, tokens.NewMemoryDenylist())

	token := signToken(t, testSecret, func(claims jwt.MapClaims) {
		delete(claims, "role")
	})

	s, err := r.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestResolveRevokedToken(t *testing.T) {
	denylist := tokens.NewMemoryDenylist()
	r := NewResolver(testSecret, denylist)

	jti := uuid.NewString()
	token := signToken(t, testSecret, func(claims jwt.MapClaims) {
		claims["jti"] = jti
	})

	require.NoError(t, denylist.Revoke(context.Background(), jti, time.Hour))

	s, err := r.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, s)
}

type brokenDenylist struct{}

func (brokenDenylist) Revoke(context.Context, string, time.Duration) error {
	return errors.New("redis down")
}

func (brokenDenylist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestResolveDenylistUnreachableIsError(t *testing.T) {
	r := NewResolver(testSecret, brokenDenylist{})

	// infra failure must surface as error, never as "no session"
	s, err := r.Resolve(context.Background(), signToken(t, testSecret, nil))
	assert.Error(t, err)
	assert.Nil(t, s)
}
