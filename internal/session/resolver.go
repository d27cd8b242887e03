package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fidelize/loyalty-admin/internal/tokens"
)

// Resolver turns raw credential material (a signed token) into a Session.
//
// A missing, malformed, expired or revoked token resolves to (nil, nil):
// "no session" is not an error. The error return is reserved for
// infrastructure failures (denylist backend unreachable), which callers
// must treat as 500, not 401.
type Resolver struct {
	secret   []byte
	denylist tokens.Denylist
}

func NewResolver(secret []byte, denylist tokens.Denylist) *Resolver {
	return &Resolver{secret: secret, denylist: denylist}
}

func (r *Resolver) Resolve(ctx context.Context, tokenString string) (*Session, error) {
	if tokenString == "" {
		return nil, nil
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return r.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil
	}

	sub, ok1 := claims["sub"].(float64)
	username, ok2 := claims["username"].(string)
	role, ok3 := claims["role"].(string)
	jti, ok4 := claims["jti"].(string)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, nil
	}

	name, _ := claims["name"].(string)

	var expiresAt time.Time
	if exp, okExp := claims["exp"].(float64); okExp {
		expiresAt = time.Unix(int64(exp), 0)
	}

	revoked, err := r.denylist.IsRevoked(ctx, jti)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	if revoked {
		return nil, nil
	}

	return &Session{
		UserID:    uint(sub),
		Username:  username,
		Name:      name,
		Role:      role,
		JTI:       jti,
		ExpiresAt: expiresAt,
	}, nil
}
