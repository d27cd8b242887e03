package tokens

import (
	"context"
	"sync"
	"time"
)

// Denylist tracks revoked token jtis until their natural expiry. Lookup
// errors mean the backing store is unreachable, not that the token is bad.
type Denylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// MemoryDenylist é o fallback para deploys de nó único (sem Redis).
type MemoryDenylist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{revoked: make(map[string]time.Time)}
}

func (d *MemoryDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.RLock()
	exp, ok := d.revoked[jti]
	d.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		d.mu.Lock()
		delete(d.revoked, jti)
		d.mu.Unlock()
		return false, nil
	}
	return true, nil
}
