package amadeus

import (
	"context"
	"sync"
	"time"
)

// refreshMargin renews the token this long before it expires.
const refreshMargin = 60 * time.Second

type fetchFunc func(ctx context.Context) (token string, ttl time.Duration, err error)

// tokenCache is a single-slot cache. The mutex is held across a refresh so
// concurrent callers wait for one exchange instead of racing their own.
type tokenCache struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

func newTokenCache() *tokenCache {
	return &tokenCache{now: time.Now}
}

func (c *tokenCache) get(ctx context.Context, fetch fetchFunc) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.expiresAt.After(c.now().Add(refreshMargin)) {
		return c.token, nil
	}

	token, ttl, err := fetch(ctx)
	if err != nil {
		return "", err
	}
	c.token = token
	c.expiresAt = c.now().Add(ttl)
	return token, nil
}

func (c *tokenCache) invalidate() {
	c.mu.Lock()
	c.token = ""
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}
