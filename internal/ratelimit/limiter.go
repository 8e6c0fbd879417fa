package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// UpstreamLimiter throttles outbound calls per external service.
type UpstreamLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults RateLimitConfig
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 5,
		BurstSize:         10,
	}
}

func NewUpstreamLimiter(config RateLimitConfig) *UpstreamLimiter {
	return &UpstreamLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func NewUpstreamLimiterWithDefaults() *UpstreamLimiter {
	return NewUpstreamLimiter(DefaultConfig())
}

func (l *UpstreamLimiter) GetLimiter(service string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[service]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists = l.limiters[service]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.BurstSize)
	l.limiters[service] = limiter
	return limiter
}

func (l *UpstreamLimiter) SetLimit(service string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters[service] = rate.NewLimiter(rate.Limit(rps), burst)
}

// Wait blocks until the service's bucket has a token or ctx ends. A nil
// limiter never blocks.
func (l *UpstreamLimiter) Wait(ctx context.Context, service string) error {
	if l == nil {
		return nil
	}
	return l.GetLimiter(service).Wait(ctx)
}
