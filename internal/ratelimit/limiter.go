// Package ratelimit provides client-side rate limiting split across the
// exchange's separate request pools.
package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Limiter meters requests against named pools. KuCoin counts public market
// data, private account calls, and order placement against distinct quotas,
// so each pool carries its own token bucket.
type Limiter struct {
	mu       sync.RWMutex
	pools    map[string]*rate.Limiter
	requests int
	period   time.Duration
	metrics  *Metrics
}

// Metrics tracks statistics about limiter usage.
type Metrics struct {
	totalRequests   atomic.Int64
	allowedRequests atomic.Int64
	deniedRequests  atomic.Int64
}

// New creates a Limiter whose pools default to the given requests-per-period
// budget. Pools are created on first use.
func New(requests int, period time.Duration) *Limiter {
	return &Limiter{
		pools:    make(map[string]*rate.Limiter),
		requests: requests,
		period:   period,
		metrics:  &Metrics{},
	}
}

// Wait blocks until the named pool allows a request or the context is
// cancelled.
func (l *Limiter) Wait(ctx context.Context, pool string) error {
	l.metrics.totalRequests.Add(1)
	if err := l.pool(pool).Wait(ctx); err != nil {
		l.metrics.deniedRequests.Add(1)
		return err
	}
	l.metrics.allowedRequests.Add(1)
	return nil
}

// Allow reports whether the named pool permits a request immediately.
func (l *Limiter) Allow(pool string) bool {
	l.metrics.totalRequests.Add(1)
	allowed := l.pool(pool).Allow()
	if allowed {
		l.metrics.allowedRequests.Add(1)
	} else {
		l.metrics.deniedRequests.Add(1)
	}
	return allowed
}

// SetPoolLimit overrides the budget for one pool, creating it if needed.
func (l *Limiter) SetPoolLimit(pool string, requests int, period time.Duration) {
	limiter := l.pool(pool)
	limiter.SetLimit(rate.Limit(float64(requests) / period.Seconds()))
	limiter.SetBurst(requests)
}

func (l *Limiter) pool(name string) *rate.Limiter {
	l.mu.RLock()
	limiter, ok := l.pools[name]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, ok = l.pools[name]; ok {
		return limiter
	}
	rps := float64(l.requests) / l.period.Seconds()
	limiter = rate.NewLimiter(rate.Limit(rps), l.requests)
	l.pools[name] = limiter
	return limiter
}

// MetricsSnapshot is a point-in-time capture of limiter statistics.
type MetricsSnapshot struct {
	// TotalRequests is the total number of rate limit checks performed.
	TotalRequests int64
	// AllowedRequests is the number of requests that were allowed.
	AllowedRequests int64
	// DeniedRequests is the number of requests that were denied.
	DeniedRequests int64
	// PoolCount is the number of pools in use.
	PoolCount int
}

// Metrics returns a snapshot of the current limiter statistics.
func (l *Limiter) Metrics() MetricsSnapshot {
	l.mu.RLock()
	pools := len(l.pools)
	l.mu.RUnlock()
	return MetricsSnapshot{
		TotalRequests:   l.metrics.totalRequests.Load(),
		AllowedRequests: l.metrics.allowedRequests.Load(),
		DeniedRequests:  l.metrics.deniedRequests.Load(),
		PoolCount:       pools,
	}
}
