package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_Allow(t *testing.T) {
	limiter := New(2, time.Second)

	assert.True(t, limiter.Allow("private"))
	assert.True(t, limiter.Allow("private"))
	assert.False(t, limiter.Allow("private"), "burst exhausted")
}

func TestLimiter_PoolsAreIndependent(t *testing.T) {
	limiter := New(1, time.Second)

	assert.True(t, limiter.Allow("public"))
	assert.False(t, limiter.Allow("public"))
	assert.True(t, limiter.Allow("orders"), "other pools keep their own budget")
}

func TestLimiter_Wait(t *testing.T) {
	limiter := New(100, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 5; i++ {
		require.NoError(t, limiter.Wait(ctx, "public"))
	}
}

func TestLimiter_Wait_Cancelled(t *testing.T) {
	limiter := New(1, time.Minute)
	require.True(t, limiter.Allow("private"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx, "private")
	assert.Error(t, err)
}

func TestLimiter_SetPoolLimit(t *testing.T) {
	limiter := New(1, time.Second)
	limiter.SetPoolLimit("orders", 10, time.Second)

	allowed := 0
	for i := 0; i < 10; i++ {
		if limiter.Allow("orders") {
			allowed++
		}
	}
	assert.Equal(t, 10, allowed)
}

func TestLimiter_Metrics(t *testing.T) {
	limiter := New(1, time.Second)

	limiter.Allow("public")
	limiter.Allow("public")
	limiter.Allow("private")

	m := limiter.Metrics()
	assert.Equal(t, int64(3), m.TotalRequests)
	assert.Equal(t, int64(2), m.AllowedRequests)
	assert.Equal(t, int64(1), m.DeniedRequests)
	assert.Equal(t, 2, m.PoolCount)
}
