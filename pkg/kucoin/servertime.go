package kucoin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	ihttp "kugo/internal/http"
	"kugo/pkg/core"
)

const timestampPath = "/api/v1/timestamp"

// timeSource supplies exchange server time for request stamping. The
// exchange enforces a freshness window of a few seconds on signed requests
// and the local clock cannot be trusted to match it, so timestamps round-trip
// through the unauthenticated time endpoint. A non-zero maxStaleness
// amortizes that extra round trip across bursts of signed calls; zero keeps
// the correctness-first fetch-every-call behavior.
type timeSource struct {
	http         *ihttp.Client
	logger       zerolog.Logger
	timeout      time.Duration
	maxStaleness time.Duration

	mu        sync.Mutex
	cached    int64
	fetchedAt time.Time
}

func newTimeSource(client *ihttp.Client, logger zerolog.Logger, timeout, maxStaleness time.Duration) *timeSource {
	return &timeSource{
		http:         client,
		logger:       logger,
		timeout:      timeout,
		maxStaleness: maxStaleness,
	}
}

// Now returns the current exchange time in milliseconds. Within the
// staleness window the last fetched value is advanced by the local elapsed
// time instead of refetched. It never falls back to the bare local clock: a
// silently wrong timestamp would make every signed request fail with no hint
// as to why.
func (t *timeSource) Now(ctx context.Context) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.maxStaleness > 0 && !t.fetchedAt.IsZero() {
		if elapsed := time.Since(t.fetchedAt); elapsed < t.maxStaleness {
			return t.cached + elapsed.Milliseconds(), nil
		}
	}

	ts, err := t.fetch(ctx)
	if err != nil {
		return 0, err
	}

	t.cached = ts
	t.fetchedAt = time.Now()
	return ts, nil
}

func (t *timeSource) fetch(ctx context.Context) (int64, error) {
	resp, err := t.http.Get(ctx, timestampPath, ihttp.WithTimeout(t.timeout))
	if err != nil {
		return 0, classifyTransportError(timestampPath, err)
	}

	data, err := validateEnvelope(resp.StatusCode(), resp.Bytes(), timestampPath)
	if err != nil {
		return 0, fmt.Errorf("fetch server time: %w", err)
	}

	var ts int64
	if err := sonic.Unmarshal(data, &ts); err != nil {
		return 0, core.NewParseError(timestampPath, err)
	}

	t.logger.Debug().Int64("server_time", ts).Msg("fetched exchange server time")
	return ts, nil
}

// Invalidate drops the cached timestamp so the next Now refetches.
func (t *timeSource) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fetchedAt = time.Time{}
}
