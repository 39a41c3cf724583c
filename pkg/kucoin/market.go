package kucoin

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"kugo/pkg/core"
)

const (
	symbolsPath = "/api/v2/symbols"
	tickerPath  = "/api/v1/market/orderbook/level1"
	statsPath   = "/api/v1/market/stats"
	klinesPath  = "/api/v1/market/candles"
)

// maxCandlesPerRequest is the server-side cap on candles returned by one
// candle call. Longer ranges are split into segments of this many candles.
const maxCandlesPerRequest = 1500

// klineConcurrency bounds the number of segment fetches in flight.
const klineConcurrency = 4

// intervalSeconds maps the candle interval names the exchange accepts to
// their duration in seconds.
var intervalSeconds = map[string]int64{
	"1min":   60,
	"3min":   180,
	"5min":   300,
	"15min":  900,
	"30min":  1800,
	"1hour":  3600,
	"2hour":  7200,
	"4hour":  14400,
	"6hour":  21600,
	"8hour":  28800,
	"12hour": 43200,
	"1day":   86400,
	"1week":  604800,
}

// ListSymbols returns the tradable symbols, optionally filtered by market.
func (c *Client) ListSymbols(ctx context.Context, market string) ([]Symbol, error) {
	params := core.Params{}
	if market != "" {
		params["market"] = market
	}
	return get[[]Symbol](ctx, c, core.OpListSymbols, symbolsPath, params, false)
}

// GetTicker returns the level-1 ticker of a symbol.
func (c *Client) GetTicker(ctx context.Context, symbol string) (*Ticker, error) {
	params := core.Params{"symbol": symbol}
	t, err := get[Ticker](ctx, c, core.OpGetTicker, tickerPath, params, false)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Get24hStats returns the 24 hour statistics of a symbol.
func (c *Client) Get24hStats(ctx context.Context, symbol string) (*Stats24h, error) {
	params := core.Params{"symbol": symbol}
	s, err := get[Stats24h](ctx, c, core.OpGet24hStats, statsPath, params, false)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetKlines returns the candles of a symbol between startAt and endAt in
// seconds. Ranges longer than one server response are split into segments
// fetched concurrently, then merged by timestamp with duplicates dropped.
// The result is ascending by candle time.
func (c *Client) GetKlines(ctx context.Context, symbol, interval string, startAt, endAt int64) ([]Kline, error) {
	step, ok := intervalSeconds[interval]
	if !ok {
		return nil, core.NewConfigError(fmt.Sprintf("unknown kline interval %q", interval))
	}
	if startAt > 0 && endAt > 0 && endAt <= startAt {
		return nil, core.NewConfigError("kline end must be after start")
	}

	if startAt <= 0 || endAt <= 0 {
		return c.fetchKlines(ctx, symbol, interval, startAt, endAt)
	}

	segments := splitKlineRange(startAt, endAt, step)
	if len(segments) == 1 {
		return c.fetchKlines(ctx, symbol, interval, segments[0].start, segments[0].end)
	}

	type segmentResult struct {
		index   int
		candles []Kline
		err     error
	}

	resultChan := make(chan segmentResult, len(segments))
	sem := make(chan struct{}, klineConcurrency)
	var wg sync.WaitGroup

	for i, seg := range segments {
		wg.Add(1)
		go func(index int, start, end int64) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				resultChan <- segmentResult{index: index, err: ctx.Err()}
				return
			}

			candles, err := c.fetchKlines(ctx, symbol, interval, start, end)
			resultChan <- segmentResult{index: index, candles: candles, err: err}
		}(i, seg.start, seg.end)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var firstErr error
	merged := make([]Kline, 0, len(segments)*maxCandlesPerRequest/4)
	for r := range resultChan {
		if r.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("fetch kline segment %d: %w", r.index, r.err)
			}
			continue
		}
		merged = append(merged, r.candles...)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return mergeKlines(merged), nil
}

type klineSegment struct {
	start int64
	end   int64
}

// splitKlineRange cuts [start, end) into spans of at most
// maxCandlesPerRequest candles each.
func splitKlineRange(start, end, step int64) []klineSegment {
	span := step * maxCandlesPerRequest
	segments := make([]klineSegment, 0, (end-start)/span+1)
	for cur := start; cur < end; cur += span {
		segEnd := cur + span
		if segEnd > end {
			segEnd = end
		}
		segments = append(segments, klineSegment{start: cur, end: segEnd})
	}
	return segments
}

// mergeKlines sorts candles ascending by time and drops duplicate
// timestamps, keeping the first occurrence. Merging already merged input is
// a no-op.
func mergeKlines(candles []Kline) []Kline {
	sort.SliceStable(candles, func(i, j int) bool {
		return candles[i].Time < candles[j].Time
	})

	out := candles[:0]
	var lastTime int64 = -1
	for i := range candles {
		if candles[i].Time == lastTime {
			continue
		}
		lastTime = candles[i].Time
		out = append(out, candles[i])
	}
	return out
}

func (c *Client) fetchKlines(ctx context.Context, symbol, interval string, startAt, endAt int64) ([]Kline, error) {
	params := core.Params{
		"symbol": symbol,
		"type":   interval,
	}
	if startAt > 0 {
		params["startAt"] = startAt
	}
	if endAt > 0 {
		params["endAt"] = endAt
	}
	return get[[]Kline](ctx, c, core.OpGetKlines, klinesPath, params, false)
}
