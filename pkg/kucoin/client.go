package kucoin

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"kugo/internal/circuitbreaker"
	ihttp "kugo/internal/http"
	"kugo/internal/keyring"
	"kugo/internal/ratelimit"
	"kugo/pkg/core"
)

// Client is a KuCoin REST API client. Config and credentials are read-only
// after construction, so one Client is safe for concurrent use; independent
// calls run concurrently while each paginated sequence stays sequential.
type Client struct {
	config   *core.Config
	provider CredentialProvider
	http     *ihttp.Client
	limiter  *ratelimit.Limiter
	breaker  *circuitbreaker.Breaker
	logger   zerolog.Logger
	time     *timeSource
	closed   atomic.Bool
}

// Option is a functional option for configuring the Client.
type Option func(*Options)

// Options holds construction options for the Client.
type Options struct {
	Provider CredentialProvider
	Logger   zerolog.Logger
}

// WithLogger returns an option that sets the client logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithCredentialProvider returns an option that sets the credential source
// for signed calls, overriding config.Credentials.
func WithCredentialProvider(p CredentialProvider) Option {
	return func(o *Options) {
		o.Provider = p
	}
}

// WithKeyRing returns an option that signs calls with a rotating key ring.
func WithKeyRing(kr *keyring.KeyRing) Option {
	return func(o *Options) {
		o.Provider = kr
	}
}

// New creates a Client with the given configuration and options.
func New(config *core.Config, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	options := &Options{
		Logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(options)
	}

	httpClient, err := ihttp.NewClient(&ihttp.Config{
		BaseURL:      config.BaseURL,
		Timeout:      config.Timeout,
		MaxRetries:   config.MaxRetries,
		RetryWaitMin: config.RetryWaitMin,
		RetryWaitMax: config.RetryWaitMax,
	}, options.Logger)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	var breaker *circuitbreaker.Breaker
	if config.CircuitBreakerEnabled {
		breaker = circuitbreaker.New(circuitbreaker.Config{
			FailThreshold:    config.CircuitBreakerFailThreshold,
			SuccessThreshold: config.CircuitBreakerSuccessThreshold,
			Timeout:          config.CircuitBreakerTimeout,
		})
	}

	provider := options.Provider
	if provider == nil && config.Credentials != nil {
		provider = NewStaticProvider(config.Credentials)
	}

	return &Client{
		config:   config,
		provider: provider,
		http:     httpClient,
		limiter:  ratelimit.New(config.RateLimitRequests, config.RateLimitPeriod),
		breaker:  breaker,
		logger:   options.Logger,
		time:     newTimeSource(httpClient, options.Logger, config.TimeTimeout, config.TimeMaxStaleness),
	}, nil
}

// Close releases the underlying HTTP resources.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	return c.http.Close()
}

// ServerTime returns the current exchange time in milliseconds.
func (c *Client) ServerTime(ctx context.Context) (int64, error) {
	if c.closed.Load() {
		return 0, core.ErrClientClosed
	}
	if err := c.limiter.Wait(ctx, core.OpGetServerTime.RateLimitBucket()); err != nil {
		return 0, fmt.Errorf("rate limit: %w", err)
	}
	return c.time.Now(ctx)
}

// Do executes one request descriptor and returns the validated envelope
// payload. Requests marked RequireAuth are stamped with fresh server time
// and the full KC-API header set before sending. This is the single entry
// point every endpoint wrapper funnels through.
func (c *Client) Do(ctx context.Context, req *core.Request) ([]byte, error) {
	if c.closed.Load() {
		return nil, core.ErrClientClosed
	}

	if err := c.limiter.Wait(ctx, req.Op.RateLimitBucket()); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	if c.breaker != nil && !c.breaker.Allow() {
		return nil, core.ErrCircuitBreakerOpen
	}

	opts := []ihttp.RequestOption{}
	if len(req.Body) > 0 {
		opts = append(opts, ihttp.WithBody(req.Body))
	}

	if req.RequireAuth {
		headers, err := c.signedHeaders(ctx, req)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ihttp.WithHeaders(headers))
	} else if len(req.Body) > 0 {
		opts = append(opts, ihttp.WithHeader("Content-Type", "application/json"))
	}

	fullPath := req.FullPath()
	resp, err := c.http.Execute(ctx, req.Method, fullPath, opts...)

	if c.breaker != nil {
		c.breaker.Record(err == nil)
	}

	if err != nil {
		c.notifyFailure(req, err)
		return nil, classifyTransportError(fullPath, err)
	}

	data, envErr := validateEnvelope(resp.StatusCode(), resp.Bytes(), fullPath)
	if envErr != nil {
		c.notifyFailure(req, envErr)
		c.logger.Debug().Err(envErr).
			Str("op", req.Op.String()).
			Str("path", fullPath).
			Msg("request failed")
		return nil, envErr
	}

	return data, nil
}

// signedHeaders fetches server time and derives the KC-API headers for one
// request. The timestamp round-trips through the exchange because the local
// clock cannot be trusted to sit inside the signing freshness window.
func (c *Client) signedHeaders(ctx context.Context, req *core.Request) (map[string]string, error) {
	if c.provider == nil {
		return nil, core.ErrNoCredentials
	}

	creds, err := c.provider.Credentials()
	if err != nil {
		return nil, err
	}

	ts, err := c.time.Now(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch server time: %w", err)
	}

	headers, err := Sign(creds, req.Method, req.FullPath(), req.BodyString(), ts)
	if err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}
	return headers, nil
}

func (c *Client) notifyFailure(req *core.Request, err error) {
	if !req.RequireAuth {
		return
	}
	if notifier, ok := c.provider.(failureNotifier); ok {
		notifier.OnError(err)
	}
}

// classifyTransportError maps a transport failure to the client error
// taxonomy, distinguishing deadline expiry from connectivity failures.
func classifyTransportError(url string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return core.NewError(core.ErrorTypeTimeout, "request timed out").WithURL(url).WithCause(err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return core.NewNetworkError(url, err)
}

// pagedPayload is the wire shape of a page-style paginated data payload.
type pagedPayload[T any] struct {
	CurrentPage int64  `json:"currentPage"`
	PageSize    int64  `json:"pageSize"`
	TotalNum    int64  `json:"totalNum"`
	TotalPage   int64  `json:"totalPage"`
	LastID      string `json:"lastId,omitempty"`
	Items       []T    `json:"items"`
}

// listPaged drives a page-number paginated GET endpoint through the shared
// paginator, aggregating every page's items. maxPages of zero falls back to
// the config default cap.
func listPaged[T any](ctx context.Context, c *Client, op core.Operation, path string, params core.Params, maxPages int) ([]T, *Pagination, error) {
	if maxPages <= 0 {
		maxPages = c.config.MaxPages
	}

	query := core.Params{
		"currentPage": int64(1),
		"pageSize":    int64(defaultPageSize),
	}
	for k, v := range params {
		query[k] = v
	}

	fetch := func(ctx context.Context, query core.Params) (*page[T], error) {
		req := core.NewRequest(http.MethodGet, path).
			SetQueryParams(query).
			SetOp(op).
			SetRequireAuth(true)

		data, err := c.Do(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s page: %w", op, err)
		}

		var payload pagedPayload[T]
		if err := sonic.Unmarshal(data, &payload); err != nil {
			return nil, core.NewParseError(req.FullPath(), err)
		}

		return &page[T]{
			Items: payload.Items,
			Pagination: Pagination{
				CurrentPage: payload.CurrentPage,
				PageSize:    payload.PageSize,
				TotalNum:    payload.TotalNum,
				TotalPage:   payload.TotalPage,
				LastID:      payload.LastID,
			},
		}, nil
	}

	return paginate(ctx, fetch, query, "", maxPages)
}

// defaultPageSize is the page size requested when the caller does not ask
// for a specific one.
const defaultPageSize = 50

// get executes an unsigned or signed GET and decodes the payload into out.
func get[T any](ctx context.Context, c *Client, op core.Operation, path string, params core.Params, signed bool) (T, error) {
	var out T

	req := core.NewRequest(http.MethodGet, path).SetOp(op).SetRequireAuth(signed)
	if params != nil {
		req.SetQueryParams(params)
	}

	data, err := c.Do(ctx, req)
	if err != nil {
		return out, fmt.Errorf("%s: %w", op, err)
	}

	if err := sonic.Unmarshal(data, &out); err != nil {
		return out, core.NewParseError(req.FullPath(), err)
	}
	return out, nil
}

// post executes a signed POST with the given body and decodes the payload
// into out. The body is marshaled exactly once so the signed bytes are the
// sent bytes.
func post[T any](ctx context.Context, c *Client, op core.Operation, path string, body any) (T, error) {
	var out T

	raw, err := sonic.Marshal(body)
	if err != nil {
		return out, fmt.Errorf("%s: encode body: %w", op, err)
	}

	req := core.NewRequest(http.MethodPost, path).
		SetBody(raw).
		SetOp(op).
		SetRequireAuth(true)

	data, err := c.Do(ctx, req)
	if err != nil {
		return out, fmt.Errorf("%s: %w", op, err)
	}

	if err := sonic.Unmarshal(data, &out); err != nil {
		return out, core.NewParseError(req.FullPath(), err)
	}
	return out, nil
}

// del executes a signed DELETE and decodes the payload into out.
func del[T any](ctx context.Context, c *Client, op core.Operation, path string, params core.Params) (T, error) {
	var out T

	req := core.NewRequest(http.MethodDelete, path).SetOp(op).SetRequireAuth(true)
	if params != nil {
		req.SetQueryParams(params)
	}

	data, err := c.Do(ctx, req)
	if err != nil {
		return out, fmt.Errorf("%s: %w", op, err)
	}

	if err := sonic.Unmarshal(data, &out); err != nil {
		return out, core.NewParseError(req.FullPath(), err)
	}
	return out, nil
}
