package core

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// API host constants for the supported environments.
const (
	// ProductionURL is the default KuCoin REST API host.
	ProductionURL = "https://api.kucoin.com"
	// SandboxURL is the KuCoin sandbox REST API host.
	SandboxURL = "https://openapi-sandbox.kucoin.com"
)

// Config contains all configuration options for a client instance.
// It includes networking, authentication, rate limiting, server-time caching,
// and circuit breaker settings. Config and Credentials are shared read-only
// by every call issued from one client.
type Config struct {
	// BaseURL is the REST API host. Defaults to the production host.
	BaseURL string `json:"base_url" validate:"required,url"`
	Sandbox bool   `json:"sandbox"`

	Credentials *Credentials `json:"credentials,omitempty"`

	// Timeout is the maximum duration for one HTTP round trip.
	Timeout time.Duration `json:"timeout" validate:"min=1ms"`
	// TimeTimeout bounds the server-time fetch. It is deliberately short:
	// a slow time fetch blocks every signed call downstream.
	TimeTimeout time.Duration `json:"time_timeout" validate:"min=1ms"`
	// TimeMaxStaleness is how long a fetched server timestamp may be reused
	// before a fresh one is required. Zero means fetch before every signed
	// call, which is the correctness-first default since the exchange
	// rejects requests whose timestamp drifts beyond a few seconds.
	TimeMaxStaleness time.Duration `json:"time_max_staleness" validate:"min=0"`

	// MaxRetries bounds retries of transport failures. Application-level
	// envelope errors are never retried.
	MaxRetries   int           `json:"max_retries" validate:"min=0"`
	RetryWaitMin time.Duration `json:"retry_wait_min" validate:"min=0"`
	RetryWaitMax time.Duration `json:"retry_wait_max" validate:"min=0"`

	RateLimitRequests int           `json:"rate_limit_requests" validate:"min=1"`
	RateLimitPeriod   time.Duration `json:"rate_limit_period" validate:"min=1ms"`

	// MaxPages caps auto-pagination when the caller does not set an explicit
	// page limit. Zero means no caller cap; the paginator still enforces its
	// hard iteration ceiling.
	MaxPages int `json:"max_pages" validate:"min=0"`

	CircuitBreakerEnabled          bool          `json:"circuit_breaker_enabled"`
	CircuitBreakerFailThreshold    int           `json:"circuit_breaker_fail_threshold"`
	CircuitBreakerSuccessThreshold int           `json:"circuit_breaker_success_threshold"`
	CircuitBreakerTimeout          time.Duration `json:"circuit_breaker_timeout"`

	LogLevel string `json:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a Config initialized with sensible defaults:
// production host, 10s request timeout, 5s server-time timeout, fresh server
// time for every signed call, 3 retries with 100ms-1s backoff, 1800 req/min
// rate limit, circuit breaker with 5 failures/2 successes/30s timeout.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: ProductionURL,
		Sandbox: false,

		Timeout:          10 * time.Second,
		TimeTimeout:      5 * time.Second,
		TimeMaxStaleness: 0,

		MaxRetries:   3,
		RetryWaitMin: 100 * time.Millisecond,
		RetryWaitMax: 1 * time.Second,

		RateLimitRequests: 1800,
		RateLimitPeriod:   time.Minute,

		CircuitBreakerEnabled:          true,
		CircuitBreakerFailThreshold:    5,
		CircuitBreakerSuccessThreshold: 2,
		CircuitBreakerTimeout:          30 * time.Second,

		LogLevel: "info",
	}
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.CircuitBreakerEnabled {
		if c.CircuitBreakerFailThreshold <= 0 {
			return errors.New("CircuitBreakerFailThreshold must be positive when enabled")
		}
		if c.CircuitBreakerSuccessThreshold <= 0 {
			return errors.New("CircuitBreakerSuccessThreshold must be positive when enabled")
		}
		if c.CircuitBreakerTimeout <= 0 {
			return errors.New("CircuitBreakerTimeout must be positive when enabled")
		}
	}
	return nil
}

// WithCredentials sets the API credentials and returns the config for chaining.
func (c *Config) WithCredentials(creds *Credentials) *Config {
	c.Credentials = creds
	return c
}

// WithSandbox switches between the sandbox and production hosts and returns
// the config for chaining. An explicitly configured BaseURL other than the
// two known hosts is left untouched.
func (c *Config) WithSandbox(sandbox bool) *Config {
	c.Sandbox = sandbox
	if sandbox && c.BaseURL == ProductionURL {
		c.BaseURL = SandboxURL
	} else if !sandbox && c.BaseURL == SandboxURL {
		c.BaseURL = ProductionURL
	}
	return c
}

// WithBaseURL overrides the API host and returns the config for chaining.
func (c *Config) WithBaseURL(url string) *Config {
	c.BaseURL = url
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithTimeMaxStaleness sets how long server timestamps may be reused and
// returns the config for chaining.
func (c *Config) WithTimeMaxStaleness(d time.Duration) *Config {
	c.TimeMaxStaleness = d
	return c
}

// WithRateLimit sets the rate limiting parameters and returns the config for chaining.
func (c *Config) WithRateLimit(requests int, period time.Duration) *Config {
	c.RateLimitRequests = requests
	c.RateLimitPeriod = period
	return c
}

// WithMaxPages sets the default auto-pagination cap and returns the config for chaining.
func (c *Config) WithMaxPages(pages int) *Config {
	c.MaxPages = pages
	return c
}
