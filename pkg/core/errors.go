package core

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of a client error.
type ErrorType int

// Error type constants categorize errors for proper handling and retry logic.
const (
	// ErrorTypeUnknown indicates an unclassified error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeConfig indicates missing or invalid client configuration.
	ErrorTypeConfig
	// ErrorTypeNetwork indicates a transport-level failure (DNS, refused connection).
	ErrorTypeNetwork
	// ErrorTypeTimeout indicates the request exceeded its deadline.
	ErrorTypeTimeout
	// ErrorTypeHTTP indicates a non-2xx transport status.
	ErrorTypeHTTP
	// ErrorTypeParse indicates the response body was not valid JSON.
	ErrorTypeParse
	// ErrorTypeProtocol indicates the response lacked the expected envelope shape.
	ErrorTypeProtocol
	// ErrorTypeAPI indicates an exchange-level business error (code != "200000").
	ErrorTypeAPI
	// ErrorTypeAuth indicates the exchange rejected the request credentials.
	ErrorTypeAuth
	// ErrorTypeRateLimit indicates the exchange rate limit was exceeded.
	ErrorTypeRateLimit
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	return [...]string{
		"UNKNOWN",
		"CONFIG",
		"NETWORK",
		"TIMEOUT",
		"HTTP",
		"PARSE",
		"PROTOCOL",
		"API",
		"AUTH",
		"RATE_LIMIT",
	}[t]
}

// Sentinel errors for common error conditions.
var (
	// ErrClientClosed is returned when attempting to use a closed client.
	ErrClientClosed = errors.New("client is closed")
	// ErrCircuitBreakerOpen is returned when the circuit breaker is open.
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
	// ErrNoCredentials is returned when a signed call is attempted without credentials.
	ErrNoCredentials = errors.New("no credentials configured")
	// ErrNoAPIKey is returned when the key ring has no usable API key.
	ErrNoAPIKey = errors.New("no available API key")
)

// Error represents a structured error raised by the client.
// It carries the classification, exchange error code, HTTP status, and the
// request URL so callers can diagnose failures without string matching.
type Error struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType `json:"type"`
	// StatusCode is the HTTP status code, when a response was received.
	StatusCode int `json:"status_code,omitempty"`
	// Code is the exchange-specific error code from the response envelope.
	Code string `json:"code,omitempty"`
	// Message is the human-readable error description.
	Message string `json:"message"`
	// URL is the request URL the error relates to.
	URL string `json:"url,omitempty"`
	// Timestamp is when the error occurred.
	Timestamp time.Time `json:"timestamp"`
	// Err is the underlying cause, preserved for diagnosis.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	s := fmt.Sprintf("[kucoin] %s", e.Type)
	switch {
	case e.StatusCode != 0 && e.Code != "":
		s += fmt.Sprintf(" (%d/%s)", e.StatusCode, e.Code)
	case e.StatusCode != 0:
		s += fmt.Sprintf(" (%d)", e.StatusCode)
	case e.Code != "":
		s += fmt.Sprintf(" (%s)", e.Code)
	}
	s += ": " + e.Message
	if e.URL != "" {
		s += " [" + e.URL + "]"
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a classified Error with the current timestamp.
func NewError(errorType ErrorType, message string) *Error {
	return &Error{
		Type:      errorType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithStatus sets the HTTP status code and returns the error for chaining.
func (e *Error) WithStatus(status int) *Error {
	e.StatusCode = status
	return e
}

// WithCode sets the exchange error code and returns the error for chaining.
func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

// WithURL sets the request URL and returns the error for chaining.
func (e *Error) WithURL(url string) *Error {
	e.URL = url
	return e
}

// WithCause attaches the underlying error and returns the error for chaining.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// NewConfigError creates a configuration error. Configuration errors fail
// fast, before any network call is made.
func NewConfigError(message string) *Error {
	return NewError(ErrorTypeConfig, message)
}

// NewNetworkError creates a transport failure error wrapping its cause.
func NewNetworkError(url string, cause error) *Error {
	return NewError(ErrorTypeNetwork, "request failed").WithURL(url).WithCause(cause)
}

// NewHTTPError creates an error for a non-2xx transport status. The content
// is whatever body text could be extracted from the failed response.
func NewHTTPError(status int, content, url string) *Error {
	return NewError(ErrorTypeHTTP, content).WithStatus(status).WithURL(url)
}

// NewParseError creates an error for a response body that is not valid JSON.
func NewParseError(url string, cause error) *Error {
	return NewError(ErrorTypeParse, "invalid JSON response").WithURL(url).WithCause(cause)
}

// NewProtocolError creates an error for a response missing the expected
// {code, data} envelope fields.
func NewProtocolError(url, message string) *Error {
	return NewError(ErrorTypeProtocol, message).WithURL(url)
}

// NewAPIError creates an exchange-level business error. The transport
// succeeded but the envelope code signalled a failure.
func NewAPIError(code, message, url string) *Error {
	return NewError(ErrorTypeAPI, message).WithCode(code).WithURL(url)
}

func typeOf(err error) (ErrorType, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Type, true
	}
	return ErrorTypeUnknown, false
}

// IsConfigError returns true if the error is a client misconfiguration.
// Configuration errors are never retryable.
func IsConfigError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrorTypeConfig
}

// IsNetworkError returns true if the error is a transport failure.
// Network errors are eligible for bounded retry.
func IsNetworkError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrorTypeNetwork
}

// IsTimeoutError returns true if the error is a timeout.
func IsTimeoutError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrorTypeTimeout
}

// IsHTTPError returns true if the error carries a non-2xx transport status.
func IsHTTPError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrorTypeHTTP
}

// IsParseError returns true if the response body could not be decoded.
func IsParseError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrorTypeParse
}

// IsProtocolError returns true if the response envelope shape was unexpected.
func IsProtocolError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrorTypeProtocol
}

// IsAPIError returns true if the exchange reported a business error.
// Business errors are not fixed by repeating the identical request.
func IsAPIError(err error) bool {
	t, ok := typeOf(err)
	return ok && (t == ErrorTypeAPI || t == ErrorTypeAuth || t == ErrorTypeRateLimit)
}

// IsAuthError returns true if the exchange rejected the request credentials.
func IsAuthError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrorTypeAuth
}

// IsRateLimitError returns true if the exchange rate limit was exceeded.
// Rate limit errors should be retried only after a delay.
func IsRateLimitError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrorTypeRateLimit
}
