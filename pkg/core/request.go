package core

import (
	"fmt"
	"net/url"
	"strconv"
)

// Params is a loose parameter map used by endpoint wrappers before a request
// descriptor is built.
type Params map[string]any

// Request is an immutable-once-built request descriptor. The signed prehash
// covers FullPath and Body byte-for-byte, so both are frozen here rather than
// re-encoded by the transport.
type Request struct {
	Method string     `json:"method"`
	Path   string     `json:"path"`
	Query  url.Values `json:"query,omitempty"`
	// Body is the exact JSON bytes sent on the wire. Nil for bodyless
	// requests; the signer treats nil as the empty string, never as an
	// omitted component.
	Body        []byte    `json:"body,omitempty"`
	Op          Operation `json:"op"`
	RequireAuth bool      `json:"require_auth"`
}

// NewRequest creates a request descriptor for the given method and path.
func NewRequest(method, path string) *Request {
	return &Request{
		Method: method,
		Path:   path,
		Query:  url.Values{},
	}
}

// SetQuery sets a single query parameter, formatting the value the same way
// it will be encoded on the wire.
func (r *Request) SetQuery(key string, value any) *Request {
	if r.Query == nil {
		r.Query = url.Values{}
	}
	r.Query.Set(key, formatParam(value))
	return r
}

// SetQueryParams copies all params into the query string.
func (r *Request) SetQueryParams(params Params) *Request {
	for k, v := range params {
		r.SetQuery(k, v)
	}
	return r
}

// SetBody sets the exact body bytes to send and sign.
func (r *Request) SetBody(body []byte) *Request {
	r.Body = body
	return r
}

// SetOp tags the request with the operation it implements.
func (r *Request) SetOp(op Operation) *Request {
	r.Op = op
	return r
}

// SetRequireAuth marks the request as needing signed headers.
func (r *Request) SetRequireAuth(require bool) *Request {
	r.RequireAuth = require
	return r
}

// FullPath returns the path plus the encoded query string, exactly as sent on
// the wire. This is the path component of the signing prehash: the exchange
// recomputes the same string server-side, so it must not be re-encoded
// afterwards.
func (r *Request) FullPath() string {
	if len(r.Query) == 0 {
		return r.Path
	}
	return r.Path + "?" + r.Query.Encode()
}

// BodyString returns the body as a string, empty for bodyless requests.
func (r *Request) BodyString() string {
	return string(r.Body)
}

func formatParam(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
