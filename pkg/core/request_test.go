package core

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequest(t *testing.T) {
	req := NewRequest(http.MethodGet, "/api/v1/accounts")

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/api/v1/accounts", req.Path)
	assert.Empty(t, req.Body)
	assert.False(t, req.RequireAuth)
}

func TestRequest_FullPath(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Request
		want  string
	}{
		{
			name:  "no_query",
			build: func() *Request { return NewRequest(http.MethodGet, "/api/v1/accounts") },
			want:  "/api/v1/accounts",
		},
		{
			name: "single_param",
			build: func() *Request {
				return NewRequest(http.MethodGet, "/api/v1/accounts").SetQuery("currency", "BTC")
			},
			want: "/api/v1/accounts?currency=BTC",
		},
		{
			name: "params_sorted_by_key",
			build: func() *Request {
				return NewRequest(http.MethodGet, "/api/v1/fills").
					SetQuery("symbol", "BTC-USDT").
					SetQuery("pageSize", 50).
					SetQuery("currentPage", 2)
			},
			want: "/api/v1/fills?currentPage=2&pageSize=50&symbol=BTC-USDT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.build().FullPath())
		})
	}
}

func TestRequest_FullPath_Stable(t *testing.T) {
	// The signed prehash covers the encoded path byte-for-byte, so repeated
	// encodings of the same descriptor must be identical.
	req := NewRequest(http.MethodGet, "/api/v1/accounts/ledgers").SetQueryParams(Params{
		"currency":    "BTC",
		"direction":   "in",
		"currentPage": 1,
		"pageSize":    int64(500),
	})

	first := req.FullPath()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, req.FullPath())
	}
}

func TestRequest_SetQuery_Formatting(t *testing.T) {
	req := NewRequest(http.MethodGet, "/x").
		SetQuery("s", "abc").
		SetQuery("i", 42).
		SetQuery("i64", int64(1700000000000)).
		SetQuery("f", 0.05).
		SetQuery("b", true)

	assert.Equal(t, "abc", req.Query.Get("s"))
	assert.Equal(t, "42", req.Query.Get("i"))
	assert.Equal(t, "1700000000000", req.Query.Get("i64"))
	assert.Equal(t, "0.05", req.Query.Get("f"))
	assert.Equal(t, "true", req.Query.Get("b"))
}

func TestRequest_Body(t *testing.T) {
	body := []byte(`{"currency":"BTC"}`)
	req := NewRequest(http.MethodPost, "/api/v1/deposit-addresses").
		SetBody(body).
		SetOp(OpCreateDepositAddress).
		SetRequireAuth(true)

	assert.Equal(t, body, req.Body)
	assert.Equal(t, `{"currency":"BTC"}`, req.BodyString())
	assert.Equal(t, OpCreateDepositAddress, req.Op)
	assert.True(t, req.RequireAuth)

	empty := NewRequest(http.MethodGet, "/api/v1/accounts")
	assert.Equal(t, "", empty.BodyString(), "bodyless requests sign the empty string")
}
