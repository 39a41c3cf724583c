package kucoin

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kugo/pkg/core"
)

func TestValidateEnvelope_Success(t *testing.T) {
	data, err := validateEnvelope(200, []byte(`{"code":"200000","data":{"a":1}}`), "/api/v1/x")

	require.NoError(t, err)
	var payload map[string]int
	require.NoError(t, sonic.Unmarshal(data, &payload))
	assert.Equal(t, map[string]int{"a": 1}, payload)
}

func TestValidateEnvelope_PayloadReturnedUnchanged(t *testing.T) {
	body := []byte(`{"code":"200000","data":[{"currency":"BTC"},{"currency":"ETH"}]}`)

	data, err := validateEnvelope(200, body, "/api/v1/accounts")

	require.NoError(t, err)
	assert.JSONEq(t, `[{"currency":"BTC"},{"currency":"ETH"}]`, string(data))
}

func TestValidateEnvelope_APIError(t *testing.T) {
	_, err := validateEnvelope(200, []byte(`{"code":"400100","msg":"Bad Request"}`), "/api/v1/orders")

	require.Error(t, err)
	assert.True(t, core.IsAPIError(err), "business errors surface even on transport 200")

	var e *core.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "400100", e.Code)
	assert.Equal(t, "Bad Request", e.Message)
	assert.Equal(t, "/api/v1/orders", e.URL)
}

func TestValidateEnvelope_AuthAndRateLimitClassification(t *testing.T) {
	tests := []struct {
		code string
		want func(error) bool
		name string
	}{
		{"400002", core.IsAuthError, "expired_timestamp"},
		{"400004", core.IsAuthError, "bad_passphrase"},
		{"400005", core.IsAuthError, "bad_signature"},
		{"429000", core.IsRateLimitError, "rate_limited"},
		{"400100", core.IsAPIError, "plain_business_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateEnvelope(200, []byte(`{"code":"`+tt.code+`","msg":"x"}`), "/u")
			require.Error(t, err)
			assert.True(t, tt.want(err))
		})
	}
}

func TestValidateEnvelope_HTTPError(t *testing.T) {
	_, err := validateEnvelope(503, []byte("upstream unavailable"), "https://api.kucoin.com/api/v1/accounts")

	require.Error(t, err)
	assert.True(t, core.IsHTTPError(err))

	var e *core.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 503, e.StatusCode)
	assert.Equal(t, "upstream unavailable", e.Message)
	assert.Equal(t, "https://api.kucoin.com/api/v1/accounts", e.URL)
}

func TestValidateEnvelope_HTTPErrorPrefersEnvelopeMsg(t *testing.T) {
	_, err := validateEnvelope(401, []byte(`{"code":"400005","msg":"Invalid KC-API-SIGN"}`), "/u")

	var e *core.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "Invalid KC-API-SIGN", e.Message)
}

func TestValidateEnvelope_HTTPErrorEmptyBody(t *testing.T) {
	_, err := validateEnvelope(502, nil, "/u")

	var e *core.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "Bad Gateway", e.Message)
}

func TestValidateEnvelope_ParseError(t *testing.T) {
	_, err := validateEnvelope(200, []byte("<html>gateway</html>"), "/api/v1/timestamp")

	assert.True(t, core.IsParseError(err))
}

func TestValidateEnvelope_ProtocolErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing_code", `{"data":{"a":1}}`},
		{"missing_data", `{"code":"200000","msg":"ok"}`},
		{"empty_object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateEnvelope(200, []byte(tt.body), "/u")
			assert.True(t, core.IsProtocolError(err))
		})
	}
}

func TestValidateEnvelope_NullDataIsPresent(t *testing.T) {
	// json.RawMessage holds the literal "null" bytes here, which is a present
	// field; only an absent data key is a malformed envelope.
	data, err := validateEnvelope(200, []byte(`{"code":"200000","data":null}`), "/u")

	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}
