package kucoin

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"

	"kugo/pkg/core"
)

// CodeSuccess is the envelope code the exchange uses for a successful call.
// Any other code is an application-level error even when the transport
// status is 200.
const CodeSuccess = "200000"

// Exchange error codes the client classifies specially.
const (
	codeBadKeyTimestamp = "400002"
	codeKeyNotFound     = "400003"
	codeBadPassphrase   = "400004"
	codeBadSignature    = "400005"
	codeBadKeyIP        = "400006"
	codeAccessDenied    = "400007"
	codeTooManyRequests = "429000"
)

type envelope struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// validateEnvelope checks one raw response and extracts its payload bytes.
// It is the single shared validation path: transport status first, then JSON
// shape, then the envelope code. Callers decode the returned data into their
// endpoint's typed result.
func validateEnvelope(status int, body []byte, url string) ([]byte, error) {
	if status < 200 || status >= 300 {
		return nil, core.NewHTTPError(status, extractErrorContent(status, body), url)
	}

	var env envelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return nil, core.NewParseError(url, err)
	}

	if env.Code == "" {
		return nil, core.NewProtocolError(url, "response envelope is missing code")
	}

	if env.Code != CodeSuccess {
		return nil, core.NewError(classifyAPICode(env.Code), env.Msg).
			WithCode(env.Code).
			WithStatus(status).
			WithURL(url)
	}

	if env.Data == nil {
		return nil, core.NewProtocolError(url, "response envelope is missing data")
	}

	return env.Data, nil
}

// extractErrorContent pulls whatever text is available from a failed
// response, preferring the envelope msg when the body happens to be a valid
// envelope. Secondary failures are swallowed; the status code alone still
// classifies the error.
func extractErrorContent(status int, body []byte) string {
	var env envelope
	if err := sonic.Unmarshal(body, &env); err == nil && env.Msg != "" {
		return env.Msg
	}
	content := strings.TrimSpace(string(body))
	if content == "" {
		return http.StatusText(status)
	}
	return content
}

func classifyAPICode(code string) core.ErrorType {
	switch code {
	case codeBadKeyTimestamp, codeKeyNotFound, codeBadPassphrase,
		codeBadSignature, codeBadKeyIP, codeAccessDenied:
		return core.ErrorTypeAuth
	case codeTooManyRequests:
		return core.ErrorTypeRateLimit
	default:
		return core.ErrorTypeAPI
	}
}
