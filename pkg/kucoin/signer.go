package kucoin

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"

	"kugo/pkg/core"
)

// Header names required on every signed KuCoin call.
const (
	headerAPIKey     = "KC-API-KEY"
	headerSignature  = "KC-API-SIGN"
	headerTimestamp  = "KC-API-TIMESTAMP"
	headerPassphrase = "KC-API-PASSPHRASE"
	headerKeyVersion = "KC-API-KEY-VERSION"
)

// Sign derives the full KC-API header set for one request. It is a pure
// function of its inputs: obtaining the timestamp is the caller's impure
// step, composed before signing.
//
// The prehash string is timestamp + UPPER(method) + path + body, where path
// includes the literal query string and body is the exact JSON sent (empty
// string, not omitted, for bodyless requests). The exchange recomputes the
// same concatenation server-side, so every byte matters. The signature is
// base64(HMAC-SHA256(secret, prehash)); the passphrase header carries
// base64(HMAC-SHA256(secret, passphrase)) since only v2+ keys are supported.
func Sign(creds *core.Credentials, method, pathWithQuery, body string, timestamp int64) (map[string]string, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	ts := strconv.FormatInt(timestamp, 10)
	prehash := ts + strings.ToUpper(method) + pathWithQuery + body

	return map[string]string{
		headerAPIKey:     creds.APIKey,
		headerSignature:  signHMAC(creds.APISecret, prehash),
		headerTimestamp:  ts,
		headerPassphrase: signHMAC(creds.APISecret, creds.Passphrase),
		headerKeyVersion: creds.Version(),
		"Content-Type":   "application/json",
	}, nil
}

func signHMAC(secret, message string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
