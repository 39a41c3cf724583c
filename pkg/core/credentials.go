package core

// DefaultKeyVersion is the API key version assumed when none is configured.
// Version 2 keys carry an HMAC-encoded passphrase header; version 1 keys are
// not supported by this library.
const DefaultKeyVersion = "2"

// Credentials holds the KuCoin API credential set used for request signing.
// It is read-only configuration: nothing mutates it after construction, and
// it must never be logged.
type Credentials struct {
	// APIKey is the public API key identifier, sent as KC-API-KEY.
	APIKey string `json:"api_key"`
	// APISecret is the private key used for HMAC-SHA256 signing.
	APISecret string `json:"api_secret"`
	// Passphrase is the API passphrase chosen when the key was created.
	Passphrase string `json:"passphrase"`
	// KeyVersion is the API key version, sent as KC-API-KEY-VERSION.
	KeyVersion string `json:"key_version"`
}

// NewCredentials creates a credential set with the default key version.
func NewCredentials(apiKey, apiSecret, passphrase string) *Credentials {
	return &Credentials{
		APIKey:     apiKey,
		APISecret:  apiSecret,
		Passphrase: passphrase,
		KeyVersion: DefaultKeyVersion,
	}
}

// Validate checks that every field needed for signing is present.
// Signing with a blank secret produces a token the exchange always rejects,
// so an incomplete credential set is a client-side configuration error.
func (c *Credentials) Validate() error {
	if c == nil {
		return ErrNoCredentials
	}
	if c.APIKey == "" {
		return NewConfigError("credentials: api key is empty")
	}
	if c.APISecret == "" {
		return NewConfigError("credentials: api secret is empty")
	}
	if c.Passphrase == "" {
		return NewConfigError("credentials: passphrase is empty")
	}
	if v := c.Version(); v != "2" && v != "3" {
		return NewConfigError("credentials: unsupported key version " + v + " (only v2+ keys are supported)")
	}
	return nil
}

// Version returns the configured key version, defaulting when unset.
func (c *Credentials) Version() string {
	if c.KeyVersion == "" {
		return DefaultKeyVersion
	}
	return c.KeyVersion
}
