package kucoin

import (
	"os"

	"kugo/pkg/core"
)

// CredentialProvider supplies the credential set for each signed call.
// Implementations may rotate between keys; the client never caches what a
// provider returns.
type CredentialProvider interface {
	Credentials() (*core.Credentials, error)
}

// failureNotifier is implemented by providers that want to observe signed
// call failures, e.g. to rotate away from a throttled key.
type failureNotifier interface {
	OnError(err error)
}

// StaticProvider serves one fixed credential set.
type StaticProvider struct {
	creds *core.Credentials
}

// NewStaticProvider wraps a single credential set as a provider.
func NewStaticProvider(creds *core.Credentials) *StaticProvider {
	return &StaticProvider{creds: creds}
}

// Credentials implements CredentialProvider.
func (p *StaticProvider) Credentials() (*core.Credentials, error) {
	if p.creds == nil {
		return nil, core.ErrNoCredentials
	}
	return p.creds, nil
}

// Environment variable names read by EnvProvider.
const (
	EnvAPIKey     = "KUCOIN_API_KEY"
	EnvAPISecret  = "KUCOIN_API_SECRET"
	EnvPassphrase = "KUCOIN_API_PASSPHRASE"
	EnvKeyVersion = "KUCOIN_KEY_VERSION"
)

// EnvProvider resolves credentials from the process environment. It exists
// so that environment access stays an explicit, injected collaborator; the
// signing core never reads globals itself.
type EnvProvider struct{}

// NewEnvProvider creates an environment-backed credential provider.
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{}
}

// Credentials implements CredentialProvider. The variables are read on every
// call so rotated secrets are picked up without restarting.
func (p *EnvProvider) Credentials() (*core.Credentials, error) {
	creds := core.NewCredentials(
		os.Getenv(EnvAPIKey),
		os.Getenv(EnvAPISecret),
		os.Getenv(EnvPassphrase),
	)
	if v := os.Getenv(EnvKeyVersion); v != "" {
		creds.KeyVersion = v
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return creds, nil
}
