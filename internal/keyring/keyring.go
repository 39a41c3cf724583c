// Package keyring rotates between multiple API credential sets so that a
// rate-limited or disabled key does not take the whole client down.
package keyring

import (
	"fmt"
	"sync"
	"time"

	"kugo/pkg/core"
)

// RotationStrategy controls when the ring advances to the next key.
type RotationStrategy int

const (
	// RotationRoundRobin advances only when Rotate is called explicitly.
	RotationRoundRobin RotationStrategy = iota
	// RotationOnError advances after any signed-call failure.
	RotationOnError
)

// Entry is one credential set held by the ring.
type Entry struct {
	ID          string
	Credentials *core.Credentials
	Disabled    bool
	LastUsed    time.Time
	ErrorCount  int
}

// KeyRing holds an ordered set of credential entries and hands out the
// current usable one. All methods are safe for concurrent use.
type KeyRing struct {
	mu       sync.RWMutex
	entries  []*Entry
	current  int
	strategy RotationStrategy
}

// New creates a KeyRing over copies of the given entries.
func New(entries []*Entry, strategy RotationStrategy) *KeyRing {
	copied := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		creds := *e.Credentials
		copied = append(copied, &Entry{
			ID:          e.ID,
			Credentials: &creds,
			Disabled:    e.Disabled,
		})
	}
	return &KeyRing{entries: copied, strategy: strategy}
}

// Credentials returns the current usable credential set, marking it used.
// It implements the credential provider contract of the client.
func (k *KeyRing) Credentials() (*core.Credentials, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	entry := k.currentEntry()
	if entry == nil {
		return nil, core.ErrNoAPIKey
	}
	entry.LastUsed = time.Now()
	return entry.Credentials, nil
}

// OnError records a signed-call failure against the current key and rotates
// when the strategy asks for it.
func (k *KeyRing) OnError(err error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	entry := k.currentEntry()
	if entry == nil {
		return
	}
	entry.ErrorCount++
	if k.strategy == RotationOnError {
		k.rotate()
	}
}

// Rotate advances to the next enabled key.
func (k *KeyRing) Rotate() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.rotate()
}

// Disable takes a key out of rotation.
func (k *KeyRing) Disable(id string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, e := range k.entries {
		if e.ID == id {
			e.Disabled = true
			return
		}
	}
}

// Enable returns a key to rotation and clears its error count.
func (k *KeyRing) Enable(id string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, e := range k.entries {
		if e.ID == id {
			e.Disabled = false
			e.ErrorCount = 0
			return
		}
	}
}

// Len returns the number of entries, enabled or not.
func (k *KeyRing) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.entries)
}

func (k *KeyRing) currentEntry() *Entry {
	if len(k.entries) == 0 {
		return nil
	}
	for i := range k.entries {
		idx := (k.current + i) % len(k.entries)
		if !k.entries[idx].Disabled {
			k.current = idx
			return k.entries[idx]
		}
	}
	return nil
}

func (k *KeyRing) rotate() {
	if len(k.entries) == 0 {
		return
	}
	start := k.current
	for {
		k.current = (k.current + 1) % len(k.entries)
		if !k.entries[k.current].Disabled || k.current == start {
			return
		}
	}
}

// String identifies the entry without exposing the secret material.
func (e *Entry) String() string {
	return fmt.Sprintf("Entry{ID:%s, Key:%s}", e.ID, maskKey(e.Credentials.APIKey))
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
