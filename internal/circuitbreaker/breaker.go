// Package circuitbreaker implements a three-state breaker that sheds calls
// to an exchange that keeps failing at the transport level.
package circuitbreaker

import (
	"sync"
	"time"
)

// State represents the breaker state.
type State int

const (
	// StateClosed passes all requests through.
	StateClosed State = iota
	// StateOpen rejects requests until the cool-down elapses.
	StateOpen
	// StateHalfOpen probes with live requests after the cool-down.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// Config holds the breaker thresholds.
type Config struct {
	// FailThreshold is the number of consecutive failures that opens the breaker.
	FailThreshold int `json:"fail_threshold"`
	// SuccessThreshold is the number of consecutive half-open successes that close it.
	SuccessThreshold int `json:"success_threshold"`
	// Timeout is the open-state cool-down before probing resumes.
	Timeout time.Duration `json:"timeout"`
}

// Breaker tracks consecutive transport failures and trips open when the
// threshold is reached. Application-level exchange errors must not be
// recorded here; repeating an identical business error says nothing about
// the health of the connection.
type Breaker struct {
	mu        sync.Mutex
	state     State
	failures  int
	successes int
	openedAt  time.Time
	config    Config
}

// New creates a Breaker in the closed state.
func New(config Config) *Breaker {
	return &Breaker{config: config}
}

// Allow reports whether a request may proceed, moving an expired open
// breaker to half-open.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if time.Since(b.openedAt) >= b.config.Timeout {
			b.state = StateHalfOpen
			b.successes = 0
			return true
		}
		return false
	default:
		return true
	}
}

// Record feeds the outcome of one transport attempt into the state machine.
func (b *Breaker) Record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if success {
		switch b.state {
		case StateHalfOpen:
			b.successes++
			if b.successes >= b.config.SuccessThreshold {
				b.state = StateClosed
				b.failures = 0
			}
		default:
			b.failures = 0
		}
		return
	}

	switch b.state {
	case StateHalfOpen:
		b.trip()
	default:
		b.failures++
		if b.failures >= b.config.FailThreshold {
			b.trip()
		}
	}
}

func (b *Breaker) trip() {
	b.state = StateOpen
	b.openedAt = time.Now()
	b.failures = 0
	b.successes = 0
}

// State returns the current breaker state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Reset forces the breaker back to closed, clearing all counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.successes = 0
}
